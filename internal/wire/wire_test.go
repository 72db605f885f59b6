package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAuth_Register(t *testing.T) {
	body, err := EncodeAuth(RegisterRequest{
		Email:    "a@b.com",
		Password: "pw123456",
		Name:     "Alice",
		Nickname: "ace",
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, "register", m["action"])
	assert.Equal(t, "a@b.com", m["email"])
	assert.Equal(t, "ace", m["nickname"])
	_, hasTeam := m["team"]
	assert.False(t, hasTeam, "empty optional field must be omitted")
}

func TestEncodeAdmin_TagsEveryVariant(t *testing.T) {
	banned := false
	max := 20
	team := int64(3)

	tests := []struct {
		req  AdminRequest
		want string
	}{
		{CreateTeamRequest{Name: "Alpha"}, "create_team"},
		{AddPlayerToTeamRequest{TeamID: 1, PlayerID: 2, Role: "captain"}, "add_player_to_team"},
		{BanPlayerRequest{PlayerID: 42, Banned: &banned}, "ban_player"},
		{CreateMatchRequest{Title: "Cup", MatchDate: "2025-01-01T10:00", MaxPlayers: &max}, "create_match"},
		{CompleteMatchRequest{MatchID: 7, WinnerTeamID: &team, ScoreTeam1: 3, ScoreTeam2: 1}, "complete_match"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			body, err := EncodeAdmin(tt.req)
			require.NoError(t, err)

			var m map[string]any
			require.NoError(t, json.Unmarshal(body, &m))
			assert.Equal(t, tt.want, m["action"])
		})
	}
}

func TestDecodeAdmin_RoundTrip(t *testing.T) {
	body := []byte(`{"action":"add_player_to_team","team_id":5,"player_id":9,"role":"member"}`)

	req, err := DecodeAdmin(body)
	require.NoError(t, err)

	add, ok := req.(AddPlayerToTeamRequest)
	require.True(t, ok)
	assert.Equal(t, int64(5), add.TeamID)
	assert.Equal(t, int64(9), add.PlayerID)
	assert.Equal(t, "member", add.Role)
}

func TestDecodeAdmin_RejectsUnknownAction(t *testing.T) {
	_, err := DecodeAdmin([]byte(`{"action":"drop_all_tables"}`))
	require.ErrorIs(t, err, ErrUnknownAction)

	// Tags valid on other endpoints are still rejected here.
	_, err = DecodeAdmin([]byte(`{"action":"join_match","match_id":1}`))
	require.ErrorIs(t, err, ErrUnknownAction)

	_, err = DecodeAdmin([]byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestDecodeAuth_RejectsUnknownAction(t *testing.T) {
	_, err := DecodeAuth([]byte(`{"action":"create_team","name":"x"}`))
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestDecodeMatch_Variants(t *testing.T) {
	req, err := DecodeMatch([]byte(`{"action":"join_match","match_id":11}`))
	require.NoError(t, err)
	join, ok := req.(JoinMatchRequest)
	require.True(t, ok)
	assert.Equal(t, int64(11), join.MatchID)

	req, err = DecodeMatch([]byte(`{"action":"leave_match","match_id":11}`))
	require.NoError(t, err)
	_, ok = req.(LeaveMatchRequest)
	require.True(t, ok)

	_, err = DecodeMatch([]byte(`{"action":"ban_player","player_id":1}`))
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestBanPlayerRequest_DefaultsToBanned(t *testing.T) {
	req, err := DecodeAdmin([]byte(`{"action":"ban_player","player_id":42}`))
	require.NoError(t, err)

	ban, ok := req.(BanPlayerRequest)
	require.True(t, ok)
	assert.True(t, ban.IsBanned(), "missing banned field defaults to true")

	req, err = DecodeAdmin([]byte(`{"action":"ban_player","player_id":42,"banned":false}`))
	require.NoError(t, err)
	ban = req.(BanPlayerRequest)
	assert.False(t, ban.IsBanned())
}

func TestDecodeAuth_MalformedJSON(t *testing.T) {
	_, err := DecodeAuth([]byte(`{invalid`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownAction)
}

func TestCreateMatchRequest_OptionalFieldsOmitted(t *testing.T) {
	body, err := EncodeAdmin(CreateMatchRequest{
		Title:     "Cup",
		MatchType: "Турнир",
		MatchDate: "2025-01-01T10:00",
	})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	for _, key := range []string{"max_players", "team1_id", "team2_id"} {
		_, present := m[key]
		assert.False(t, present, key)
	}
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/session"
	"github.com/strikeball/platform/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return New(EndpointsFromBase(srv.URL), store, srv.Client()), store, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLogin_PersistsReturnedSession(t *testing.T) {
	user := domain.User{ID: 1, Email: "a@b.com", Name: "Alice"}
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "login", body["action"])
		assert.Equal(t, "a@b.com", body["email"])
		assert.Empty(t, r.Header.Get(SessionTokenHeader), "login carries no session header")

		writeJSON(t, w, http.StatusOK, wire.AuthResponse{User: user, SessionToken: "T1"})
	}))

	resp, err := cli.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "T1", resp.SessionToken)

	sess, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "T1", sess.Token)
	assert.Equal(t, user, sess.User)
}

func TestLogin_RequestErrorCarriesServerMessage(t *testing.T) {
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, wire.ErrorResponse{Error: "Invalid credentials"})
	}))

	_, err := cli.Login(context.Background(), "a@b.com", "bad")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "Invalid credentials", reqErr.Message)

	_, ok := store.Load()
	assert.False(t, ok, "failed login must not populate the session")
}

func TestLogin_FallbackMessageWhenBodyUnparsable(t *testing.T) {
	cli, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := cli.Login(context.Background(), "a@b.com", "pw")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Login failed", reqErr.Message)
}

func TestRegister_PersistsReturnedSession(t *testing.T) {
	user := domain.User{ID: 7, Email: "n@e.w", Name: "New", Nickname: "nick", Team: "Alpha"}
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "register", body["action"])
		writeJSON(t, w, http.StatusOK, wire.AuthResponse{User: user, SessionToken: "T9"})
	}))

	_, err := cli.Register(context.Background(), wire.RegisterRequest{
		Email: "n@e.w", Password: "pw123456", Name: "New", Nickname: "nick", Team: "Alpha",
	})
	require.NoError(t, err)

	sess, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "T9", sess.Token)
	assert.Equal(t, user, sess.User)
}

func TestCurrentUser_NoTokenSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	cli, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	user, err := cli.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Zero(t, calls.Load())
}

func TestCurrentUser_StatusFailureClearsSessionSoftly(t *testing.T) {
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stale", r.Header.Get(SessionTokenHeader))
		writeJSON(t, w, http.StatusUnauthorized, wire.ErrorResponse{Error: "Invalid or expired session"})
	}))
	require.NoError(t, store.Save("stale", domain.User{ID: 1, Email: "a@b.com", Name: "A"}))

	user, err := cli.CurrentUser(context.Background())
	require.NoError(t, err, "soft failure must never propagate")
	assert.Nil(t, user)

	_, ok := store.Load()
	assert.False(t, ok, "session must be cleared")
	assert.Empty(t, store.CurrentToken())
}

func TestCurrentUser_TransportFailureClearsSessionSoftly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	cli := New(EndpointsFromBase(srv.URL), store, srv.Client())
	require.NoError(t, store.Save("T1", domain.User{ID: 1, Email: "a@b.com", Name: "A"}))
	srv.Close() // every subsequent call fails at the transport level

	user, err := cli.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestCurrentUser_SuccessRefreshesSnapshot(t *testing.T) {
	fresh := domain.User{ID: 1, Email: "a@b.com", Name: "Alice", AvatarURL: "https://cdn/x.png"}
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		writeJSON(t, w, http.StatusOK, wire.UserResponse{User: fresh})
	}))
	require.NoError(t, store.Save("T1", domain.User{ID: 1, Email: "a@b.com", Name: "Alice"}))

	user, err := cli.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, fresh, *user)

	sess, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "T1", sess.Token, "token survives a profile refresh")
	assert.Equal(t, fresh, sess.User)
}

func TestAdminCall_WithoutTokenStillIssuesRequest(t *testing.T) {
	var calls atomic.Int32
	cli, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// Header present but empty: the client performs no local pre-check.
		values, present := r.Header[http.CanonicalHeaderKey(SessionTokenHeader)]
		require.True(t, present)
		assert.Equal(t, []string{""}, values)
		writeJSON(t, w, http.StatusUnauthorized, wire.ErrorResponse{Error: "Session token required"})
	}))

	_, err := cli.AdminData(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Session token required", reqErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestBanPlayer_ThenAdminDataReflectsServerTruth(t *testing.T) {
	banned := map[int64]bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("/admin", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			players := []domain.Player{{ID: 42, Name: "Vasya", Email: "v@x.ru", Rating: 120, IsBanned: banned[42]}}
			writeJSON(t, w, http.StatusOK, wire.AdminDataResponse{Players: players, Teams: []domain.Team{}})
			return
		}
		var req wire.BanPlayerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		banned[req.PlayerID] = req.IsBanned()
		writeJSON(t, w, http.StatusOK, wire.PlayerBanResponse{Player: domain.Player{ID: req.PlayerID, IsBanned: req.IsBanned()}})
	})

	cli, store, _ := newTestClient(t, mux)
	require.NoError(t, store.Save("admin-token", domain.User{ID: 99, Email: "adm@x.ru", Name: "Admin"}))

	require.NoError(t, cli.BanPlayer(context.Background(), 42, true))

	data, err := cli.AdminData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Players, 1)
	assert.True(t, data.Players[0].IsBanned)
}

func TestCreateMatch_OptionalFieldsStayAbsent(t *testing.T) {
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "create_match", raw["action"])
		assert.NotContains(t, raw, "team1_id")
		assert.NotContains(t, raw, "team2_id")

		max := 20
		writeJSON(t, w, http.StatusOK, wire.MatchResponse{Match: domain.Match{
			ID: 1, Title: "Cup", MatchType: domain.MatchTypeTournament,
			MatchDate: "2025-01-01T10:00", Status: domain.MatchStatusUpcoming, MaxPlayers: &max,
		}})
	}))
	require.NoError(t, store.Save("admin-token", domain.User{ID: 99, Email: "adm@x.ru", Name: "Admin"}))

	max := 20
	match, err := cli.CreateMatch(context.Background(), wire.CreateMatchRequest{
		Title: "Cup", MatchType: domain.MatchTypeTournament,
		MatchDate: "2025-01-01T10:00", MaxPlayers: &max,
	})
	require.NoError(t, err)
	assert.Nil(t, match.Team1ID)
	assert.Nil(t, match.Team2ID)
	assert.Equal(t, domain.MatchStatusUpcoming, match.Status)
}

func TestMatches_PublicListSendsNoSessionHeader(t *testing.T) {
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header[http.CanonicalHeaderKey(SessionTokenHeader)]
		assert.False(t, present, "public listing must not send the session header")
		writeJSON(t, w, http.StatusOK, wire.MatchListResponse{Matches: []domain.Match{{ID: 1, Title: "Open"}}})
	}))
	require.NoError(t, store.Save("T1", domain.User{ID: 1, Email: "a@b.com", Name: "A"}))

	matches, err := cli.Matches(context.Background())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Open", matches[0].Title)
}

func TestJoinMatch_SendsCapturedToken(t *testing.T) {
	cli, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "T1", r.Header.Get(SessionTokenHeader))
		var req wire.JoinMatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(5), req.MatchID)
		writeJSON(t, w, http.StatusOK, wire.MessageResponse{Message: "Successfully joined match"})
	}))
	require.NoError(t, store.Save("T1", domain.User{ID: 1, Email: "a@b.com", Name: "A"}))

	require.NoError(t, cli.JoinMatch(context.Background(), 5))
}

func TestTransportError_WrapsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	cli := New(EndpointsFromBase(srv.URL), store, srv.Client())
	srv.Close()

	_, err := cli.Matches(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr), "network failure is not a RequestError")
}

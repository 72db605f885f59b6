package service

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	t.Run("valid png data URL", func(t *testing.T) {
		payload := []byte{0x89, 0x50, 0x4e, 0x47}
		raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

		contentType, data, err := parseDataURL(raw)
		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, payload, data)
	})

	t.Run("missing data prefix", func(t *testing.T) {
		_, _, err := parseDataURL("image/png;base64,aGk=")
		require.Error(t, err)
	})

	t.Run("not base64 encoded", func(t *testing.T) {
		_, _, err := parseDataURL("data:image/png,rawbytes")
		require.Error(t, err)
	})

	t.Run("bad base64 payload", func(t *testing.T) {
		_, _, err := parseDataURL("data:image/png;base64,!!!")
		require.Error(t, err)
	})
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, ".gif", extensionFor("image/gif"))
	assert.Equal(t, ".img", extensionFor("image/x-icon"))
}

func TestParseMatchDate(t *testing.T) {
	t.Run("RFC 3339", func(t *testing.T) {
		got, err := parseMatchDate("2026-09-12T14:00:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("datetime-local form", func(t *testing.T) {
		got, err := parseMatchDate("2026-09-12T14:00")
		require.NoError(t, err)
		assert.Equal(t, 14, got.Hour())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := parseMatchDate("next saturday")
		require.Error(t, err)
	})
}

func TestNewSessionToken(t *testing.T) {
	a, err := newSessionToken()
	require.NoError(t, err)
	b, err := newSessionToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, strings.ToLower(a), a)
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{ErrNotFound("match", 7), 404, "NOT_FOUND"},
		{ErrValidation("Team name required"), 400, "VALIDATION_ERROR"},
		{ErrConflict("Email already registered"), 400, "CONFLICT"},
		{ErrUnauthorized("Invalid or expired session"), 401, "UNAUTHORIZED"},
		{ErrForbidden("Admin access required"), 403, "FORBIDDEN"},
		{ErrLocked("too many failed login attempts"), 429, "LOCKED"},
		{ErrMethodNotAllowed(), 405, "METHOD_NOT_ALLOWED"},
		{ErrInternal("scan user", nil), 500, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrInternal("query teams", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
	assert.Contains(t, err.Error(), "connection refused")

	wrapped := fmt.Errorf("handler: %w", err)
	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, 500, appErr.Status)
}

func TestValidMatchType(t *testing.T) {
	assert.True(t, ValidMatchType(MatchTypeTournament))
	assert.True(t, ValidMatchType(MatchTypeTraining))
	assert.True(t, ValidMatchType(MatchTypeRanked))
	assert.False(t, ValidMatchType(""))
	assert.False(t, ValidMatchType("friendly"))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/service"
	"github.com/strikeball/platform/internal/wire"
)

// AuthHandler serves the auth endpoint: GET resolves the current session,
// POST dispatches register and login on the action tag.
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Current handles GET /auth.
func (h *AuthHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, err := h.authSvc.CurrentUser(r.Context(), SessionToken(r))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, wire.UserResponse{User: *user})
}

// Dispatch handles POST /auth.
func (h *AuthHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := ReadBody(r)
	if err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}
	req, err := wire.DecodeAuth(body)
	if err != nil {
		if errors.Is(err, wire.ErrUnknownAction) {
			RespondError(w, domain.ErrValidation("Unknown action"))
			return
		}
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	switch v := req.(type) {
	case wire.RegisterRequest:
		result, err := h.authSvc.Register(r.Context(), v)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusCreated, wire.AuthResponse{User: *result.User, SessionToken: result.SessionToken})
	case wire.LoginRequest:
		result, err := h.authSvc.Login(r.Context(), v, ClientIP(r))
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, wire.AuthResponse{User: *result.User, SessionToken: result.SessionToken})
	default:
		RespondError(w, domain.ErrValidation("Unknown action"))
	}
}

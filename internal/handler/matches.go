package handler

import (
	"errors"
	"net/http"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/service"
	"github.com/strikeball/platform/internal/wire"
)

// MatchesHandler serves the matches endpoint. The listing is public; join
// and leave require a session.
type MatchesHandler struct {
	authSvc  *service.AuthService
	matchSvc *service.MatchService
}

// NewMatchesHandler creates a new MatchesHandler.
func NewMatchesHandler(authSvc *service.AuthService, matchSvc *service.MatchService) *MatchesHandler {
	return &MatchesHandler{authSvc: authSvc, matchSvc: matchSvc}
}

// List handles GET /matches.
func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchSvc.List(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, wire.MatchListResponse{Matches: matches})
}

// Dispatch handles POST /matches.
func (h *MatchesHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	ident, err := h.authSvc.Identity(r.Context(), SessionToken(r))
	if err != nil {
		RespondError(w, err)
		return
	}

	body, err := ReadBody(r)
	if err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}
	req, err := wire.DecodeMatch(body)
	if err != nil {
		if errors.Is(err, wire.ErrUnknownAction) {
			RespondError(w, domain.ErrValidation("Unknown action"))
			return
		}
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	switch v := req.(type) {
	case wire.JoinMatchRequest:
		msg, err := h.matchSvc.Join(r.Context(), ident, v.MatchID)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, wire.MessageResponse{Message: msg})
	case wire.LeaveMatchRequest:
		msg, err := h.matchSvc.Leave(r.Context(), ident, v.MatchID)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, wire.MessageResponse{Message: msg})
	default:
		RespondError(w, domain.ErrValidation("Unknown action"))
	}
}

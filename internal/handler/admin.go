package handler

import (
	"errors"
	"net/http"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/repository"
	"github.com/strikeball/platform/internal/service"
	"github.com/strikeball/platform/internal/wire"
)

// AdminHandler serves the admin endpoint. Every call requires a session
// belonging to an admin user.
type AdminHandler struct {
	authSvc  *service.AuthService
	adminSvc *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authSvc *service.AuthService, adminSvc *service.AdminService) *AdminHandler {
	return &AdminHandler{authSvc: authSvc, adminSvc: adminSvc}
}

func (h *AdminHandler) requireAdmin(r *http.Request) (*repository.Identity, error) {
	ident, err := h.authSvc.Identity(r.Context(), SessionToken(r))
	if err != nil {
		return nil, err
	}
	if !ident.IsAdmin {
		return nil, domain.ErrForbidden("Admin access required")
	}
	return ident, nil
}

// Data handles GET /admin.
func (h *AdminHandler) Data(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireAdmin(r); err != nil {
		RespondError(w, err)
		return
	}
	data, err := h.adminSvc.Data(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, wire.AdminDataResponse{Players: data.Players, Teams: data.Teams})
}

// Dispatch handles POST /admin.
func (h *AdminHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	ident, err := h.requireAdmin(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	body, err := ReadBody(r)
	if err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}
	req, err := wire.DecodeAdmin(body)
	if err != nil {
		if errors.Is(err, wire.ErrUnknownAction) {
			RespondError(w, domain.ErrValidation("Unknown action"))
			return
		}
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}

	switch v := req.(type) {
	case wire.CreateTeamRequest:
		team, err := h.adminSvc.CreateTeam(r.Context(), v)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusCreated, wire.TeamResponse{Team: *team})
	case wire.AddPlayerToTeamRequest:
		member, err := h.adminSvc.AddPlayerToTeam(r.Context(), v)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, wire.MemberResponse{Member: *member})
	case wire.BanPlayerRequest:
		player, err := h.adminSvc.BanPlayer(r.Context(), v)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, wire.PlayerBanResponse{Player: *player})
	case wire.CreateMatchRequest:
		match, err := h.adminSvc.CreateMatch(r.Context(), v, ident.UserID)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusCreated, wire.MatchResponse{Match: *match})
	case wire.CompleteMatchRequest:
		match, err := h.adminSvc.CompleteMatch(r.Context(), v)
		if err != nil {
			RespondError(w, err)
			return
		}
		RespondJSON(w, http.StatusOK, wire.MatchResponse{Match: *match})
	default:
		RespondError(w, domain.ErrValidation("Unknown action"))
	}
}

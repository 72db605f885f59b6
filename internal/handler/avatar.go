package handler

import (
	"net/http"

	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/service"
	"github.com/strikeball/platform/internal/wire"
)

// AvatarHandler serves avatar uploads.
type AvatarHandler struct {
	authSvc   *service.AuthService
	avatarSvc *service.AvatarService
}

// NewAvatarHandler creates a new AvatarHandler.
func NewAvatarHandler(authSvc *service.AuthService, avatarSvc *service.AvatarService) *AvatarHandler {
	return &AvatarHandler{authSvc: authSvc, avatarSvc: avatarSvc}
}

// Upload handles POST /avatar.
func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ident, err := h.authSvc.Identity(r.Context(), SessionToken(r))
	if err != nil {
		RespondError(w, err)
		return
	}

	var input wire.AvatarUploadRequest
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("Invalid request body"))
		return
	}
	if input.Image == "" {
		RespondError(w, domain.ErrValidation("Image is required"))
		return
	}

	user, err := h.avatarSvc.Upload(r.Context(), ident.UserID, input.Image)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, wire.AvatarResponse{User: *user, AvatarURL: user.AvatarURL})
}

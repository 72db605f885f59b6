package service

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strikeball/platform/internal/domain"
	"github.com/strikeball/platform/internal/infra"
	"github.com/strikeball/platform/internal/repository"
)

// MaxAvatarBytes caps the decoded avatar image size at 5 MiB.
const MaxAvatarBytes = 5 << 20

// AvatarService stores profile images and updates the user row.
type AvatarService struct {
	pool  *pgxpool.Pool
	users repository.UserRepository
	store *infra.AvatarStore
}

// NewAvatarService creates a new AvatarService.
func NewAvatarService(pool *pgxpool.Pool, users repository.UserRepository, store *infra.AvatarStore) *AvatarService {
	return &AvatarService{pool: pool, users: users, store: store}
}

// Upload decodes a base64 data URL, persists the image and returns the
// refreshed user. Only image content types within the size cap are accepted.
func (s *AvatarService) Upload(ctx context.Context, userID int64, dataURL string) (*domain.User, error) {
	contentType, data, err := parseDataURL(dataURL)
	if err != nil {
		return nil, domain.ErrValidation("Invalid image data")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.ErrValidation("Only image uploads are allowed")
	}
	if len(data) > MaxAvatarBytes {
		return nil, domain.ErrValidation("Image exceeds the 5 MiB limit")
	}

	url, err := s.store.Save(userID, extensionFor(contentType), data)
	if err != nil {
		return nil, domain.ErrInternal("store avatar", err)
	}

	user, err := s.users.UpdateAvatar(ctx, s.pool, userID, url)
	if err != nil {
		return nil, domain.ErrInternal("update avatar", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID)
	}
	return user, nil
}

// parseDataURL splits "data:<type>;base64,<payload>" into its parts.
func parseDataURL(raw string) (contentType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return "", nil, errInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errInvalidDataURL
	}
	contentType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errInvalidDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}

var errInvalidDataURL = domain.ErrValidation("Invalid image data")

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".img"
	}
}

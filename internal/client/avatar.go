package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/strikeball/platform/internal/wire"
)

// MaxAvatarBytes caps avatar uploads at 5 MiB, checked before any network
// call is made.
const MaxAvatarBytes = 5 << 20

var (
	// ErrAvatarTooLarge is returned for images above MaxAvatarBytes.
	ErrAvatarTooLarge = errors.New("avatar exceeds 5 MiB")
	// ErrAvatarNotImage is returned when the content type is not image/*.
	ErrAvatarNotImage = errors.New("avatar must be an image")
)

// UploadAvatar uploads a new avatar and returns its URL. The image travels
// as a data URL inside a JSON body; on success the stored user snapshot is
// refreshed with the service's updated copy.
func (c *Client) UploadAvatar(ctx context.Context, image []byte, contentType string) (string, error) {
	if len(image) > MaxAvatarBytes {
		return "", ErrAvatarTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrAvatarNotImage
	}

	token := c.sessions.CurrentToken()
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	body, err := json.Marshal(wire.AvatarUploadRequest{Image: dataURL})
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var resp wire.AvatarResponse
	if err := c.do(ctx, call{
		method:   http.MethodPost,
		url:      c.endpoints.Avatar,
		token:    &token,
		body:     body,
		fallback: "Avatar upload failed",
	}, &resp); err != nil {
		return "", err
	}

	if err := c.sessions.Save(token, resp.User); err != nil {
		return resp.AvatarURL, fmt.Errorf("persist session: %w", err)
	}
	return resp.AvatarURL, nil
}

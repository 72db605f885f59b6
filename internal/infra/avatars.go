package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AvatarStore writes avatar images to local disk and maps them to URLs
// served from the files route.
type AvatarStore struct {
	dir     string
	baseURL string
}

func NewAvatarStore(dir, baseURL string) *AvatarStore {
	return &AvatarStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Dir returns the directory avatars are written to.
func (s *AvatarStore) Dir() string {
	return s.dir
}

// Save writes the image bytes under a unique name and returns the public URL.
func (s *AvatarStore) Save(userID int64, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}
	name := fmt.Sprintf("%d_%s%s", userID, uuid.NewString()[:8], ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

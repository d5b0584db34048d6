package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// localBackend writes images under a directory on disk. Files are served
// back by the HTTP server under /uploads/.
type localBackend struct {
	dir           string
	publicBaseURL string
}

func newLocalBackend(dir, publicBaseURL string) (*localBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is not configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localBackend{dir: dir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (b *localBackend) Name() string { return "local" }

func (b *localBackend) Put(_ context.Context, key string, _ string, data []byte) (string, error) {
	// Reject keys that would escape the upload directory.
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}

	dest := filepath.Join(b.dir, clean)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload subdirectory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return b.publicBaseURL + "/uploads/" + filepath.ToSlash(clean), nil
}

package storage

import (
	"context"

	"github.com/komolbek/raadarenda-sub001/internal/config"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
)

// Backend stores processed product images and returns a publicly
// reachable URL for each stored object.
type Backend interface {
	// Put uploads the object under key and returns its public URL.
	Put(ctx context.Context, key string, contentType string, data []byte) (string, error)

	// Name identifies the backend in logs.
	Name() string
}

// NewBackend selects the storage backend from configuration. Remote
// backends win over local disk: Vercel Blob when its token is set,
// otherwise ImageKit when its private key is set, otherwise local disk.
func NewBackend(cfg *config.StorageConfig) (Backend, error) {
	switch {
	case cfg.BlobToken != "":
		logger.Info("Using blob storage backend")
		return newBlobBackend(cfg.BlobToken, cfg.BlobBaseURL), nil
	case cfg.ImageKitKey != "":
		logger.Info("Using imagekit storage backend")
		return newImageKitBackend(cfg.ImageKitKey, cfg.ImageKitURL), nil
	default:
		logger.Info("Using local storage backend", "dir", cfg.UploadDir)
		return newLocalBackend(cfg.UploadDir, cfg.PublicBaseURL)
	}
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/komolbek/raadarenda-sub001/internal/imaging"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/storage"
)

type uploadService struct {
	backend     storage.Backend
	jpegQuality int
	maxBytes    int64
}

func NewUploadService(backend storage.Backend, jpegQuality int, maxSizeMB int64) UploadService {
	return &uploadService{
		backend:     backend,
		jpegQuality: jpegQuality,
		maxBytes:    maxSizeMB << 20,
	}
}

func (s *uploadService) UploadImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrValidation
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", ErrValidation
	}

	normalized, err := imaging.Normalize(data, s.jpegQuality)
	if err != nil {
		// Undecodable bytes are the client's problem, not ours.
		return "", ErrValidation
	}

	key := fmt.Sprintf("products/%s.jpg", uuid.NewString())
	url, err := s.backend.Put(ctx, key, "image/jpeg", normalized)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	logger.InfoContext(ctx, "Image uploaded",
		"backend", s.backend.Name(), "key", key, "bytes", len(normalized))
	return url, nil
}

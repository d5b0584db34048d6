package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"
)

const imageKitUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// imageKitBackend uploads images through the ImageKit upload API.
// The private key authenticates via HTTP basic auth with an empty password.
type imageKitBackend struct {
	privateKey string
	uploadURL  string
	client     *http.Client
}

func newImageKitBackend(privateKey, uploadURL string) *imageKitBackend {
	if uploadURL == "" {
		uploadURL = imageKitUploadURL
	}
	return &imageKitBackend{
		privateKey: privateKey,
		uploadURL:  uploadURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *imageKitBackend) Name() string { return "imagekit" }

func (b *imageKitBackend) Put(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"file":              base64.StdEncoding.EncodeToString(data),
		"fileName":          path.Base(key),
		"folder":            path.Dir(key),
		"useUniqueFileName": "false",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("failed to build imagekit form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build imagekit form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create imagekit request: %w", err)
	}
	req.SetBasicAuth(b.privateKey, "")
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagekit upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read imagekit response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imagekit upload returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse imagekit response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("imagekit response missing url")
	}
	return result.URL, nil
}

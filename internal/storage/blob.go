package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBlobURL = "https://blob.vercel-storage.com"

// blobBackend uploads images to Vercel Blob over its REST API.
type blobBackend struct {
	token   string
	baseURL string
	client  *http.Client
}

func newBlobBackend(token, baseURL string) *blobBackend {
	if baseURL == "" {
		baseURL = defaultBlobURL
	}
	return &blobBackend{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *blobBackend) Name() string { return "blob" }

func (b *blobBackend) Put(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/%s", b.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create blob request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-API-Version", "7")
	req.Header.Set("X-Add-Random-Suffix", "0")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read blob response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("blob upload returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse blob response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("blob response missing url")
	}
	return result.URL, nil
}

package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	adminTokenPrefix = "admin"
	adminTokenTTL    = 24 * time.Hour
	sessionTokenLen  = 32 // random bytes, hex-encoded to 64 chars
)

// AdminTokenManager mints and validates the self-contained admin session
// token "admin:<unix-ts>:<hmac>". There is no server-side revocation:
// a minted token stays valid until its 24-hour window closes.
type AdminTokenManager struct {
	secret []byte
}

func NewAdminTokenManager(secret string) *AdminTokenManager {
	return &AdminTokenManager{secret: []byte(secret)}
}

// Mint issues a token embedding the current timestamp.
func (m *AdminTokenManager) Mint(now time.Time) string {
	payload := fmt.Sprintf("%s:%d", adminTokenPrefix, now.Unix())
	return payload + ":" + m.sign(payload)
}

// Validate recomputes the signature and checks the issue timestamp.
// The signature comparison is constant-time.
func (m *AdminTokenManager) Validate(token string, now time.Time) error {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != adminTokenPrefix {
		return ErrInvalidToken
	}

	issued, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrInvalidToken
	}

	payload := parts[0] + ":" + parts[1]
	expected := m.sign(payload)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return ErrInvalidToken
	}

	age := now.Sub(time.Unix(issued, 0))
	if age < 0 {
		return ErrInvalidToken
	}
	if age > adminTokenTTL {
		return ErrExpiredToken
	}
	return nil
}

func (m *AdminTokenManager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// NewSessionToken returns an opaque random customer session token.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

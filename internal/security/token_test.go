package security

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminTokenManager(t *testing.T) {
	m := NewAdminTokenManager("test-session-secret-0123456789abcdef")
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Fresh token validates", func(t *testing.T) {
		token := m.Mint(now)
		assert.True(t, strings.HasPrefix(token, "admin:"))
		assert.NoError(t, m.Validate(token, now))
		assert.NoError(t, m.Validate(token, now.Add(23*time.Hour)))
	})

	t.Run("Token exactly at the window edge still validates", func(t *testing.T) {
		token := m.Mint(now)
		assert.NoError(t, m.Validate(token, now.Add(24*time.Hour)))
	})

	t.Run("Token one second past the window fails", func(t *testing.T) {
		token := m.Mint(now)
		err := m.Validate(token, now.Add(24*time.Hour+time.Second))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Tampered signature fails with valid timestamp", func(t *testing.T) {
		token := m.Mint(now)
		parts := strings.Split(token, ":")
		tampered := parts[0] + ":" + parts[1] + ":" + strings.Repeat("0", len(parts[2]))
		assert.ErrorIs(t, m.Validate(tampered, now), ErrInvalidToken)
	})

	t.Run("Tampered timestamp fails signature check", func(t *testing.T) {
		token := m.Mint(now)
		parts := strings.Split(token, ":")
		future := fmt.Sprintf("%s:%d:%s", parts[0], now.Add(time.Hour).Unix(), parts[2])
		assert.ErrorIs(t, m.Validate(future, now), ErrInvalidToken)
	})

	t.Run("Token issued in the future fails", func(t *testing.T) {
		token := m.Mint(now.Add(time.Hour))
		assert.ErrorIs(t, m.Validate(token, now), ErrInvalidToken)
	})

	t.Run("Wrong secret fails", func(t *testing.T) {
		other := NewAdminTokenManager("another-session-secret-0123456789ab")
		token := other.Mint(now)
		assert.ErrorIs(t, m.Validate(token, now), ErrInvalidToken)
	})

	t.Run("Malformed tokens fail", func(t *testing.T) {
		for _, tok := range []string{"", "admin", "admin:123", "user:123:abc", "admin:notanumber:abc"} {
			assert.ErrorIs(t, m.Validate(tok, now), ErrInvalidToken, tok)
		}
	})
}

func TestNewSessionToken(t *testing.T) {
	t.Run("64 hex chars and unique", func(t *testing.T) {
		a, err := NewSessionToken()
		assert.NoError(t, err)
		assert.Len(t, a, 64)

		b, err := NewSessionToken()
		assert.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

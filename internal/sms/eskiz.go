package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// eskizSender is a client for the Eskiz.uz SMS gateway. Eskiz issues a JWT
// on login; the client caches it and re-authenticates shortly before the
// embedded expiry.
type eskizSender struct {
	baseURL string
	email   string
	secret  string
	from    string
	client  *http.Client

	mu         sync.Mutex
	token      string
	tokenValid time.Time
}

// NewEskizSender returns a Sender backed by Eskiz.uz.
func NewEskizSender(baseURL, email, secret, from string) Sender {
	if from == "" {
		from = "4546" // Eskiz shared sender id
	}
	return &eskizSender{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		secret:  secret,
		from:    from,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *eskizSender) Send(ctx context.Context, phone, message string) error {
	token, err := s.authToken(ctx)
	if err != nil {
		return fmt.Errorf("eskiz auth: %w", err)
	}

	form := url.Values{}
	form.Set("mobile_phone", strings.TrimPrefix(phone, "+"))
	form.Set("message", message)
	form.Set("from", s.from)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/message/sms/send", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("eskiz send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("eskiz send: unexpected status %d", resp.StatusCode)
	}
	logger.InfoContext(ctx, "sms sent", "provider", "eskiz", "phone", phone)
	return nil
}

// authToken returns the cached gateway token, logging in again when the
// cached one is within a day of its JWT expiry.
func (s *eskizSender) authToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenValid) {
		return s.token, nil
	}

	form := url.Values{}
	form.Set("email", s.email)
	form.Set("password", s.secret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Data.Token == "" {
		return "", fmt.Errorf("login response contained no token")
	}

	s.token = body.Data.Token
	s.tokenValid = tokenRefreshDeadline(body.Data.Token)
	logger.Debug("Eskiz token refreshed", "valid_until", s.tokenValid)
	return s.token, nil
}

// tokenRefreshDeadline inspects the gateway JWT (signature is Eskiz's, not
// ours, so it is parsed unverified) and schedules a re-login one day before
// the embedded expiry. Tokens without a readable expiry are refreshed daily.
func tokenRefreshDeadline(token string) time.Time {
	fallback := time.Now().Add(24 * time.Hour)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	deadline := exp.Add(-24 * time.Hour)
	if deadline.Before(time.Now()) {
		return fallback
	}
	return deadline
}

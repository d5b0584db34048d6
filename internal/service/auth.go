package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/komolbek/raadarenda-sub001/internal/config"
	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/ratelimit"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
	"github.com/komolbek/raadarenda-sub001/internal/security"
	"github.com/komolbek/raadarenda-sub001/internal/sms"
)

// uzPhoneDigits matches a normalized Uzbek number without the plus sign.
var uzPhoneDigits = regexp.MustCompile(`^998\d{9}$`)

type authService struct {
	userRepo    repository.UserRepository
	otpRepo     repository.OTPRepository
	sessionRepo repository.SessionRepository
	sender      sms.Sender
	limiter     ratelimit.Limiter
	tokens      *security.AdminTokenManager
	cfg         *config.Config
}

func NewAuthService(
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	sessionRepo repository.SessionRepository,
	sender sms.Sender,
	limiter ratelimit.Limiter,
	tokens *security.AdminTokenManager,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		sender:      sender,
		limiter:     limiter,
		tokens:      tokens,
		cfg:         cfg,
	}
}

// NormalizePhone reduces user input to +998XXXXXXXXX. Accepts local
// 9-digit input, the bare 998 prefix, and any spacing or punctuation.
func NormalizePhone(input string) (string, error) {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 9 {
		d = "998" + d
	}
	if !uzPhoneDigits.MatchString(d) {
		return "", ErrInvalidPhone
	}
	return "+" + d, nil
}

func (s *authService) SendOTP(ctx context.Context, phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	allowed, err := s.limiter.Allow(ctx, normalized)
	if err != nil {
		// A broken rate limiter must not take login down with it.
		logger.Warn("OTP rate limiter failed, allowing send", "error", err)
	} else if !allowed {
		return ErrOTPThrottled
	}

	code, err := s.generateCode(normalized)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	now := time.Now()
	otp := &domain.OTP{
		Phone:     normalized,
		Code:      code,
		ExpiresOn: now.Add(time.Duration(s.cfg.Auth.OTPTTLMinutes) * time.Minute),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return err
	}

	if s.isTestPhone(normalized) {
		logger.InfoContext(ctx, "Test phone, skipping SMS delivery", "phone", normalized)
		return nil
	}

	message := fmt.Sprintf("Код подтверждения raadarenda: %s", code)
	if err := s.sender.Send(ctx, normalized, message); err != nil {
		return fmt.Errorf("failed to send otp sms: %w", err)
	}
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, phone, code, deviceID string) (*domain.User, string, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, "", err
	}
	if deviceID == "" {
		return nil, "", ErrValidation
	}

	now := time.Now()
	otp, err := s.otpRepo.GetLatest(ctx, normalized, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrOTPExpired
		}
		return nil, "", err
	}
	if otp.Attempts >= int32(s.cfg.Auth.OTPMaxAttempts) {
		return nil, "", ErrOTPAttemptsExceeded
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		if err := s.otpRepo.IncrementAttempts(ctx, otp.ID); err != nil {
			return nil, "", err
		}
		return nil, "", ErrOTPInvalid
	}
	if err := s.otpRepo.MarkVerified(ctx, otp.ID); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByPhone(ctx, normalized)
	if errors.Is(err, repository.ErrNotFound) {
		user = &domain.User{Phone: normalized, Language: "ru"}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", err
		}
		logger.InfoContext(ctx, "New customer registered", "user_id", user.ID)
	} else if err != nil {
		return nil, "", err
	}

	token, err := security.NewSessionToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}
	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		DeviceID:  deviceID,
		ExpiresOn: now.Add(time.Duration(s.cfg.Auth.SessionTTLDays) * 24 * time.Hour),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByToken(ctx, token)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if time.Now().After(session.ExpiresOn) {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := s.userRepo.TouchLastSeen(ctx, user.ID); err != nil {
		logger.ErrorContext(ctx, "Failed to touch last seen", "user_id", user.ID, "error", err)
	}
	return user, nil
}

func (s *authService) AdminLogin(ctx context.Context, apiKey string) (string, error) {
	if !s.adminKeyMatches(apiKey) {
		logger.ErrorContext(ctx, "Admin login rejected")
		return "", ErrInvalidCredentials
	}
	return s.tokens.Mint(time.Now()), nil
}

func (s *authService) ValidateAdminToken(token string) error {
	if err := s.tokens.Validate(token, time.Now()); err != nil {
		return ErrUnauthorized
	}
	return nil
}

// adminKeyMatches accepts either a bcrypt hash or a plain shared secret in
// configuration. Plain secrets compare in constant time.
func (s *authService) adminKeyMatches(apiKey string) bool {
	configured := s.cfg.Admin.APIKey
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(apiKey)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(apiKey)) == 1
}

func (s *authService) isTestPhone(phone string) bool {
	for _, p := range s.cfg.Auth.TestPhones {
		if p == phone {
			return true
		}
	}
	return false
}

// generateCode returns a random 6-digit code, or the configured fixed code
// for test phones.
func (s *authService) generateCode(phone string) (string, error) {
	if s.isTestPhone(phone) && s.cfg.Auth.TestOTPCode != "" {
		return s.cfg.Auth.TestOTPCode, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

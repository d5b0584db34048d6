package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/i18n"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

type contextKey string

const (
	contextKeyLang contextKey = "lang"
	contextKeyUser contextKey = "user"
)

// langFrom returns the request language resolved by LocaleMiddleware.
func langFrom(r *http.Request) string {
	if lang, ok := r.Context().Value(contextKeyLang).(string); ok {
		return lang
	}
	return i18n.DefaultLang
}

// userFrom returns the authenticated customer, or nil on public routes.
func userFrom(r *http.Request) *domain.User {
	if user, ok := r.Context().Value(contextKeyUser).(*domain.User); ok {
		return user
	}
	return nil
}

// LocaleMiddleware resolves the response language once per request.
func LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyLang, i18n.FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LoggingMiddleware logs each request with its status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logger.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// AuthMiddleware guards customer routes with a session bearer token.
type AuthMiddleware struct {
	authSvc service.AuthService
}

func NewAuthMiddleware(authSvc service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

func (m *AuthMiddleware) RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.authSvc.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			respondErrorKey(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminToken prefers the Authorization header and falls back to the
// admin_session cookie set at back-office login.
func adminToken(r *http.Request) string {
	if token := bearerToken(r); token != "" {
		return token
	}
	if cookie, err := r.Cookie(adminSessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAdmin guards back-office routes with a signed admin token.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.authSvc.ValidateAdminToken(adminToken(r)); err != nil {
			respondErrorKey(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

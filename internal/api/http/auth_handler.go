package http

import (
	"net/http"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/i18n"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

// adminSessionCookie carries the signed admin token for browser clients.
// Its max-age matches the token's 24-hour validity window.
const (
	adminSessionCookie = "admin_session"
	adminSessionMaxAge = 24 * time.Hour
)

type AuthHandler struct {
	authSvc       service.AuthService
	secureCookies bool
}

func NewAuthHandler(authSvc service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, secureCookies: secureCookies}
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.authSvc.SendOTP(r.Context(), req.Phone); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgOTPSent, nil)
}

type verifyOTPRequest struct {
	Phone    string `json:"phone"`
	Code     string `json:"code"`
	DeviceID string `json:"device_id"`
}

type verifyOTPResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, token, err := h.authSvc.VerifyOTP(r.Context(), req.Phone, req.Code, req.DeviceID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgLoginSuccess, verifyOTPResponse{
		Token: token,
		User:  toProfileResponse(user),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authSvc.Logout(r.Context(), bearerToken(r)); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgLogoutSuccess, nil)
}

type adminLoginRequest struct {
	APIKey string `json:"api_key"`
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	token, err := h.authSvc.AdminLogin(r.Context(), req.APIKey)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.setAdminCookie(w, token, int(adminSessionMaxAge.Seconds()))
	respondOK(w, map[string]string{"token": token})
}

func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.setAdminCookie(w, "", -1)
	respondMessage(w, r, i18n.MsgLogoutSuccess, nil)
}

func (h *AuthHandler) setAdminCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminSessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/komolbek/raadarenda-sub001/internal/i18n"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

// Envelope is the uniform JSON response shape for every endpoint.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
}

// Pagination describes a page of a list response.
type Pagination struct {
	CurrentPage int32 `json:"current_page"`
	Limit       int32 `json:"limit"`
	TotalCount  int32 `json:"total_count"`
	TotalPages  int32 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// NewPagination derives page math from a total row count.
func NewPagination(page, limit, total int32) *Pagination {
	if limit < 1 {
		limit = 1
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &Pagination{
		CurrentPage: page,
		Limit:       limit,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasMore:     page < totalPages,
	}
}

func writeJSON(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, r *http.Request, msgKey string, data interface{}) {
	lang := langFrom(r)
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: i18n.T(lang, msgKey), Data: data})
}

func respondCreated(w http.ResponseWriter, r *http.Request, msgKey string, data interface{}) {
	lang := langFrom(r)
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Message: i18n.T(lang, msgKey), Data: data})
}

func respondList(w http.ResponseWriter, data interface{}, pagination *Pagination) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

func respondErrorKey(w http.ResponseWriter, r *http.Request, status int, msgKey string) {
	lang := langFrom(r)
	writeJSON(w, status, Envelope{Success: false, Message: i18n.T(lang, msgKey)})
}

func respondValidation(w http.ResponseWriter, r *http.Request, errs []string) {
	lang := langFrom(r)
	writeJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: i18n.T(lang, i18n.MsgValidationFailed),
		Errors:  errs,
	})
}

// respondError maps service and repository errors to HTTP statuses with a
// localized message. Unknown errors become a logged 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *repository.InsufficientStockError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondErrorKey(w, r, http.StatusNotFound, i18n.MsgNotFound)
	case errors.As(err, &stockErr):
		lang := langFrom(r)
		writeJSON(w, http.StatusConflict, Envelope{
			Success: false,
			Message: i18n.T(lang, i18n.MsgInsufficientStock),
			Data: map[string]interface{}{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			},
		})
	case errors.Is(err, service.ErrInvalidPhone):
		respondErrorKey(w, r, http.StatusBadRequest, i18n.MsgInvalidPhone)
	case errors.Is(err, service.ErrOTPInvalid):
		respondErrorKey(w, r, http.StatusBadRequest, i18n.MsgOTPInvalid)
	case errors.Is(err, service.ErrOTPExpired):
		respondErrorKey(w, r, http.StatusBadRequest, i18n.MsgOTPExpired)
	case errors.Is(err, service.ErrOTPAttemptsExceeded):
		respondErrorKey(w, r, http.StatusTooManyRequests, i18n.MsgOTPAttemptsExceeded)
	case errors.Is(err, service.ErrOTPThrottled):
		respondErrorKey(w, r, http.StatusTooManyRequests, i18n.MsgOTPThrottled)
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidCredentials):
		respondErrorKey(w, r, http.StatusUnauthorized, i18n.MsgUnauthorized)
	case errors.Is(err, service.ErrAddressLimit):
		respondErrorKey(w, r, http.StatusConflict, i18n.MsgAddressLimit)
	case errors.Is(err, service.ErrInvalidDateRange):
		respondErrorKey(w, r, http.StatusBadRequest, i18n.MsgInvalidDateRange)
	case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrValidation):
		respondErrorKey(w, r, http.StatusBadRequest, i18n.MsgValidationFailed)
	case errors.Is(err, service.ErrOrderImmutable):
		respondErrorKey(w, r, http.StatusConflict, i18n.MsgOrderImmutable)
	case errors.Is(err, service.ErrInvalidTransition):
		respondErrorKey(w, r, http.StatusConflict, i18n.MsgInvalidTransition)
	case errors.Is(err, service.ErrPaymentFailed):
		respondErrorKey(w, r, http.StatusPaymentRequired, i18n.MsgPaymentFailed)
	default:
		logger.ErrorContext(r.Context(), "Unhandled error", "path", r.URL.Path, "error", err)
		respondErrorKey(w, r, http.StatusInternalServerError, i18n.MsgInternalError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		respondValidation(w, r, []string{"malformed JSON body"})
		return false
	}
	return true
}

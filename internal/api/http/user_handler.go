package http

import (
	"net/http"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/i18n"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	profile, err := h.userSvc.GetProfile(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, toProfileResponse(profile))
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	updated, err := h.userSvc.UpdateProfile(r.Context(), user.ID, req.Name, req.Language)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, toProfileResponse(updated))
}

func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	addresses, err := h.userSvc.ListAddresses(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, addresses)
}

type addressRequest struct {
	Label     string   `json:"label"`
	Line      string   `json:"line"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	IsDefault bool     `json:"is_default"`
}

func (h *UserHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	var req addressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	address := &domain.Address{
		UserID:    user.ID,
		Label:     req.Label,
		Line:      req.Line,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	}
	if err := h.userSvc.CreateAddress(r.Context(), address); err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, r, i18n.MsgSaved, address)
}

func (h *UserHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid address id"})
		return
	}
	var req addressRequest
	if !decodeBody(w, r, &req) {
		return
	}
	address := &domain.Address{
		ID:        id,
		UserID:    user.ID,
		Label:     req.Label,
		Line:      req.Line,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	}
	if err := h.userSvc.UpdateAddress(r.Context(), address); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, address)
}

func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid address id"})
		return
	}
	if err := h.userSvc.DeleteAddress(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgDeleted, nil)
}

func (h *UserHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	cards, err := h.userSvc.ListCards(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, cards)
}

type cardRequest struct {
	PAN         string `json:"pan"`
	ExpiryMonth int32  `json:"expiry_month"`
	ExpiryYear  int32  `json:"expiry_year"`
	IsDefault   bool   `json:"is_default"`
}

func (h *UserHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	var req cardRequest
	if !decodeBody(w, r, &req) {
		return
	}
	card, err := h.userSvc.CreateCard(r.Context(), user.ID, req.PAN, req.ExpiryMonth, req.ExpiryYear, req.IsDefault)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, r, i18n.MsgSaved, card)
}

func (h *UserHandler) SetDefaultCard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid card id"})
		return
	}
	if err := h.userSvc.SetDefaultCard(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, nil)
}

func (h *UserHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid card id"})
		return
	}
	if err := h.userSvc.DeleteCard(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgDeleted, nil)
}

func (h *UserHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	products, err := h.userSvc.ListFavorites(r.Context(), user.ID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	lang := langFrom(r)
	out := make([]ProductSummaryResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductSummary(&products[i], lang))
	}
	respondOK(w, out)
}

func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid product id"})
		return
	}
	if err := h.userSvc.AddFavorite(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, nil)
}

func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid product id"})
		return
	}
	if err := h.userSvc.RemoveFavorite(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgDeleted, nil)
}

package http

import (
	"net/http"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/i18n"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

type OrderHandler struct {
	orderSvc service.OrderService
}

func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

type checkoutRequest struct {
	Items         []service.CartLine `json:"items"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	AddressID     int32              `json:"address_id"`
	PaymentMethod string             `json:"payment_method"`
	CardID        *int32             `json:"card_id,omitempty"`
	DeliveryNote  string             `json:"delivery_note,omitempty"`
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		respondValidation(w, r, []string{"start_date must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		respondValidation(w, r, []string{"end_date must be YYYY-MM-DD"})
		return
	}

	order, err := h.orderSvc.Checkout(r.Context(), user.ID, service.CheckoutInput{
		Lines:         req.Items,
		RentalStart:   start,
		RentalEnd:     end,
		AddressID:     req.AddressID,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		CardID:        req.CardID,
		DeliveryNote:  req.DeliveryNote,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, r, i18n.MsgOrderCreated, toOrderResponse(order))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	page, limit := pageParams(r)
	orders, total, err := h.orderSvc.ListOrders(r.Context(), user.ID, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, toOrderResponses(orders), NewPagination(page, limit, total))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid order id"})
		return
	}
	order, err := h.orderSvc.GetOrder(r.Context(), user.ID, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, toOrderResponse(order))
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid order id"})
		return
	}
	if err := h.orderSvc.Cancel(r.Context(), user.ID, id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgOrderCancelled, nil)
}

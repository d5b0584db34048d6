package http

import (
	"net/http"
	"strconv"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/i18n"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

// AdminHandler serves the back-office. Catalog payloads here carry all
// three locales so the admin UI can edit them.
type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Dashboard(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, map[string]interface{}{
		"total_orders":    stats.TotalOrders,
		"active_orders":   stats.ActiveOrders,
		"total_customers": stats.TotalCustomers,
		"total_products":  stats.TotalProducts,
		"revenue":         stats.Revenue,
		"recent_orders":   toOrderResponses(stats.RecentOrders),
	})
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := repository.OrderFilter{Page: page, PageSize: limit}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.OrderStatus(raw)
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 1 {
			respondValidation(w, r, []string{"user_id must be a positive integer"})
			return
		}
		userID := int32(v)
		filter.UserID = &userID
	}

	orders, total, err := h.adminSvc.ListOrders(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, orders, NewPagination(page, limit, total))
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid order id"})
		return
	}
	order, err := h.adminSvc.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, order)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid order id"})
		return
	}
	var req updateOrderStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.adminSvc.UpdateOrderStatus(r.Context(), id, domain.OrderStatus(req.Status), req.Note); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, nil)
}

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.adminSvc.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, categories)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if !decodeBody(w, r, &category) {
		return
	}
	if err := h.adminSvc.CreateCategory(r.Context(), &category); err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, r, i18n.MsgSaved, category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid category id"})
		return
	}
	var category domain.Category
	if !decodeBody(w, r, &category) {
		return
	}
	category.ID = id
	if err := h.adminSvc.UpdateCategory(r.Context(), &category); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, category)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid category id"})
		return
	}
	if err := h.adminSvc.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgDeleted, nil)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}
	if err := h.adminSvc.CreateProduct(r.Context(), &product); err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, r, i18n.MsgSaved, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid product id"})
		return
	}
	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}
	product.ID = id
	if err := h.adminSvc.UpdateProduct(r.Context(), &product); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid product id"})
		return
	}
	if err := h.adminSvc.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgDeleted, nil)
}

func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := repository.CustomerFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     page,
		PageSize: limit,
	}
	customers, total, err := h.adminSvc.ListCustomers(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondList(w, customers, NewPagination(page, limit, total))
}

func (h *AdminHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid customer id"})
		return
	}
	customer, orders, err := h.adminSvc.GetCustomer(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, map[string]interface{}{
		"customer": customer,
		"orders":   toOrderResponses(orders),
	})
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.adminSvc.GetSettings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, settings)
}

type updateSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *AdminHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req updateSettingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.adminSvc.UpdateSetting(r.Context(), req.Key, req.Value); err != nil {
		respondError(w, r, err)
		return
	}
	respondMessage(w, r, i18n.MsgSaved, nil)
}

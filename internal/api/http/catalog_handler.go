package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/komolbek/raadarenda-sub001/internal/repository"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, false
	}
	return int32(id), true
}

// pageParams reads page/limit query parameters with sane bounds.
func pageParams(r *http.Request) (int32, int32) {
	page := int32(1)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	limit := int32(defaultPageSize)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= maxPageSize {
			limit = int32(v)
		}
	}
	return page, limit
}

// dateParam parses a YYYY-MM-DD query parameter.
func dateParam(r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogSvc.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	lang := langFrom(r)
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i], lang))
	}
	respondOK(w, out)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := repository.ProductFilter{
		Search:   r.URL.Query().Get("search"),
		Page:     page,
		PageSize: limit,
	}
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 1 {
			respondValidation(w, r, []string{"category_id must be a positive integer"})
			return
		}
		categoryID := int32(v)
		filter.CategoryID = &categoryID
	}

	products, total, err := h.catalogSvc.ListProducts(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	lang := langFrom(r)
	out := make([]ProductSummaryResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductSummary(&products[i], lang))
	}
	respondList(w, out, NewPagination(page, limit, total))
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid product id"})
		return
	}
	product, err := h.catalogSvc.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, toProductDetail(product, langFrom(r)))
}

func (h *CatalogHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondValidation(w, r, []string{"invalid product id"})
		return
	}
	start, okStart := dateParam(r, "start_date")
	end, okEnd := dateParam(r, "end_date")
	if !okStart || !okEnd {
		respondValidation(w, r, []string{"start_date and end_date must be YYYY-MM-DD"})
		return
	}

	available, err := h.catalogSvc.Availability(r.Context(), id, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, map[string]int32{"available": available})
}

type cartPriceRequest struct {
	Items     []service.CartLine `json:"items"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
}

func (h *CatalogHandler) PriceCart(w http.ResponseWriter, r *http.Request) {
	var req cartPriceRequest
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

	quote, err := h.catalogSvc.QuoteCart(r.Context(), req.Items, start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, quote)
}

package http

import (
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
)

// Response DTOs decouple the wire shape from domain structs. Catalog DTOs
// carry a single localized name picked by the request language; admin
// endpoints return the full domain structs with all three locales for
// editing.

type CategoryResponse struct {
	ID        int32  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PhotoURL  string `json:"photo_url"`
	SortOrder int32  `json:"sort_order"`
}

type ProductSummaryResponse struct {
	ID         int32  `json:"id"`
	CategoryID int32  `json:"category_id"`
	Name       string `json:"name"`
	Photo      string `json:"photo"`
	DailyPrice int64  `json:"daily_price"`
	// MinTierPrice is the cheapest achievable per-day price, shown as a
	// "from N" badge. Equals DailyPrice when no discounts exist.
	MinTierPrice int64 `json:"min_tier_price"`
}

type PricingTierResponse struct {
	MinDays    int32  `json:"min_days"`
	MaxDays    *int32 `json:"max_days,omitempty"`
	DailyPrice int64  `json:"daily_price"`
}

type QuantityPricingResponse struct {
	MinQuantity  int32  `json:"min_quantity"`
	MaxQuantity  *int32 `json:"max_quantity,omitempty"`
	PricePerUnit int64  `json:"price_per_unit"`
}

type ProductDetailResponse struct {
	ID              int32                     `json:"id"`
	CategoryID      int32                     `json:"category_id"`
	CategoryName    string                    `json:"category_name,omitempty"`
	Name            string                    `json:"name"`
	Description     string                    `json:"description"`
	Photos          []string                  `json:"photos"`
	DailyPrice      int64                     `json:"daily_price"`
	PricingTiers    []PricingTierResponse     `json:"pricing_tiers"`
	QuantityPricing []QuantityPricingResponse `json:"quantity_pricing"`
}

type OrderItemResponse struct {
	ProductID      int32  `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductPhoto   string `json:"product_photo"`
	DailyPrice     int64  `json:"daily_price"`
	EffectivePrice int64  `json:"effective_price"`
	Quantity       int32  `json:"quantity"`
	TotalPrice     int64  `json:"total_price"`
	Savings        int64  `json:"savings"`
}

type OrderStatusEntryResponse struct {
	Status    domain.OrderStatus `json:"status"`
	Actor     string             `json:"actor"`
	Note      string             `json:"note,omitempty"`
	CreatedOn time.Time          `json:"created_on"`
}

type OrderResponse struct {
	ID              int32                      `json:"id"`
	OrderNumber     string                     `json:"order_number"`
	Status          domain.OrderStatus         `json:"status"`
	RentalStartDate string                     `json:"rental_start_date"`
	RentalEndDate   string                     `json:"rental_end_date"`
	Items           []OrderItemResponse        `json:"items"`
	Subtotal        int64                      `json:"subtotal"`
	DeliveryFee     int64                      `json:"delivery_fee"`
	Total           int64                      `json:"total"`
	TotalSavings    int64                      `json:"total_savings"`
	PaymentMethod   domain.PaymentMethod       `json:"payment_method"`
	PaymentStatus   domain.PaymentStatus       `json:"payment_status"`
	AddressLine     string                     `json:"address_line"`
	AddressCity     string                     `json:"address_city"`
	ContactPhone    string                     `json:"contact_phone"`
	DeliveryNote    string                     `json:"delivery_note,omitempty"`
	History         []OrderStatusEntryResponse `json:"history,omitempty"`
	CreatedOn       time.Time                  `json:"created_on"`
}

type ProfileResponse struct {
	ID       int32  `json:"id"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

const dateLayout = "2006-01-02"

func localizedCategoryName(c *domain.Category, lang string) string {
	switch lang {
	case "en":
		if c.NameEn != "" {
			return c.NameEn
		}
	case "uz":
		if c.NameUz != "" {
			return c.NameUz
		}
	}
	return c.NameRu
}

func localizedProductName(p *domain.Product, lang string) string {
	switch lang {
	case "en":
		if p.NameEn != "" {
			return p.NameEn
		}
	case "uz":
		if p.NameUz != "" {
			return p.NameUz
		}
	}
	return p.NameRu
}

func localizedProductDescription(p *domain.Product, lang string) string {
	switch lang {
	case "en":
		if p.DescriptionEn != "" {
			return p.DescriptionEn
		}
	case "uz":
		if p.DescriptionUz != "" {
			return p.DescriptionUz
		}
	}
	return p.DescriptionRu
}

func toCategoryResponse(c *domain.Category, lang string) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      localizedCategoryName(c, lang),
		Slug:      c.Slug,
		PhotoURL:  c.PhotoURL,
		SortOrder: c.SortOrder,
	}
}

func toProductSummary(p *domain.Product, lang string) ProductSummaryResponse {
	minPrice := p.DailyPrice
	for _, tier := range p.PricingTiers {
		if tier.DailyPrice < minPrice {
			minPrice = tier.DailyPrice
		}
	}
	for _, bracket := range p.QuantityPricing {
		if bracket.PricePerUnit < minPrice {
			minPrice = bracket.PricePerUnit
		}
	}
	return ProductSummaryResponse{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         localizedProductName(p, lang),
		Photo:        p.PrimaryPhoto(),
		DailyPrice:   p.DailyPrice,
		MinTierPrice: minPrice,
	}
}

func toProductDetail(p *domain.Product, lang string) ProductDetailResponse {
	detail := ProductDetailResponse{
		ID:              p.ID,
		CategoryID:      p.CategoryID,
		Name:            localizedProductName(p, lang),
		Description:     localizedProductDescription(p, lang),
		Photos:          p.Photos,
		DailyPrice:      p.DailyPrice,
		PricingTiers:    []PricingTierResponse{},
		QuantityPricing: []QuantityPricingResponse{},
	}
	if p.Category != nil {
		detail.CategoryName = localizedCategoryName(p.Category, lang)
	}
	for _, tier := range p.PricingTiers {
		detail.PricingTiers = append(detail.PricingTiers, PricingTierResponse{
			MinDays:    tier.MinDays,
			MaxDays:    tier.MaxDays,
			DailyPrice: tier.DailyPrice,
		})
	}
	for _, bracket := range p.QuantityPricing {
		detail.QuantityPricing = append(detail.QuantityPricing, QuantityPricingResponse{
			MinQuantity:  bracket.MinQuantity,
			MaxQuantity:  bracket.MaxQuantity,
			PricePerUnit: bracket.PricePerUnit,
		})
	}
	return detail
}

func toOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Status:          o.Status,
		RentalStartDate: o.RentalStartDate.Format(dateLayout),
		RentalEndDate:   o.RentalEndDate.Format(dateLayout),
		Items:           []OrderItemResponse{},
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		Total:           o.Total,
		TotalSavings:    o.TotalSavings,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		AddressLine:     o.AddressLine,
		AddressCity:     o.AddressCity,
		ContactPhone:    o.ContactPhone,
		DeliveryNote:    o.DeliveryNote,
		CreatedOn:       o.CreatedOn,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			ProductPhoto:   item.ProductPhoto,
			DailyPrice:     item.DailyPrice,
			EffectivePrice: item.EffectivePrice,
			Quantity:       item.Quantity,
			TotalPrice:     item.TotalPrice,
			Savings:        item.Savings,
		})
	}
	for _, entry := range o.History {
		resp.History = append(resp.History, OrderStatusEntryResponse{
			Status:    entry.Status,
			Actor:     entry.Actor,
			Note:      entry.Note,
			CreatedOn: entry.CreatedOn,
		})
	}
	return resp
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

func toProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:       u.ID,
		Phone:    u.Phone,
		Name:     u.Name,
		Language: u.Language,
	}
}

package domain

import "time"

type Category struct {
	ID        int32     `json:"id"`
	NameRu    string    `json:"name_ru"`
	NameEn    string    `json:"name_en"`
	NameUz    string    `json:"name_uz"`
	Slug      string    `json:"slug"`
	PhotoURL  string    `json:"photo_url"`
	SortOrder int32     `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
}

// PricingTier is a duration-discount bracket. MaxDays == nil means open-ended.
// Brackets may overlap in source data; the highest matching MinDays wins.
type PricingTier struct {
	ID         int32  `json:"id"`
	ProductID  int32  `json:"product_id"`
	MinDays    int32  `json:"min_days"`
	MaxDays    *int32 `json:"max_days,omitempty"`
	DailyPrice int64  `json:"daily_price"`
}

// QuantityPricing is a bulk-discount bracket, applied only to 1-day rentals.
type QuantityPricing struct {
	ID           int32  `json:"id"`
	ProductID    int32  `json:"product_id"`
	MinQuantity  int32  `json:"min_quantity"`
	MaxQuantity  *int32 `json:"max_quantity,omitempty"`
	PricePerUnit int64  `json:"price_per_unit"`
}

// Product is a rentable catalog item. Prices are integer so'm.
// TotalStock is the ceiling on simultaneously rented units across all
// overlapping date ranges.
type Product struct {
	ID              int32             `json:"id"`
	CategoryID      int32             `json:"category_id"`
	Category        *Category         `json:"category,omitempty"` // Populated when fetching product details
	NameRu          string            `json:"name_ru"`
	NameEn          string            `json:"name_en"`
	NameUz          string            `json:"name_uz"`
	DescriptionRu   string            `json:"description_ru"`
	DescriptionEn   string            `json:"description_en"`
	DescriptionUz   string            `json:"description_uz"`
	Photos          []string          `json:"photos"`
	DailyPrice      int64             `json:"daily_price"`
	TotalStock      int32             `json:"total_stock"`
	PricingTiers    []PricingTier     `json:"pricing_tiers"`
	QuantityPricing []QuantityPricing `json:"quantity_pricing"`
	IsActive        bool              `json:"is_active"`
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
}

// PrimaryPhoto returns the first photo or an empty string.
func (p *Product) PrimaryPhoto() string {
	if len(p.Photos) == 0 {
		return ""
	}
	return p.Photos[0]
}

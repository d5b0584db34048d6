// Package pricing computes effective rental prices from a product's
// duration and quantity discount brackets. All functions are pure and all
// amounts are integer so'm.
package pricing

import (
	"math"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
)

// Quote is the result of pricing one order line.
type Quote struct {
	TotalPrice     int64 `json:"total_price"`
	DailyPriceUsed int64 `json:"daily_price_used"`
	Savings        int64 `json:"savings"`
}

// RentalDays returns the inclusive day count between start and end:
// ceil(|end-start| in days) + 1, floored at 1. A same-day rental counts as
// one day; both the start and the end calendar day are billed.
func RentalDays(start, end time.Time) int32 {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := int32(math.Ceil(diff.Hours()/24)) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// Calculate computes the total price, the effective daily price and the
// savings for one line item.
//
// Quantity brackets apply only to single-day rentals, duration brackets only
// to multi-day rentals. Among matching brackets the one with the greatest
// lower bound wins. With no matching bracket the base price applies.
func Calculate(dailyPrice int64, rentalDays, quantity int32, tiers []domain.PricingTier, brackets []domain.QuantityPricing) Quote {
	effective := dailyPrice

	if rentalDays == 1 && len(brackets) > 0 {
		if b := matchQuantityBracket(brackets, quantity); b != nil {
			effective = b.PricePerUnit
		}
	} else if rentalDays > 1 && len(tiers) > 0 {
		if t := matchTier(tiers, rentalDays); t != nil {
			effective = t.DailyPrice
		}
	}

	total := effective * int64(rentalDays) * int64(quantity)
	full := dailyPrice * int64(rentalDays) * int64(quantity)
	savings := full - total
	if savings < 0 {
		savings = 0
	}

	return Quote{
		TotalPrice:     total,
		DailyPriceUsed: effective,
		Savings:        savings,
	}
}

func matchTier(tiers []domain.PricingTier, rentalDays int32) *domain.PricingTier {
	var best *domain.PricingTier
	for i := range tiers {
		t := &tiers[i]
		if rentalDays < t.MinDays {
			continue
		}
		if t.MaxDays != nil && rentalDays > *t.MaxDays {
			continue
		}
		if best == nil || t.MinDays > best.MinDays {
			best = t
		}
	}
	return best
}

func matchQuantityBracket(brackets []domain.QuantityPricing, quantity int32) *domain.QuantityPricing {
	var best *domain.QuantityPricing
	for i := range brackets {
		b := &brackets[i]
		if quantity < b.MinQuantity {
			continue
		}
		if b.MaxQuantity != nil && quantity > *b.MaxQuantity {
			continue
		}
		if best == nil || b.MinQuantity > best.MinQuantity {
			best = b
		}
	}
	return best
}

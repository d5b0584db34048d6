package pricing

import (
	"testing"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int32) *int32 { return &v }

func TestRentalDays(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}

	t.Run("Same day counts as one day", func(t *testing.T) {
		assert.Equal(t, int32(1), RentalDays(day("2024-06-10"), day("2024-06-10")))
	})

	t.Run("Both endpoints billed", func(t *testing.T) {
		// Jun 10 through Jun 14 inclusive = 5 billable days
		assert.Equal(t, int32(5), RentalDays(day("2024-06-10"), day("2024-06-14")))
	})

	t.Run("Reversed range uses absolute difference", func(t *testing.T) {
		assert.Equal(t, int32(5), RentalDays(day("2024-06-14"), day("2024-06-10")))
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		start := day("2024-06-10")
		end := start.Add(30 * time.Hour)
		assert.Equal(t, int32(3), RentalDays(start, end)) // ceil(1.25) + 1
	})

	t.Run("Cross month boundary", func(t *testing.T) {
		assert.Equal(t, int32(4), RentalDays(day("2024-01-30"), day("2024-02-02")))
	})
}

func TestCalculate_NoBrackets(t *testing.T) {
	t.Run("Base price with no discounts", func(t *testing.T) {
		q := Calculate(1000, 4, 3, nil, nil)
		assert.Equal(t, int64(12000), q.TotalPrice)
		assert.Equal(t, int64(1000), q.DailyPriceUsed)
		assert.Equal(t, int64(0), q.Savings)
	})

	t.Run("Single day single unit", func(t *testing.T) {
		q := Calculate(1000, 1, 1, nil, nil)
		assert.Equal(t, int64(1000), q.TotalPrice)
		assert.Equal(t, int64(0), q.Savings)
	})
}

func TestCalculate_DurationTiers(t *testing.T) {
	tiers := []domain.PricingTier{
		{MinDays: 3, MaxDays: intPtr(6), DailyPrice: 900},
		{MinDays: 7, MaxDays: nil, DailyPrice: 700},
	}

	t.Run("5 days matches first tier", func(t *testing.T) {
		q := Calculate(1000, 5, 1, tiers, nil)
		assert.Equal(t, int64(900), q.DailyPriceUsed)
		assert.Equal(t, int64(4500), q.TotalPrice)
		assert.Equal(t, int64(500), q.Savings)
	})

	t.Run("10 days matches open-ended tier", func(t *testing.T) {
		q := Calculate(1000, 10, 1, tiers, nil)
		assert.Equal(t, int64(700), q.DailyPriceUsed)
		assert.Equal(t, int64(7000), q.TotalPrice)
		assert.Equal(t, int64(3000), q.Savings)
	})

	t.Run("2 days matches nothing, base price applies", func(t *testing.T) {
		q := Calculate(1000, 2, 1, tiers, nil)
		assert.Equal(t, int64(1000), q.DailyPriceUsed)
		assert.Equal(t, int64(2000), q.TotalPrice)
		assert.Equal(t, int64(0), q.Savings)
	})

	t.Run("Overlapping tiers, highest min_days wins", func(t *testing.T) {
		overlapping := []domain.PricingTier{
			{MinDays: 2, MaxDays: nil, DailyPrice: 950},
			{MinDays: 5, MaxDays: nil, DailyPrice: 800},
		}
		q := Calculate(1000, 6, 1, overlapping, nil)
		assert.Equal(t, int64(800), q.DailyPriceUsed)
	})

	t.Run("Quantity multiplies the discounted price", func(t *testing.T) {
		q := Calculate(1000, 5, 4, tiers, nil)
		assert.Equal(t, int64(18000), q.TotalPrice) // 900 * 5 * 4
		assert.Equal(t, int64(2000), q.Savings)     // (1000-900) * 5 * 4
	})
}

func TestCalculate_QuantityBrackets(t *testing.T) {
	brackets := []domain.QuantityPricing{
		{MinQuantity: 5, MaxQuantity: intPtr(9), PricePerUnit: 800},
		{MinQuantity: 10, MaxQuantity: nil, PricePerUnit: 650},
	}

	t.Run("12 units matches open-ended bracket", func(t *testing.T) {
		q := Calculate(1000, 1, 12, nil, brackets)
		assert.Equal(t, int64(650), q.DailyPriceUsed)
		assert.Equal(t, int64(7800), q.TotalPrice)
		assert.Equal(t, int64(4200), q.Savings)
	})

	t.Run("7 units matches first bracket", func(t *testing.T) {
		q := Calculate(1000, 1, 7, nil, brackets)
		assert.Equal(t, int64(800), q.DailyPriceUsed)
		assert.Equal(t, int64(5600), q.TotalPrice)
	})

	t.Run("3 units falls back to base price", func(t *testing.T) {
		q := Calculate(1000, 1, 3, nil, brackets)
		assert.Equal(t, int64(1000), q.DailyPriceUsed)
		assert.Equal(t, int64(3000), q.TotalPrice)
		assert.Equal(t, int64(0), q.Savings)
	})

	t.Run("Quantity brackets ignored for multi-day rentals", func(t *testing.T) {
		q := Calculate(1000, 3, 12, nil, brackets)
		assert.Equal(t, int64(1000), q.DailyPriceUsed)
		assert.Equal(t, int64(36000), q.TotalPrice)
	})
}

func TestCalculate_BothBracketKinds(t *testing.T) {
	tiers := []domain.PricingTier{{MinDays: 3, MaxDays: nil, DailyPrice: 900}}
	brackets := []domain.QuantityPricing{{MinQuantity: 5, MaxQuantity: nil, PricePerUnit: 800}}

	t.Run("Multi-day rental uses duration tier, not quantity bracket", func(t *testing.T) {
		q := Calculate(1000, 4, 6, tiers, brackets)
		assert.Equal(t, int64(900), q.DailyPriceUsed)
	})

	t.Run("Single day rental uses quantity bracket", func(t *testing.T) {
		q := Calculate(1000, 1, 6, tiers, brackets)
		assert.Equal(t, int64(800), q.DailyPriceUsed)
	})
}

func TestCalculate_SavingsNeverNegative(t *testing.T) {
	// A bracket priced above the base price must not produce negative savings.
	tiers := []domain.PricingTier{{MinDays: 2, MaxDays: nil, DailyPrice: 1200}}
	q := Calculate(1000, 3, 1, tiers, nil)
	assert.Equal(t, int64(3600), q.TotalPrice)
	assert.Equal(t, int64(0), q.Savings)
}

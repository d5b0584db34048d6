package service

import (
	"context"
	"strconv"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/pricing"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	settingRepo  repository.SettingRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	settingRepo repository.SettingRepository,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		settingRepo:  settingRepo,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx, false)
}

func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int32, error) {
	filter.ActiveOnly = true
	return s.productRepo.List(ctx, filter)
}

func (s *catalogService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *catalogService) Availability(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	if end.Before(start) {
		return 0, ErrInvalidDateRange
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	reserved, err := s.orderRepo.ReservedQuantity(ctx, productID, start, end)
	if err != nil {
		return 0, err
	}
	available := product.TotalStock - reserved
	if available < 0 {
		available = 0
	}
	return available, nil
}

func (s *catalogService) QuoteCart(ctx context.Context, lines []CartLine, start, end time.Time) (*CartQuote, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	days := pricing.RentalDays(start, end)
	quote := &CartQuote{RentalDays: days}

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrValidation
		}
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		reserved, err := s.orderRepo.ReservedQuantity(ctx, line.ProductID, start, end)
		if err != nil {
			return nil, err
		}
		available := product.TotalStock - reserved
		if available < 0 {
			available = 0
		}

		q := pricing.Calculate(product.DailyPrice, days, line.Quantity, product.PricingTiers, product.QuantityPricing)
		quote.Lines = append(quote.Lines, CartLineQuote{
			ProductID:      product.ID,
			ProductName:    product.NameRu,
			ProductPhoto:   product.PrimaryPhoto(),
			Quantity:       line.Quantity,
			DailyPrice:     product.DailyPrice,
			EffectivePrice: q.DailyPriceUsed,
			TotalPrice:     q.TotalPrice,
			Savings:        q.Savings,
			Available:      available,
		})
		quote.Subtotal += q.TotalPrice
		quote.TotalSavings += q.Savings
	}

	quote.DeliveryFee = s.deliveryFee(ctx)
	quote.Total = quote.Subtotal + quote.DeliveryFee
	return quote, nil
}

// deliveryFee reads the admin-configured flat fee, defaulting to zero when
// unset or malformed.
func (s *catalogService) deliveryFee(ctx context.Context) int64 {
	raw, err := s.settingRepo.Get(ctx, domain.SettingDeliveryFee)
	if err != nil {
		return 0
	}
	fee, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || fee < 0 {
		logger.ErrorContext(ctx, "Malformed delivery fee setting", "value", raw)
		return 0
	}
	return fee
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/notify"
	"github.com/komolbek/raadarenda-sub001/internal/pricing"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	addressRepo repository.AddressRepository
	userRepo    repository.UserRepository
	settingRepo repository.SettingRepository
	gateway     PaymentGateway
	notifier    notify.Notifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	userRepo repository.UserRepository,
	settingRepo repository.SettingRepository,
	gateway PaymentGateway,
	notifier notify.Notifier,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
		settingRepo: settingRepo,
		gateway:     gateway,
		notifier:    notifier,
	}
}

func (s *orderService) Checkout(ctx context.Context, userID int32, input CheckoutInput) (*domain.Order, error) {
	if len(input.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if input.RentalEnd.Before(input.RentalStart) {
		return nil, ErrInvalidDateRange
	}
	// Start date is validated at day granularity: today is fine, yesterday is not.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if input.RentalStart.UTC().Truncate(24*time.Hour).Before(today) {
		return nil, ErrInvalidDateRange
	}
	if input.PaymentMethod != domain.PaymentMethodCash && input.PaymentMethod != domain.PaymentMethodCard {
		return nil, ErrValidation
	}
	if input.PaymentMethod == domain.PaymentMethodCard && input.CardID == nil {
		return nil, ErrValidation
	}

	address, err := s.addressRepo.GetByID(ctx, input.AddressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, repository.ErrNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	days := pricing.RentalDays(input.RentalStart, input.RentalEnd)
	order := &domain.Order{
		OrderNumber:     newOrderNumber(time.Now()),
		UserID:          userID,
		Status:          domain.OrderStatusConfirmed,
		RentalStartDate: input.RentalStart,
		RentalEndDate:   input.RentalEnd,
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		AddressLine:     address.Line,
		AddressCity:     address.City,
		ContactPhone:    user.Phone,
		DeliveryNote:    input.DeliveryNote,
	}

	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, ErrValidation
		}
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		q := pricing.Calculate(product.DailyPrice, days, line.Quantity, product.PricingTiers, product.QuantityPricing)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      product.ID,
			ProductName:    product.NameRu,
			ProductPhoto:   product.PrimaryPhoto(),
			DailyPrice:     product.DailyPrice,
			EffectivePrice: q.DailyPriceUsed,
			Quantity:       line.Quantity,
			TotalPrice:     q.TotalPrice,
			Savings:        q.Savings,
		})
		order.Subtotal += q.TotalPrice
		order.TotalSavings += q.Savings
	}

	order.DeliveryFee = s.deliveryFee(ctx)
	order.Total = order.Subtotal + order.DeliveryFee

	// Stock is re-checked under row locks inside the transaction, so two
	// simultaneous checkouts cannot both reserve the last units.
	if err := s.orderRepo.CreateWithStockCheck(ctx, order); err != nil {
		return nil, err
	}

	if input.PaymentMethod == domain.PaymentMethodCard {
		if err := s.gateway.Charge(ctx, order, *input.CardID); err != nil {
			logger.ErrorContext(ctx, "Card charge failed, cancelling order",
				"order_id", order.ID, "error", err)
			if setErr := s.orderRepo.SetPaymentStatus(ctx, order.ID, domain.PaymentStatusFailed); setErr != nil {
				logger.ErrorContext(ctx, "Failed to record payment failure", "order_id", order.ID, "error", setErr)
			}
			if cancelErr := s.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled, "system", "payment failed"); cancelErr != nil {
				logger.ErrorContext(ctx, "Failed to cancel unpaid order", "order_id", order.ID, "error", cancelErr)
			}
			return nil, ErrPaymentFailed
		}
		if err := s.orderRepo.SetPaymentStatus(ctx, order.ID, domain.PaymentStatusPaid); err != nil {
			return nil, err
		}
		order.PaymentStatus = domain.PaymentStatusPaid
	}

	if err := s.notifier.OrderCreated(ctx, order); err != nil {
		logger.ErrorContext(ctx, "Failed to send order notification", "order_id", order.ID, "error", err)
	}

	logger.InfoContext(ctx, "Order placed",
		"order_id", order.ID, "order_number", order.OrderNumber,
		"user_id", userID, "total", order.Total)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID, orderID int32) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error) {
	return s.orderRepo.List(ctx, repository.OrderFilter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *orderService) Cancel(ctx context.Context, userID, orderID int32) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return repository.ErrNotFound
	}
	if order.Status.IsTerminal() {
		return ErrOrderImmutable
	}
	// Customers may only back out before preparation starts.
	if order.Status != domain.OrderStatusConfirmed {
		return ErrInvalidTransition
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderStatusCancelled, "customer", "cancelled by customer")
}

func (s *orderService) deliveryFee(ctx context.Context) int64 {
	raw, err := s.settingRepo.Get(ctx, domain.SettingDeliveryFee)
	if err != nil {
		return 0
	}
	var fee int64
	if _, err := fmt.Sscanf(raw, "%d", &fee); err != nil || fee < 0 {
		return 0
	}
	return fee
}

// newOrderNumber builds a human-readable unique number like
// RA-20260829-7F3A2C.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("RA-%s-%s", now.Format("20060102"), suffix)
}

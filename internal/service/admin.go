package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/logger"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

type adminService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	settingRepo  repository.SettingRepository
}

func NewAdminService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	settingRepo repository.SettingRepository,
) AdminService {
	return &adminService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		settingRepo:  settingRepo,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return s.orderRepo.DashboardStats(ctx)
}

func (s *adminService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int32, error) {
	return s.orderRepo.List(ctx, filter)
}

func (s *adminService) GetOrder(ctx context.Context, orderID int32) (*domain.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *adminService) UpdateOrderStatus(ctx context.Context, orderID int32, status domain.OrderStatus, note string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return ErrOrderImmutable
	}
	if !order.Status.CanTransitionTo(status) {
		return ErrInvalidTransition
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, "admin", note); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Order status updated",
		"order_id", orderID, "from", order.Status, "to", status)
	return nil
}

func (s *adminService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	return s.categoryRepo.Create(ctx, category)
}

func (s *adminService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, category.ID); err != nil {
		return err
	}
	return s.categoryRepo.Update(ctx, category)
}

func (s *adminService) DeleteCategory(ctx context.Context, id int32) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categoryRepo.DeleteCascade(ctx, id)
}

func (s *adminService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx, true)
}

func (s *adminService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		return err
	}
	return s.productRepo.Create(ctx, product)
}

func (s *adminService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if _, err := s.productRepo.GetByID(ctx, product.ID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, product)
}

func (s *adminService) DeleteProduct(ctx context.Context, id int32) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *adminService) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]domain.User, int32, error) {
	return s.userRepo.List(ctx, filter)
}

func (s *adminService) GetCustomer(ctx context.Context, id int32) (*domain.User, []domain.Order, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	orders, _, err := s.orderRepo.List(ctx, repository.OrderFilter{
		UserID:   &id,
		Page:     1,
		PageSize: 50,
	})
	if err != nil {
		return nil, nil, err
	}
	return user, orders, nil
}

func (s *adminService) GetSettings(ctx context.Context) ([]domain.Setting, error) {
	return s.settingRepo.GetAll(ctx)
}

func (s *adminService) UpdateSetting(ctx context.Context, key, value string) error {
	switch key {
	case domain.SettingDeliveryFee:
		fee, err := strconv.ParseInt(value, 10, 64)
		if err != nil || fee < 0 {
			return ErrValidation
		}
	case domain.SettingSupportPhone:
		if strings.TrimSpace(value) == "" {
			return ErrValidation
		}
	default:
		return ErrValidation
	}
	return s.settingRepo.Set(ctx, key, value)
}

func validateCategory(category *domain.Category) error {
	if strings.TrimSpace(category.NameRu) == "" || strings.TrimSpace(category.Slug) == "" {
		return ErrValidation
	}
	return nil
}

func validateProduct(product *domain.Product) error {
	if strings.TrimSpace(product.NameRu) == "" {
		return ErrValidation
	}
	if product.DailyPrice <= 0 || product.TotalStock < 0 {
		return ErrValidation
	}
	for _, tier := range product.PricingTiers {
		if tier.MinDays < 1 || tier.DailyPrice <= 0 {
			return ErrValidation
		}
		if tier.MaxDays != nil && *tier.MaxDays < tier.MinDays {
			return ErrValidation
		}
	}
	for _, bracket := range product.QuantityPricing {
		if bracket.MinQuantity < 1 || bracket.PricePerUnit <= 0 {
			return ErrValidation
		}
		if bracket.MaxQuantity != nil && *bracket.MaxQuantity < bracket.MinQuantity {
			return ErrValidation
		}
	}
	return nil
}

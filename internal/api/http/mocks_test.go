package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SendOTP(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, phone, code, deviceID string) (*domain.User, string, error) {
	args := m.Called(ctx, phone, code, deviceID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockAuthService) AdminLogin(ctx context.Context, apiKey string) (string, error) {
	args := m.Called(ctx, apiKey)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateAdminToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockCatalogService) Availability(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	args := m.Called(ctx, productID, start, end)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockCatalogService) QuoteCart(ctx context.Context, lines []service.CartLine, start, end time.Time) (*service.CartQuote, error) {
	args := m.Called(ctx, lines, start, end)
	var quote *service.CartQuote
	if args.Get(0) != nil {
		quote = args.Get(0).(*service.CartQuote)
	}
	return quote, args.Error(1)
}

// MockOrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, userID int32, input service.CheckoutInput) (*domain.Order, error) {
	args := m.Called(ctx, userID, input)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, userID, orderID int32) (*domain.Order, error) {
	args := m.Called(ctx, userID, orderID)
	var order *domain.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*domain.Order)
	}
	return order, args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}

func (m *MockOrderService) Cancel(ctx context.Context, userID, orderID int32) error {
	args := m.Called(ctx, userID, orderID)
	return args.Error(0)
}

// MockAdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DashboardStats), args.Error(1)
}
func (m *MockAdminService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockAdminService) GetOrder(ctx context.Context, orderID int32) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockAdminService) UpdateOrderStatus(ctx context.Context, orderID int32, status domain.OrderStatus, note string) error {
	args := m.Called(ctx, orderID, status, note)
	return args.Error(0)
}
func (m *MockAdminService) CreateCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
func (m *MockAdminService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
func (m *MockAdminService) DeleteCategory(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAdminService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockAdminService) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockAdminService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockAdminService) DeleteProduct(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAdminService) ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]domain.User, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockAdminService) GetCustomer(ctx context.Context, id int32) (*domain.User, []domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).([]domain.Order), args.Error(2)
}
func (m *MockAdminService) GetSettings(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockAdminService) UpdateSetting(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

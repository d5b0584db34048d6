package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) TouchLastSeen(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, filter repository.CustomerFilter) ([]domain.User, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}

// MockOTPRepo
type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Create(ctx context.Context, otp *domain.OTP) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}
func (m *MockOTPRepo) GetLatest(ctx context.Context, phone string, now time.Time) (*domain.OTP, error) {
	args := m.Called(ctx, phone, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTP), args.Error(1)
}
func (m *MockOTPRepo) IncrementAttempts(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOTPRepo) MarkVerified(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOTPRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) List(ctx context.Context, includeInactive bool) ([]domain.Category, error) {
	args := m.Called(ctx, includeInactive)
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
func (m *MockCategoryRepo) DeleteCascade(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) CreateWithStockCheck(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Order), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) ReservedQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error) {
	args := m.Called(ctx, productID, start, end)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus, actor, note string) error {
	args := m.Called(ctx, orderID, status, actor, note)
	return args.Error(0)
}
func (m *MockOrderRepo) SetPaymentStatus(ctx context.Context, orderID int32, status domain.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
func (m *MockOrderRepo) DashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DashboardStats), args.Error(1)
}

// MockAddressRepo
type MockAddressRepo struct {
	mock.Mock
}

func (m *MockAddressRepo) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}
func (m *MockAddressRepo) GetByID(ctx context.Context, id int32) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}
func (m *MockAddressRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Address), args.Error(1)
}
func (m *MockAddressRepo) CountByUser(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockAddressRepo) Update(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}
func (m *MockAddressRepo) Delete(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockCardRepo
type MockCardRepo struct {
	mock.Mock
}

func (m *MockCardRepo) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}
func (m *MockCardRepo) GetByID(ctx context.Context, id int32) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}
func (m *MockCardRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Card, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Card), args.Error(1)
}
func (m *MockCardRepo) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}
func (m *MockCardRepo) Delete(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockFavoriteRepo
type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Add(ctx context.Context, userID, productID int32) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}
func (m *MockFavoriteRepo) Remove(ctx context.Context, userID, productID int32) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}
func (m *MockFavoriteRepo) ListProducts(ctx context.Context, userID int32) ([]domain.Product, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockFavoriteRepo) Exists(ctx context.Context, userID, productID int32) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

// MockSettingRepo
type MockSettingRepo struct {
	mock.Mock
}

func (m *MockSettingRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
func (m *MockSettingRepo) GetAll(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockSettingRepo) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockSMSSender
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrderCreated(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Charge(ctx context.Context, order *domain.Order, cardID int32) error {
	args := m.Called(ctx, order, cardID)
	return args.Error(0)
}

// MockStorageBackend
type MockStorageBackend struct {
	mock.Mock
}

func (m *MockStorageBackend) Name() string { return "mock" }

func (m *MockStorageBackend) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

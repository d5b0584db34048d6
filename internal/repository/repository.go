package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
)

// ErrNotFound is returned by any repository when the requested row is absent.
var ErrNotFound = errors.New("not found")

// InsufficientStockError is returned by the checkout transaction when the
// locked re-check finds fewer units than the order asks for.
type InsufficientStockError struct {
	ProductID int32
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %d: requested %d units, %d available", e.ProductID, e.Requested, e.Available)
}

// ProductFilter narrows product listings. Every field is validated at the
// handler boundary before it reaches a query.
type ProductFilter struct {
	CategoryID *int32
	Search     string // matches any localized name, case-insensitive
	ActiveOnly bool
	Page       int32
	PageSize   int32
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID   *int32
	Status   *domain.OrderStatus
	Page     int32
	PageSize int32
}

// CustomerFilter narrows the admin customer listing.
type CustomerFilter struct {
	Search   string // matches phone or name
	Page     int32
	PageSize int32
}

// DashboardStats backs the admin dashboard.
type DashboardStats struct {
	TotalOrders    int32
	ActiveOrders   int32
	TotalCustomers int32
	TotalProducts  int32
	Revenue        int64 // sum of totals over non-cancelled orders
	RecentOrders   []domain.Order
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	// DeleteCascade removes the category and all of its products in one
	// transaction.
	DeleteCascade(ctx context.Context, id int32) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	// Update replaces the product row and rewrites its pricing tiers and
	// quantity brackets in one transaction.
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int32, error)
}

type OrderRepository interface {
	// CreateWithStockCheck inserts the order, its items and the initial
	// history entry in one transaction. Product rows are locked and
	// reserved quantities re-checked under the lock; an
	// *InsufficientStockError aborts the transaction.
	CreateWithStockCheck(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int32, error)
	// ReservedQuantity sums item quantities of active-status orders whose
	// rental range overlaps [start, end], both inclusive.
	ReservedQuantity(ctx context.Context, productID int32, start, end time.Time) (int32, error)
	// UpdateStatus advances the order and appends a history entry in one
	// transaction.
	UpdateStatus(ctx context.Context, orderID int32, status domain.OrderStatus, actor, note string) error
	SetPaymentStatus(ctx context.Context, orderID int32, status domain.PaymentStatus) error
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	TouchLastSeen(ctx context.Context, id int32) error
	List(ctx context.Context, filter CustomerFilter) ([]domain.User, int32, error)
}

type SessionRepository interface {
	// Create stores the session after deleting any prior session for the
	// same (user, device) pair, in one transaction.
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type OTPRepository interface {
	Create(ctx context.Context, otp *domain.OTP) error
	// GetLatest returns the newest unverified, unexpired record for the
	// phone, or ErrNotFound.
	GetLatest(ctx context.Context, phone string, now time.Time) (*domain.OTP, error)
	IncrementAttempts(ctx context.Context, id int32) error
	MarkVerified(ctx context.Context, id int32) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type AddressRepository interface {
	// Create inserts the address; when it is marked default the previous
	// default is cleared in the same transaction.
	Create(ctx context.Context, address *domain.Address) error
	GetByID(ctx context.Context, id int32) (*domain.Address, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Address, error)
	CountByUser(ctx context.Context, userID int32) (int32, error)
	Update(ctx context.Context, address *domain.Address) error
	// Delete removes the address; when the default is removed the newest
	// remaining address is promoted, in the same transaction.
	Delete(ctx context.Context, id, userID int32) error
}

type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id int32) (*domain.Card, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id, userID int32) error
}

type FavoriteRepository interface {
	Add(ctx context.Context, userID, productID int32) error
	Remove(ctx context.Context, userID, productID int32) error
	ListProducts(ctx context.Context, userID int32) ([]domain.Product, error)
	Exists(ctx context.Context, userID, productID int32) (bool, error)
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) ([]domain.Setting, error)
	Set(ctx context.Context, key, value string) error
}

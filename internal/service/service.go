package service

import (
	"context"
	"errors"
	"time"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/repository"
)

// Sentinel errors mapped to HTTP responses at the handler boundary.
var (
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrOTPInvalid          = errors.New("invalid otp code")
	ErrOTPExpired          = errors.New("otp code expired")
	ErrOTPAttemptsExceeded = errors.New("otp attempts exceeded")
	ErrOTPThrottled        = errors.New("otp send throttled")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAddressLimit        = errors.New("address limit reached")
	ErrInvalidDateRange    = errors.New("invalid rental date range")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrOrderImmutable      = errors.New("order is in a terminal status")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrPaymentFailed       = errors.New("payment failed")
	ErrValidation          = errors.New("validation failed")
)

type AuthService interface {
	// SendOTP normalizes the phone, generates a code and delivers it via
	// SMS. Re-sends inside the throttle window return ErrOTPThrottled.
	SendOTP(ctx context.Context, phone string) error
	// VerifyOTP checks the newest pending code for the phone, creating the
	// user on first login, and opens a session bound to deviceID.
	VerifyOTP(ctx context.Context, phone, code, deviceID string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to its user, touching last-seen.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// AdminLogin exchanges the shared admin API key for a signed admin token.
	AdminLogin(ctx context.Context, apiKey string) (string, error)
	ValidateAdminToken(token string) error
}

// CartLine is one product/quantity pair submitted for pricing or checkout.
type CartLine struct {
	ProductID int32 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// CartLineQuote is the priced form of a cart line.
type CartLineQuote struct {
	ProductID      int32  `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductPhoto   string `json:"product_photo"`
	Quantity       int32  `json:"quantity"`
	DailyPrice     int64  `json:"daily_price"`
	EffectivePrice int64  `json:"effective_price"`
	TotalPrice     int64  `json:"total_price"`
	Savings        int64  `json:"savings"`
	Available      int32  `json:"available"`
}

// CartQuote prices a whole cart for a rental period.
type CartQuote struct {
	Lines        []CartLineQuote `json:"lines"`
	RentalDays   int32           `json:"rental_days"`
	Subtotal     int64           `json:"subtotal"`
	DeliveryFee  int64           `json:"delivery_fee"`
	Total        int64           `json:"total"`
	TotalSavings int64           `json:"total_savings"`
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int32, error)
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	// Availability returns how many units can still be rented over the
	// inclusive [start, end] range.
	Availability(ctx context.Context, productID int32, start, end time.Time) (int32, error)
	// QuoteCart prices the cart without reserving anything.
	QuoteCart(ctx context.Context, lines []CartLine, start, end time.Time) (*CartQuote, error)
}

// CheckoutInput carries everything needed to place an order.
type CheckoutInput struct {
	Lines         []CartLine
	RentalStart   time.Time
	RentalEnd     time.Time
	AddressID     int32
	PaymentMethod domain.PaymentMethod
	CardID        *int32
	DeliveryNote  string
}

type OrderService interface {
	Checkout(ctx context.Context, userID int32, input CheckoutInput) (*domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID int32) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Order, int32, error)
	// Cancel lets the customer cancel their own order while it is still
	// CONFIRMED.
	Cancel(ctx context.Context, userID, orderID int32) error
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, language string) (*domain.User, error)

	ListAddresses(ctx context.Context, userID int32) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address *domain.Address) error
	UpdateAddress(ctx context.Context, address *domain.Address) error
	DeleteAddress(ctx context.Context, userID, addressID int32) error

	ListCards(ctx context.Context, userID int32) ([]domain.Card, error)
	// CreateCard masks the PAN before anything is stored.
	CreateCard(ctx context.Context, userID int32, pan string, expMonth, expYear int32, isDefault bool) (*domain.Card, error)
	SetDefaultCard(ctx context.Context, userID, cardID int32) error
	DeleteCard(ctx context.Context, userID, cardID int32) error

	ListFavorites(ctx context.Context, userID int32) ([]domain.Product, error)
	AddFavorite(ctx context.Context, userID, productID int32) error
	RemoveFavorite(ctx context.Context, userID, productID int32) error
}

type AdminService interface {
	Dashboard(ctx context.Context) (*repository.DashboardStats, error)

	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int32, error)
	GetOrder(ctx context.Context, orderID int32) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int32, status domain.OrderStatus, note string) error

	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int32) error
	ListCategories(ctx context.Context) ([]domain.Category, error)

	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int32) error

	ListCustomers(ctx context.Context, filter repository.CustomerFilter) ([]domain.User, int32, error)
	GetCustomer(ctx context.Context, id int32) (*domain.User, []domain.Order, error)

	GetSettings(ctx context.Context) ([]domain.Setting, error)
	UpdateSetting(ctx context.Context, key, value string) error
}

// PaymentGateway charges card orders. Cash orders never reach it.
type PaymentGateway interface {
	// Charge attempts to collect the order total. A non-nil error leaves
	// the order unpaid.
	Charge(ctx context.Context, order *domain.Order, cardID int32) error
}

type UploadService interface {
	// UploadImage crops the image to 4:3, re-encodes it as JPEG and stores
	// it under a generated key. Returns the public URL.
	UploadImage(ctx context.Context, data []byte) (string, error)
}

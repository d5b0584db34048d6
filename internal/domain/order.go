package domain

import "time"

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ActiveOrderStatuses are the statuses that reserve inventory: anything not
// yet returned or cancelled counts against product stock.
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusDelivered,
}

// IsTerminal reports whether an order in this status is immutable
// (except for audit history appends).
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReturned || s == OrderStatusCancelled
}

// CanTransitionTo enforces the order lifecycle. Admin action advances
// CONFIRMED → PREPARING → DELIVERED → RETURNED; cancellation is allowed
// from any non-terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusConfirmed:
		return next == OrderStatusPreparing
	case OrderStatusPreparing:
		return next == OrderStatusDelivered
	case OrderStatusDelivered:
		return next == OrderStatusReturned
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// OrderItem is a snapshot of the product at order time. Name, photo and
// price are denormalized on purpose so historic orders are unaffected by
// later product edits.
type OrderItem struct {
	ID             int32  `json:"id"`
	OrderID        int32  `json:"order_id"`
	ProductID      int32  `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductPhoto   string `json:"product_photo"`
	DailyPrice     int64  `json:"daily_price"`      // product base price at order time
	EffectivePrice int64  `json:"effective_price"`  // per day per unit after discounts
	Quantity       int32  `json:"quantity"`
	TotalPrice     int64  `json:"total_price"`
	Savings        int64  `json:"savings"`
}

// OrderStatusEntry is an audit history record. History entries are the only
// mutation allowed on terminal orders.
type OrderStatusEntry struct {
	ID        int32       `json:"id"`
	OrderID   int32       `json:"order_id"`
	Status    OrderStatus `json:"status"`
	Actor     string      `json:"actor"` // "customer" or "admin"
	Note      string      `json:"note"`
	CreatedOn time.Time   `json:"created_on"`
}

type Order struct {
	ID              int32              `json:"id"`
	OrderNumber     string             `json:"order_number"`
	UserID          int32              `json:"user_id"`
	User            *User              `json:"user,omitempty"` // Populated for admin views
	Status          OrderStatus        `json:"status"`
	RentalStartDate time.Time          `json:"rental_start_date"` // inclusive
	RentalEndDate   time.Time          `json:"rental_end_date"`   // inclusive
	Items           []OrderItem        `json:"items"`
	Subtotal        int64              `json:"subtotal"`
	DeliveryFee     int64              `json:"delivery_fee"`
	Total           int64              `json:"total"`
	TotalSavings    int64              `json:"total_savings"`
	PaymentMethod   PaymentMethod      `json:"payment_method"`
	PaymentStatus   PaymentStatus      `json:"payment_status"`
	// Delivery address snapshot, copied from the user's address at checkout.
	AddressLine    string             `json:"address_line"`
	AddressCity    string             `json:"address_city"`
	ContactPhone   string             `json:"contact_phone"`
	DeliveryNote   string             `json:"delivery_note"`
	History        []OrderStatusEntry `json:"history,omitempty"`
	CreatedOn      time.Time          `json:"created_on"`
	UpdatedOn      time.Time          `json:"updated_on"`
}

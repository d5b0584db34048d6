package domain

import "time"

type User struct {
	ID         int32      `json:"id"`
	Phone      string     `json:"phone"` // normalized +998XXXXXXXXX
	Name       string     `json:"name"`
	Language   string     `json:"language"` // ru, en or uz
	CreatedOn  time.Time  `json:"created_on"`
	LastSeenOn *time.Time `json:"last_seen_on,omitempty"`
}

// Address is a saved delivery address. A user keeps at most 5, exactly one
// of which is the default whenever any exist.
type Address struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	Label     string    `json:"label"`
	Line      string    `json:"line"`
	City      string    `json:"city"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	IsDefault bool      `json:"is_default"`
	CreatedOn time.Time `json:"created_on"`
}

// Card is a saved payment card. Only the masked PAN is ever stored.
// Same single-default invariant as Address.
type Card struct {
	ID          int32     `json:"id"`
	UserID      int32     `json:"user_id"`
	MaskedPAN   string    `json:"masked_pan"` // e.g. "8600 ** ** 1234"
	ExpiryMonth int32     `json:"expiry_month"`
	ExpiryYear  int32     `json:"expiry_year"`
	IsDefault   bool      `json:"is_default"`
	CreatedOn   time.Time `json:"created_on"`
}

type Favorite struct {
	UserID    int32     `json:"user_id"`
	ProductID int32     `json:"product_id"`
	CreatedOn time.Time `json:"created_on"`
}

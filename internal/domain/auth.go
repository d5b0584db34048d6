package domain

import "time"

// OTP is a one-time login code sent via SMS. The newest unverified,
// unexpired record per phone is the only one considered at verification.
type OTP struct {
	ID        int32     `json:"id"`
	Phone     string    `json:"phone"`
	Code      string    `json:"-"`
	ExpiresOn time.Time `json:"expires_on"`
	Attempts  int32     `json:"attempts"`
	Verified  bool      `json:"verified"`
	CreatedOn time.Time `json:"created_on"`
}

// IsExpired reports whether the code can no longer be verified.
func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresOn)
}

// Session is an opaque customer auth token bound to one device. Creating a
// new session for the same (user, device) pair deletes the prior one.
type Session struct {
	Token     string    `json:"-"`
	UserID    int32     `json:"user_id"`
	DeviceID  string    `json:"device_id"`
	ExpiresOn time.Time `json:"expires_on"`
	CreatedOn time.Time `json:"created_on"`
}

// Setting is an admin-editable key/value pair (delivery fee, support phone).
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Setting keys used by the services.
const (
	SettingDeliveryFee  = "delivery_fee"
	SettingSupportPhone = "support_phone"
)

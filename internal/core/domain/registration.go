package domain

import "time"

// PaymentStatus is the lifecycle state of a registration's payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ValidPaymentStatus reports whether s is one of the known payment states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Registration links a user to an event. At most one registration exists per
// (event, user) pair; the unique index in the store is the authoritative
// guard against concurrent duplicates.
//
// Attendance and payment fields are mutated by the event's creator or an
// admin, never by the registered user. Ownership of a registration is
// transitive through its event.
type Registration struct {
	ID            string        `json:"id"`
	EventID       string        `json:"event_id"`
	UserID        string        `json:"user_id"`
	QRCodeURL     string        `json:"qr_code_url,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CheckinStart  *time.Time    `json:"checkin_start,omitempty"`
	CheckinEnd    *time.Time    `json:"checkin_end,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

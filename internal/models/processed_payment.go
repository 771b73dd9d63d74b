package models

import "time"

// ProcessedPayment is the idempotency guard for payment verification: one
// row per (booking, gateway session). The unique index makes re-verifying
// the same checkout session a no-op instead of a double count.
type ProcessedPayment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint   `gorm:"uniqueIndex:idx_processed_booking_session" json:"booking_id"`
	SessionID string `gorm:"size:255;uniqueIndex:idx_processed_booking_session" json:"session_id"`

	Amount      float64   `json:"amount"`
	ProcessedAt time.Time `json:"processed_at"`

	CreatedAt time.Time `json:"created_at"`
}

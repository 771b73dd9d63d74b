package models

import "time"

// Deliverable is a file artifact attached to a booking. Its existence gates
// the client's "download" status once the booking is fully paid.
type Deliverable struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"index" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ObjectKey   string `gorm:"size:255;not null" json:"-"`
	PreviewKey  string `gorm:"size:255" json:"-"`
	FileName    string `gorm:"size:255;not null" json:"file_name"`
	ContentType string `gorm:"size:100" json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

type Booking struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	CreativeID uint `gorm:"index" json:"creative_id"`
	Creative   User `gorm:"foreignKey:CreativeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"creative"`

	ClientID uint `gorm:"index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	BookingDate time.Time `gorm:"type:date" json:"booking_date"`
	StartTime   string    `gorm:"size:8;not null" json:"start_time"`
	EndTime     string    `gorm:"size:8;not null" json:"end_time"`

	// Price is a snapshot of the service price at booking time.
	Price         float64 `json:"price"`
	PaymentOption string  `gorm:"size:20;not null" json:"payment_option"`

	// Optional override of the default 50% split deposit.
	SplitDepositAmount *float64 `json:"split_deposit_amount"`

	AmountPaid    float64 `gorm:"default:0" json:"amount_paid"`
	PaymentStatus string  `gorm:"size:20;default:'pending'" json:"payment_status"`

	ClientStatus   string `gorm:"size:20;default:'pending'" json:"client_status"`
	CreativeStatus string `gorm:"size:20;default:'pending'" json:"creative_status"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt doubles as the last payment date once a payment is verified.
	UpdatedAt time.Time `json:"updated_at"`
}

package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	PublicID      string    `json:"public_id"`
	BookingDate   time.Time `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	ServiceTitle  string    `json:"service_title"`
	Counterparty  string    `json:"counterparty"`
	Price         float64   `json:"price"`
	AmountPaid    float64   `json:"amount_paid"`
	PaymentOption string    `json:"payment_option"`
	PaymentStatus string    `json:"payment_status"`
	Status        string    `json:"status"`
}

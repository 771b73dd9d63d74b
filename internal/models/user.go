package models

import "time"

const (
	RoleClient   = "client"
	RoleCreative = "creative"
	RoleAdvocate = "advocate"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'client'" json:"role"`
	Timezone     string `gorm:"size:50" json:"timezone"`

	// Connected payment sub-account, set for creatives only.
	StripeAccountID string `gorm:"size:100" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

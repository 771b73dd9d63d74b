package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreativeID uint `json:"creative_id"`
	Creative   User `gorm:"foreignKey:CreativeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"creative"`

	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `gorm:"default:60" json:"duration_min"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

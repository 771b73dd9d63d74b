package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RecipientID uint   `gorm:"index" json:"recipient_id"`
	Type        string `gorm:"size:50;not null" json:"type"`
	Title       string `gorm:"size:150" json:"title"`
	Message     string `gorm:"size:500" json:"message"`

	RelatedEntity string `gorm:"size:50" json:"related_entity"`
	RelatedID     *uint  `json:"related_id"`
	TargetRoles   string `gorm:"size:100" json:"target_roles"`
	Metadata      string `gorm:"type:text" json:"metadata"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

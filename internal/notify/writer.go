package notify

import (
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"github.com/artisanhub/marketplace-api/internal/models"
)

// Writer persists notification rows.
type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

func (w *Writer) Write(ev Event) error {
	if w.db == nil {
		return errors.New("notification store unavailable")
	}

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	n := models.Notification{
		RecipientID:   ev.RecipientID,
		Type:          ev.Type,
		Title:         ev.Title,
		Message:       ev.Message,
		RelatedEntity: ev.RelatedEntity,
		RelatedID:     ev.RelatedID,
		TargetRoles:   ev.TargetRoles,
		Metadata:      metaJSON,
	}

	return w.db.Create(&n).Error
}

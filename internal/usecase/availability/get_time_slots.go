package availability

import (
	"context"

	domain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/models"
)

type GetTimeSlots struct {
	repo domain.Repository
}

func NewGetTimeSlots(repo domain.Repository) *GetTimeSlots {
	return &GetTimeSlots{repo: repo}
}

func (uc *GetTimeSlots) Execute(
	ctx context.Context,
	weeklyScheduleID uint,
) ([]models.TimeSlot, error) {
	return uc.repo.ListEnabledTimeSlots(ctx, weeklyScheduleID)
}

package availability

import (
	"context"

	domain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/models"
)

type GetWeeklySchedule struct {
	repo domain.Repository
}

func NewGetWeeklySchedule(repo domain.Repository) *GetWeeklySchedule {
	return &GetWeeklySchedule{repo: repo}
}

// Execute returns the schedule rows Monday through Sunday, each with its
// first time block attached.
func (uc *GetWeeklySchedule) Execute(
	ctx context.Context,
	calendarSettingsID uint,
) ([]models.WeeklySchedule, error) {
	return uc.repo.ListWeeklySchedules(ctx, calendarSettingsID)
}

package availability

import (
	"context"

	domain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/models"
)

type GetCalendarSettings struct {
	repo domain.Repository
}

func NewGetCalendarSettings(repo domain.Repository) *GetCalendarSettings {
	return &GetCalendarSettings{repo: repo}
}

// Execute returns the active settings for a service, or nil when none
// exist. Absence is not an error: it reads as "scheduling disabled".
func (uc *GetCalendarSettings) Execute(
	ctx context.Context,
	serviceID uint,
) (*models.CalendarSettings, error) {
	return uc.repo.GetActiveCalendarSettings(ctx, serviceID)
}

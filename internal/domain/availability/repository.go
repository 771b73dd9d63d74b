package availability

import (
	"context"
	"time"

	"github.com/artisanhub/marketplace-api/internal/models"
)

type Repository interface {
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)

	// GetActiveCalendarSettings returns (nil, nil) when no active settings
	// exist; callers treat absence as "scheduling disabled".
	GetActiveCalendarSettings(
		ctx context.Context,
		serviceID uint,
	) (*models.CalendarSettings, error)

	// ListWeeklySchedules returns the setting's rows with their first time
	// block attached, ordered Monday through Sunday.
	ListWeeklySchedules(
		ctx context.Context,
		calendarSettingsID uint,
	) ([]models.WeeklySchedule, error)

	// ListEnabledTimeSlots returns enabled slots ordered by slot time.
	ListEnabledTimeSlots(
		ctx context.Context,
		weeklyScheduleID uint,
	) ([]models.TimeSlot, error)

	// ListBookedTimes returns (date, start_time) pairs of bookings for the
	// service in [from, to], excluding cancelled and rejected ones.
	ListBookedTimes(
		ctx context.Context,
		serviceID uint,
		from time.Time,
		to time.Time,
	) ([]BookedTime, error)

	// ReplaceCalendarSettings deletes the active settings tree for the
	// service and inserts the new one in a single transaction.
	ReplaceCalendarSettings(
		ctx context.Context,
		serviceID uint,
		settings *models.CalendarSettings,
	) error
}

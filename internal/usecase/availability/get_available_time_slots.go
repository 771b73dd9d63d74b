package availability

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/timeutil"
)

type GetAvailableTimeSlots struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewGetAvailableTimeSlots(
	repo domain.Repository,
	log zerolog.Logger,
) *GetAvailableTimeSlots {
	return &GetAvailableTimeSlots{repo: repo, log: log}
}

// Execute lists open slots for one calendar date. pre, when non-nil, reuses
// schedule data a caller already loaded (the warm path); both paths must
// return identical results.
func (uc *GetAvailableTimeSlots) Execute(
	ctx context.Context,
	serviceID uint,
	date time.Time,
	pre *domain.Precomputed,
) ([]domain.SlotView, error) {

	settings, schedules, err := uc.resolveSchedule(ctx, serviceID, pre)
	if err != nil {
		uc.log.Error().Err(err).Uint("service_id", serviceID).Msg("schedule fetch failed")
		return []domain.SlotView{}, nil
	}
	if settings == nil || !settings.SchedulingEnabled {
		return []domain.SlotView{}, nil
	}

	day := date.UTC().Weekday().String()

	var schedule *models.WeeklySchedule
	for i := range schedules {
		if schedules[i].DayOfWeek == day {
			schedule = &schedules[i]
			break
		}
	}
	if schedule == nil || !schedule.Enabled {
		return []domain.SlotView{}, nil
	}

	var slots []models.TimeSlot
	if pre != nil && pre.SlotsByDay != nil {
		slots = pre.SlotsByDay[day]
	} else {
		slots, err = uc.repo.ListEnabledTimeSlots(ctx, schedule.ID)
		if err != nil {
			uc.log.Error().Err(err).Uint("service_id", serviceID).Msg("time slots fetch failed")
			return []domain.SlotView{}, nil
		}
	}

	dayStart := midnight(date)
	booked, err := uc.repo.ListBookedTimes(ctx, serviceID, dayStart, dayStart)
	if err != nil {
		uc.log.Error().Err(err).Uint("service_id", serviceID).Msg("booked times fetch failed")
		return []domain.SlotView{}, nil
	}

	taken := make(map[string]struct{}, len(booked))
	for _, bt := range booked {
		taken[timeutil.NormalizeHHMM(bt.StartTime)] = struct{}{}
	}

	out := make([]domain.SlotView, 0, len(slots))
	for _, s := range slots {
		if _, isTaken := taken[timeutil.NormalizeHHMM(s.SlotTime)]; isTaken {
			continue
		}
		out = append(out, domain.SlotView{
			ID:        s.ID,
			SlotTime:  timeutil.NormalizeHHMM(s.SlotTime),
			DayOfWeek: day,
		})
	}

	return out, nil
}

func (uc *GetAvailableTimeSlots) resolveSchedule(
	ctx context.Context,
	serviceID uint,
	pre *domain.Precomputed,
) (*models.CalendarSettings, []models.WeeklySchedule, error) {

	if pre != nil && pre.Settings != nil {
		return pre.Settings, pre.Schedules, nil
	}

	settings, err := uc.repo.GetActiveCalendarSettings(ctx, serviceID)
	if err != nil || settings == nil {
		return nil, nil, err
	}

	schedules, err := uc.repo.ListWeeklySchedules(ctx, settings.ID)
	if err != nil {
		return nil, nil, err
	}

	return settings, schedules, nil
}

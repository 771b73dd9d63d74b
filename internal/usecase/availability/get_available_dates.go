package availability

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/artisanhub/marketplace-api/internal/cache"
	domain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/timeutil"
	"github.com/artisanhub/marketplace-api/internal/timezone"
)

const dateLayout = "2006-01-02"

type GetAvailableDates struct {
	repo  domain.Repository
	cache *cache.Cache
	log   zerolog.Logger

	// Now is the clock; tests pin it.
	Now func() time.Time
}

func NewGetAvailableDates(
	repo domain.Repository,
	c *cache.Cache,
	log zerolog.Logger,
) *GetAvailableDates {
	return &GetAvailableDates{
		repo:  repo,
		cache: c,
		log:   log,
		Now:   timezone.Now,
	}
}

// Execute lists the bookable dates for a service. startStr/endStr are
// optional "2006-01-02" bounds; start defaults to today, end to start plus
// the max-advance window.
//
// Availability reads degrade: any fetch failure is logged and answered with
// an empty list, since under-promising beats mis-promising.
func (uc *GetAvailableDates) Execute(
	ctx context.Context,
	serviceID uint,
	startStr string,
	endStr string,
) ([]domain.AvailableDate, error) {

	settings, err := uc.repo.GetActiveCalendarSettings(ctx, serviceID)
	if err != nil {
		uc.log.Error().Err(err).Uint("service_id", serviceID).Msg("calendar settings fetch failed")
		return []domain.AvailableDate{}, nil
	}
	if settings == nil || !settings.SchedulingEnabled {
		return []domain.AvailableDate{}, nil
	}

	now := uc.Now().UTC()

	start := midnight(now)
	if startStr != "" {
		if d, err := time.Parse(dateLayout, startStr); err == nil {
			start = midnight(d)
		}
	}

	end := start.AddDate(0, 0, AdvanceDays(settings.MaxAdvanceAmount, settings.MaxAdvanceUnit))
	if endStr != "" {
		if d, err := time.Parse(dateLayout, endStr); err == nil {
			end = midnight(d)
		}
	}

	if cached, ok := uc.cache.GetDates(ctx, serviceID, start.Format(dateLayout), end.Format(dateLayout)); ok {
		return cached, nil
	}

	schedules, err := uc.repo.ListWeeklySchedules(ctx, settings.ID)
	if err != nil {
		uc.log.Error().Err(err).Uint("service_id", serviceID).Msg("weekly schedule fetch failed")
		return []domain.AvailableDate{}, nil
	}

	enabledDays := make(map[string]models.WeeklySchedule)
	for _, ws := range schedules {
		if ws.Enabled {
			enabledDays[ws.DayOfWeek] = ws
		}
	}
	if len(enabledDays) == 0 {
		return []domain.AvailableDate{}, nil
	}

	// One batched query for the whole range, then grouped by date with every
	// start time normalized to HH:MM.
	booked, err := uc.repo.ListBookedTimes(ctx, serviceID, start, end)
	if err != nil {
		uc.log.Error().Err(err).Uint("service_id", serviceID).Msg("booked times fetch failed")
		return []domain.AvailableDate{}, nil
	}
	bookedByDate := groupBookedByDate(booked)

	// Slots fetched once per distinct enabled weekday, not once per date.
	slotsByDay := make(map[string][]models.TimeSlot, len(enabledDays))
	for day, ws := range enabledDays {
		slots, err := uc.repo.ListEnabledTimeSlots(ctx, ws.ID)
		if err != nil {
			uc.log.Error().Err(err).Uint("service_id", serviceID).Str("day", day).Msg("time slots fetch failed")
			return []domain.AvailableDate{}, nil
		}
		slotsByDay[day] = slots
	}

	// A date qualifies only if its midnight is at or past this instant.
	minBookable := now.Add(NoticeDuration(settings.MinNoticeAmount, settings.MinNoticeUnit))

	var out []domain.AvailableDate
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Weekday().String()
		if _, ok := enabledDays[day]; !ok {
			continue
		}
		if d.Before(minBookable) {
			continue
		}
		if !anySlotFree(slotsByDay[day], bookedByDate[d.Format(dateLayout)]) {
			continue
		}
		out = append(out, domain.AvailableDate{
			Date:        d.Format(dateLayout),
			DayOfWeek:   day,
			IsAvailable: true,
		})
	}
	if out == nil {
		out = []domain.AvailableDate{}
	}

	uc.cache.SetDates(ctx, serviceID, start.Format(dateLayout), end.Format(dateLayout), out)

	return out, nil
}

func midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func groupBookedByDate(booked []domain.BookedTime) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	for _, bt := range booked {
		key := bt.BookingDate.UTC().Format(dateLayout)
		set, ok := out[key]
		if !ok {
			set = make(map[string]struct{})
			out[key] = set
		}
		set[timeutil.NormalizeHHMM(bt.StartTime)] = struct{}{}
	}
	return out
}

func anySlotFree(slots []models.TimeSlot, taken map[string]struct{}) bool {
	for _, s := range slots {
		if _, booked := taken[timeutil.NormalizeHHMM(s.SlotTime)]; !booked {
			return true
		}
	}
	return false
}

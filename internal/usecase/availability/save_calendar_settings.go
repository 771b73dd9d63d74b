package availability

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/artisanhub/marketplace-api/internal/cache"
	domain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/timeutil"
	"github.com/artisanhub/marketplace-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BlockInput struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SlotInput struct {
	SlotTime string `json:"slot_time"`
	Enabled  bool   `json:"enabled"`
}

type DayInput struct {
	DayOfWeek string       `json:"day_of_week"`
	Enabled   bool         `json:"enabled"`
	Blocks    []BlockInput `json:"blocks"`
	Slots     []SlotInput  `json:"slots"`
}

type SaveCalendarSettingsInput struct {
	ServiceID uint

	// Timezone of the submitted wall-clock times; storage is UTC.
	Timezone string

	SchedulingEnabled bool
	SessionDuration   int

	MinNoticeAmount int
	MinNoticeUnit   string

	MaxAdvanceAmount int
	MaxAdvanceUnit   string

	BufferAmount int
	BufferUnit   string

	Days []DayInput
}

// ======================================================
// USE CASE
// ======================================================

type SaveCalendarSettings struct {
	repo  domain.Repository
	cache *cache.Cache
	log   zerolog.Logger
}

func NewSaveCalendarSettings(
	repo domain.Repository,
	c *cache.Cache,
	log zerolog.Logger,
) *SaveCalendarSettings {
	return &SaveCalendarSettings{repo: repo, cache: c, log: log}
}

// Execute replaces the service's calendar configuration wholesale: the old
// settings row and all descendants go, the new tree comes in, atomically.
// Blocks whose end does not come after their start are dropped silently.
func (uc *SaveCalendarSettings) Execute(
	ctx context.Context,
	creativeID uint,
	in SaveCalendarSettingsInput,
) (*models.CalendarSettings, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if service.CreativeID != creativeID {
		return nil, httperr.ErrBusiness("not_your_service")
	}

	if !ValidUnit(in.MinNoticeUnit, "minutes", "hours", "days") {
		return nil, httperr.ErrBusiness("invalid_notice_unit")
	}
	if !ValidUnit(in.MaxAdvanceUnit, "hours", "days", "weeks", "months") {
		return nil, httperr.ErrBusiness("invalid_advance_unit")
	}
	if !ValidUnit(in.BufferUnit, "minutes", "hours", "days") {
		return nil, httperr.ErrBusiness("invalid_buffer_unit")
	}

	loc := timezone.Location(in.Timezone)
	refDate := timezone.Now()

	settings := &models.CalendarSettings{
		ServiceID:         in.ServiceID,
		SchedulingEnabled: in.SchedulingEnabled,
		SessionDuration:   in.SessionDuration,
		MinNoticeAmount:   in.MinNoticeAmount,
		MinNoticeUnit:     in.MinNoticeUnit,
		MaxAdvanceAmount:  in.MaxAdvanceAmount,
		MaxAdvanceUnit:    in.MaxAdvanceUnit,
		BufferAmount:      in.BufferAmount,
		BufferUnit:        in.BufferUnit,
		Active:            true,
	}

	for _, day := range in.Days {
		ws := models.WeeklySchedule{
			DayOfWeek: day.DayOfWeek,
			Enabled:   day.Enabled,
		}

		for _, block := range day.Blocks {
			startUTC, err := timeutil.ToUTC(block.StartTime, refDate, loc)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_time")
			}
			endUTC, err := timeutil.ToUTC(block.EndTime, refDate, loc)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_time")
			}

			start, _ := timeutil.ParseClock(startUTC)
			end, _ := timeutil.ParseClock(endUTC)
			if !start.Before(end) {
				// inverted block: dropped, not an error
				uc.log.Debug().
					Str("day", day.DayOfWeek).
					Str("start", block.StartTime).
					Str("end", block.EndTime).
					Msg("dropping inverted time block")
				continue
			}

			ws.TimeBlocks = append(ws.TimeBlocks, models.TimeBlock{
				StartTime: startUTC,
				EndTime:   endUTC,
			})
		}

		for _, slot := range day.Slots {
			slotUTC, err := timeutil.ToUTC(slot.SlotTime, refDate, loc)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_time")
			}
			ws.TimeSlots = append(ws.TimeSlots, models.TimeSlot{
				SlotTime: slotUTC,
				Enabled:  slot.Enabled,
			})
		}

		settings.WeeklySchedules = append(settings.WeeklySchedules, ws)
	}

	if err := uc.repo.ReplaceCalendarSettings(ctx, in.ServiceID, settings); err != nil {
		return nil, err
	}

	uc.cache.InvalidateService(ctx, in.ServiceID)

	return settings, nil
}

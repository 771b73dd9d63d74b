package availability

import (
	"time"

	"github.com/artisanhub/marketplace-api/internal/models"
)

// AvailableDate is one bookable calendar date. Only available dates are
// emitted, so IsAvailable is always true on the wire; the field is kept for
// client compatibility.
type AvailableDate struct {
	Date        string `json:"date"`
	DayOfWeek   string `json:"day_of_week"`
	IsAvailable bool   `json:"is_available"`
}

// SlotView is a bookable start time on a concrete date.
type SlotView struct {
	ID        uint   `json:"id"`
	SlotTime  string `json:"slot_time"`
	DayOfWeek string `json:"day_of_week"`
}

// Precomputed carries a whole-service schedule already loaded by a previous
// call, so the warm slot path can skip its fetches. It must produce results
// identical to the cold path.
type Precomputed struct {
	Settings   *models.CalendarSettings
	Schedules  []models.WeeklySchedule
	SlotsByDay map[string][]models.TimeSlot
}

// BookedTime is the projection of a booking used to exclude taken slots.
type BookedTime struct {
	BookingDate time.Time
	StartTime   string
}

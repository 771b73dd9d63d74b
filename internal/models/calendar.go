package models

import "time"

// CalendarSettings is the per-service scheduling configuration. At most one
// row is active per service; saving a new configuration replaces the old row
// and all of its descendants wholesale.
type CalendarSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SchedulingEnabled bool `gorm:"default:true" json:"scheduling_enabled"`
	SessionDuration   int  `gorm:"default:60" json:"session_duration"`

	MinNoticeAmount int    `gorm:"default:24" json:"min_notice_amount"`
	MinNoticeUnit   string `gorm:"size:10;default:'hours'" json:"min_notice_unit"`

	MaxAdvanceAmount int    `gorm:"default:30" json:"max_advance_amount"`
	MaxAdvanceUnit   string `gorm:"size:10;default:'days'" json:"max_advance_unit"`

	BufferAmount int    `gorm:"default:0" json:"buffer_amount"`
	BufferUnit   string `gorm:"size:10;default:'minutes'" json:"buffer_unit"`

	Active bool `gorm:"default:true" json:"active"`

	WeeklySchedules []WeeklySchedule `gorm:"constraint:OnDelete:CASCADE;" json:"weekly_schedules,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WeeklySchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CalendarSettingsID uint   `gorm:"index" json:"calendar_settings_id"`
	DayOfWeek          string `gorm:"size:10;not null" json:"day_of_week"`
	Enabled            bool   `gorm:"default:false" json:"enabled"`

	TimeBlocks []TimeBlock `gorm:"constraint:OnDelete:CASCADE;" json:"time_blocks,omitempty"`
	TimeSlots  []TimeSlot  `gorm:"constraint:OnDelete:CASCADE;" json:"time_slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TimeBlock is a contiguous working window. Times are HH:MM, already in UTC.
type TimeBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WeeklyScheduleID uint   `gorm:"index" json:"weekly_schedule_id"`
	StartTime        string `gorm:"size:8;not null" json:"start_time"`
	EndTime          string `gorm:"size:8;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
}

// TimeSlot is a discrete bookable start time. Slots, not blocks, are the
// unit actually booked against.
type TimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WeeklyScheduleID uint   `gorm:"index" json:"weekly_schedule_id"`
	SlotTime         string `gorm:"size:8;not null" json:"slot_time"`
	Enabled          bool   `gorm:"default:true" json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
}

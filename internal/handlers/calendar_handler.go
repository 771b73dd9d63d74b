package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/httpresp"
	"github.com/artisanhub/marketplace-api/internal/middleware"
	ucavail "github.com/artisanhub/marketplace-api/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	getSettings *ucavail.GetCalendarSettings
	getSchedule *ucavail.GetWeeklySchedule
	getSlots    *ucavail.GetTimeSlots
	save        *ucavail.SaveCalendarSettings
}

func NewCalendarHandler(
	getSettings *ucavail.GetCalendarSettings,
	getSchedule *ucavail.GetWeeklySchedule,
	getSlots *ucavail.GetTimeSlots,
	save *ucavail.SaveCalendarSettings,
) *CalendarHandler {
	return &CalendarHandler{
		getSettings: getSettings,
		getSchedule: getSchedule,
		getSlots:    getSlots,
		save:        save,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SaveCalendarRequest struct {
	Timezone          string `json:"timezone"`
	SchedulingEnabled bool   `json:"scheduling_enabled"`
	SessionDuration   int    `json:"session_duration" binding:"required,min=5"`

	MinNoticeAmount int    `json:"min_notice_amount" binding:"min=0"`
	MinNoticeUnit   string `json:"min_notice_unit" binding:"required"`

	MaxAdvanceAmount int    `json:"max_advance_amount" binding:"min=0"`
	MaxAdvanceUnit   string `json:"max_advance_unit" binding:"required"`

	BufferAmount int    `json:"buffer_amount" binding:"min=0"`
	BufferUnit   string `json:"buffer_unit" binding:"required"`

	Days []ucavail.DayInput `json:"days"`
}

// ======================================================
// ROUTES
// ======================================================

// GetSettings returns the active configuration for a service, or an empty
// object when scheduling was never configured.
func (h *CalendarHandler) GetSettings(c *gin.Context) {
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	settings, err := h.getSettings.Execute(c.Request.Context(), serviceID)
	if err != nil {
		httperr.Internal(c, "calendar_fetch_failed", "Could not load calendar settings.")
		return
	}
	if settings == nil {
		c.JSON(200, gin.H{"scheduling_enabled": false})
		return
	}

	httpresp.OK(c, settings)
}

func (h *CalendarHandler) GetSchedule(c *gin.Context) {
	settingsID, ok := paramUint(c, "settingsId")
	if !ok {
		return
	}

	schedule, err := h.getSchedule.Execute(c.Request.Context(), settingsID)
	if err != nil {
		httperr.Internal(c, "schedule_fetch_failed", "Could not load weekly schedule.")
		return
	}

	httpresp.List(c, schedule)
}

func (h *CalendarHandler) GetSlots(c *gin.Context) {
	scheduleID, ok := paramUint(c, "scheduleId")
	if !ok {
		return
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), scheduleID)
	if err != nil {
		httperr.Internal(c, "slots_fetch_failed", "Could not load time slots.")
		return
	}

	httpresp.List(c, slots)
}

func (h *CalendarHandler) Save(c *gin.Context) {
	creativeID := c.MustGet(middleware.ContextUserID).(uint)

	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	var req SaveCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid calendar data.")
		return
	}

	settings, err := h.save.Execute(c.Request.Context(), creativeID, ucavail.SaveCalendarSettingsInput{
		ServiceID:         serviceID,
		Timezone:          req.Timezone,
		SchedulingEnabled: req.SchedulingEnabled,
		SessionDuration:   req.SessionDuration,
		MinNoticeAmount:   req.MinNoticeAmount,
		MinNoticeUnit:     req.MinNoticeUnit,
		MaxAdvanceAmount:  req.MaxAdvanceAmount,
		MaxAdvanceUnit:    req.MaxAdvanceUnit,
		BufferAmount:      req.BufferAmount,
		BufferUnit:        req.BufferUnit,
		Days:              req.Days,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Created(c, settings)
}

// ======================================================
// HELPERS
// ======================================================

func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

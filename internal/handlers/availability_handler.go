package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/httpresp"
	ucavail "github.com/artisanhub/marketplace-api/internal/usecase/availability"
)

// AvailabilityHandler serves the public booking calendar.
type AvailabilityHandler struct {
	dates *ucavail.GetAvailableDates
	slots *ucavail.GetAvailableTimeSlots
}

func NewAvailabilityHandler(
	dates *ucavail.GetAvailableDates,
	slots *ucavail.GetAvailableTimeSlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{dates: dates, slots: slots}
}

// Dates lists bookable dates. Optional start/end query params bound the
// range; defaults come from the service's max-advance window.
func (h *AvailabilityHandler) Dates(c *gin.Context) {
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	dates, err := h.dates.Execute(
		c.Request.Context(),
		serviceID,
		c.Query("start"),
		c.Query("end"),
	)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	httpresp.List(c, dates)
}

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), serviceID, date, nil)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not compute availability.")
		return
	}

	httpresp.List(c, slots)
}

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/dto"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/httpresp"
	"github.com/artisanhub/marketplace-api/internal/middleware"
	"github.com/artisanhub/marketplace-api/internal/models"
	ucbooking "github.com/artisanhub/marketplace-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo    domain.Repository
	create  *ucbooking.CreateBooking
	actions *ucbooking.BookingActions
}

func NewBookingHandler(
	repo domain.Repository,
	create *ucbooking.CreateBooking,
	actions *ucbooking.BookingActions,
) *BookingHandler {
	return &BookingHandler{repo: repo, create: create, actions: actions}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID          uint     `json:"service_id" binding:"required"`
	Date               string   `json:"date" binding:"required"`
	StartTime          string   `json:"start_time" binding:"required"`
	PaymentOption      string   `json:"payment_option" binding:"required"`
	SplitDepositAmount *float64 `json:"split_deposit_amount"`
}

// ======================================================
// ROUTES
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), clientID, ucbooking.CreateBookingInput{
		ServiceID:          req.ServiceID,
		Date:               req.Date,
		StartTime:          req.StartTime,
		PaymentOption:      req.PaymentOption,
		SplitDepositAmount: req.SplitDepositAmount,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	var (
		bookings []models.Booking
		err      error
	)
	if role == models.RoleCreative {
		bookings, err = h.repo.ListBookingsForCreative(c.Request.Context(), userID)
	} else {
		bookings, err = h.repo.ListBookingsForClient(c.Request.Context(), userID)
	}
	if err != nil {
		httperr.Internal(c, "bookings_fetch_failed", "Could not load bookings.")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		item := dto.BookingListDTO{
			ID:            b.ID,
			PublicID:      b.PublicID,
			BookingDate:   b.BookingDate,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			ServiceTitle:  b.Service.Title,
			Price:         b.Price,
			AmountPaid:    b.AmountPaid,
			PaymentOption: b.PaymentOption,
			PaymentStatus: b.PaymentStatus,
		}
		if role == models.RoleCreative {
			item.Counterparty = b.Client.Name
			item.Status = b.CreativeStatus
		} else {
			item.Counterparty = b.Creative.Name
			item.Status = b.ClientStatus
		}
		out = append(out, item)
	}

	httpresp.List(c, out)
}

// Lookup resolves a booking by its public id. This is what the checkout
// return page calls, since the gateway redirect only carries the public id.
func (h *BookingHandler) Lookup(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	b, err := h.repo.GetBookingByPublicID(c.Request.Context(), c.Param("publicId"))
	if err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}
	if b.ClientID != userID && b.CreativeID != userID {
		httperr.Forbidden(c, "not_your_booking", "You do not own this booking.")
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.action(c, h.actions.Cancel)
}

func (h *BookingHandler) Approve(c *gin.Context) {
	h.action(c, h.actions.Approve)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.action(c, h.actions.Reject)
}

func (h *BookingHandler) Finalize(c *gin.Context) {
	h.action(c, h.actions.Finalize)
}

func (h *BookingHandler) action(
	c *gin.Context,
	fn func(ctx context.Context, userID uint, bookingID uint) (*models.Booking, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), userID, bookingID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	httpresp.OK(c, b)
}

package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/artisanhub/marketplace-api/internal/cache"
	availdomain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/notify"
	"github.com/artisanhub/marketplace-api/internal/timeutil"
	"github.com/artisanhub/marketplace-api/internal/timezone"
	ucavail "github.com/artisanhub/marketplace-api/internal/usecase/availability"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID uint

	Date      string // 2006-01-02
	StartTime string // HH:MM, UTC

	PaymentOption      string
	SplitDepositAmount *float64
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo      domain.Repository
	availRepo availdomain.Repository
	slots     *ucavail.GetAvailableTimeSlots
	notify    *notify.Dispatcher
	cache     *cache.Cache

	Now func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	availRepo availdomain.Repository,
	slots *ucavail.GetAvailableTimeSlots,
	dispatcher *notify.Dispatcher,
	c *cache.Cache,
) *CreateBooking {
	return &CreateBooking{
		repo:      repo,
		availRepo: availRepo,
		slots:     slots,
		notify:    dispatcher,
		cache:     c,
		Now:       timezone.Now,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	clientID uint,
	in CreateBookingInput,
) (*models.Booking, error) {

	if !domain.ValidPaymentOption(in.PaymentOption) {
		return nil, httperr.ErrBusiness("invalid_payment_option")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	date = date.UTC()

	start, err := timeutil.ParseClock(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	settings, err := uc.availRepo.GetActiveCalendarSettings(ctx, in.ServiceID)
	if err != nil || settings == nil || !settings.SchedulingEnabled {
		return nil, httperr.ErrBusiness("scheduling_disabled")
	}

	notice := ucavail.NoticeDuration(settings.MinNoticeAmount, settings.MinNoticeUnit)
	if start.On(date).Before(uc.Now().Add(notice)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// The requested slot must still be open. This is read-then-decide; the
	// partial unique index on bookings backstops the race at insert time.
	open, err := uc.slots.Execute(ctx, in.ServiceID, date, nil)
	if err != nil {
		return nil, err
	}
	if !slotOpen(open, start.String()) {
		return nil, httperr.ErrBusiness("slot_not_available")
	}

	duration := settings.SessionDuration
	if duration <= 0 {
		duration = service.DurationMin
	}

	clientStatus, creativeStatus, paymentStatus := domain.InitialStatuses(
		domain.PaymentOption(in.PaymentOption),
	)

	b := &models.Booking{
		PublicID:           uuid.NewString(),
		ServiceID:          service.ID,
		CreativeID:         service.CreativeID,
		ClientID:           clientID,
		BookingDate:        date,
		StartTime:          start.String(),
		EndTime:            start.Add(time.Duration(duration) * time.Minute).String(),
		Price:              service.Price,
		PaymentOption:      in.PaymentOption,
		SplitDepositAmount: in.SplitDepositAmount,
		AmountPaid:         0,
		PaymentStatus:      string(paymentStatus),
		ClientStatus:       string(clientStatus),
		CreativeStatus:     string(creativeStatus),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.InvalidateService(ctx, in.ServiceID)

	bookingID := b.ID
	uc.notify.Dispatch(notify.Event{
		RecipientID:   service.CreativeID,
		Type:          "booking_created",
		Title:         "New booking",
		Message:       fmt.Sprintf("%s was booked for %s at %s", service.Title, in.Date, b.StartTime),
		RelatedEntity: "booking",
		RelatedID:     &bookingID,
		TargetRoles:   models.RoleCreative,
	})

	return b, nil
}

func slotOpen(slots []availdomain.SlotView, start string) bool {
	for _, s := range slots {
		if s.SlotTime == start {
			return true
		}
	}
	return false
}

package booking

import (
	"context"
	"time"

	"github.com/artisanhub/marketplace-api/internal/cache"
	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/notify"
	"github.com/artisanhub/marketplace-api/internal/timezone"
)

// BookingActions bundles the explicit lifecycle transitions. Cancellation
// and rejection are status changes, never deletes; both free the slot for
// availability queries.
type BookingActions struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	cache  *cache.Cache

	Now func() time.Time
}

func NewBookingActions(
	repo domain.Repository,
	dispatcher *notify.Dispatcher,
	c *cache.Cache,
) *BookingActions {
	return &BookingActions{
		repo:   repo,
		notify: dispatcher,
		cache:  c,
		Now:    timezone.Now,
	}
}

// Cancel is the client's action.
func (uc *BookingActions) Cancel(
	ctx context.Context,
	clientID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if b.ClientID != clientID {
		return nil, httperr.ErrBusiness("not_your_booking")
	}

	if err := domain.Cancel(b, uc.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.InvalidateService(ctx, b.ServiceID)
	uc.dispatch(b, b.CreativeID, models.RoleCreative, "booking_cancelled", "Booking cancelled")

	return b, nil
}

// Approve is the creative accepting a pending booking.
func (uc *BookingActions) Approve(
	ctx context.Context,
	creativeID uint,
	bookingID uint,
) (*models.Booking, error) {
	return uc.creativeTransition(ctx, creativeID, bookingID, domain.Approve,
		"booking_approved", "Booking approved")
}

// Reject is the creative declining a pending booking; the slot opens again.
func (uc *BookingActions) Reject(
	ctx context.Context,
	creativeID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.creativeTransition(ctx, creativeID, bookingID, domain.Reject,
		"booking_rejected", "Booking rejected")
	if err != nil {
		return nil, err
	}
	uc.cache.InvalidateService(ctx, b.ServiceID)
	return b, nil
}

// Finalize is the creative marking the work delivered. With an open balance
// the client lands on "locked" until a verified payment unlocks it.
func (uc *BookingActions) Finalize(
	ctx context.Context,
	creativeID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if b.CreativeID != creativeID {
		return nil, httperr.ErrBusiness("not_your_booking")
	}

	filesExist, err := uc.repo.HasDeliverables(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.Finalize(b, filesExist, uc.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.dispatch(b, b.ClientID, models.RoleClient, "booking_completed", "Your booking is complete")

	return b, nil
}

func (uc *BookingActions) creativeTransition(
	ctx context.Context,
	creativeID uint,
	bookingID uint,
	transition func(*models.Booking, time.Time) error,
	eventType string,
	title string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	if b.CreativeID != creativeID {
		return nil, httperr.ErrBusiness("not_your_booking")
	}

	if err := transition(b, uc.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.dispatch(b, b.ClientID, models.RoleClient, eventType, title)

	return b, nil
}

func (uc *BookingActions) dispatch(b *models.Booking, recipient uint, role, eventType, title string) {
	bookingID := b.ID
	uc.notify.Dispatch(notify.Event{
		RecipientID:   recipient,
		Type:          eventType,
		Title:         title,
		Message:       "Booking " + b.PublicID,
		RelatedEntity: "booking",
		RelatedID:     &bookingID,
		TargetRoles:   role,
	})
}

package booking

import (
	"context"
	"time"

	"github.com/artisanhub/marketplace-api/internal/models"
)

type Repository interface {
	// -------- Service / users --------
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)

	GetUser(ctx context.Context, userID uint) (*models.User, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error)

	GetBookingByPublicID(ctx context.Context, publicID string) (*models.Booking, error)

	ListBookingsForClient(ctx context.Context, clientID uint) ([]models.Booking, error)

	ListBookingsForCreative(ctx context.Context, creativeID uint) ([]models.Booking, error)

	UpdateBooking(ctx context.Context, b *models.Booking) error

	// -------- Deliverables --------
	HasDeliverables(ctx context.Context, bookingID uint) (bool, error)

	// -------- Payment verification --------
	// RunPaymentTransaction locks the booking row, records the processed
	// gateway session (unique per booking+session, duplicate =>
	// "payment_already_processed"), invokes apply with the locked booking and
	// the deliverable-existence flag, then persists amount_paid, the three
	// status fields and the caller-chosen updated_at, all in one transaction.
	RunPaymentTransaction(
		ctx context.Context,
		bookingID uint,
		payment *models.ProcessedPayment,
		apply func(b *models.Booking, filesExist bool) error,
	) (*models.Booking, error)
}

// BookedSlot is the projection used for conflict checks.
type BookedSlot struct {
	BookingDate time.Time
	StartTime   string
}

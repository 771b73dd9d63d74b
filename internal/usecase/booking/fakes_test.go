package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/artisanhub/marketplace-api/internal/cache"
	availdomain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/gateway"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/notify"
)

// ======================================================
// BOOKING REPOSITORY FAKE
// ======================================================

type fakeRepo struct {
	services map[uint]*models.Service
	users    map[uint]*models.User
	bookings map[uint]*models.Booking

	deliverables map[uint]bool
	// processed (booking, session) pairs
	processed map[string]bool

	nextID    uint
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		users:        map[uint]*models.User{},
		bookings:     map[uint]*models.Booking{},
		deliverables: map[uint]bool{},
		processed:    map[string]bool{},
		nextID:       1,
	}
}

func (f *fakeRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return s, nil
}

func (f *fakeRepo) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (f *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = f.nextID
	f.nextID++
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeRepo) GetBooking(ctx context.Context, bookingID uint) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, errors.New("record not found")
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepo) GetBookingByPublicID(ctx context.Context, publicID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.PublicID == publicID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeRepo) ListBookingsForClient(ctx context.Context, clientID uint) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForCreative(ctx context.Context, creativeID uint) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CreativeID == creativeID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeRepo) HasDeliverables(ctx context.Context, bookingID uint) (bool, error) {
	return f.deliverables[bookingID], nil
}

func (f *fakeRepo) RunPaymentTransaction(
	ctx context.Context,
	bookingID uint,
	payment *models.ProcessedPayment,
	apply func(b *models.Booking, filesExist bool) error,
) (*models.Booking, error) {

	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	key := payment.SessionID
	if f.processed[key] {
		return nil, httperr.ErrBusiness("payment_already_processed")
	}
	f.processed[key] = true

	if err := apply(b, f.deliverables[bookingID]); err != nil {
		return nil, err
	}

	clone := *b
	return &clone, nil
}

// ======================================================
// AVAILABILITY REPOSITORY FAKE
// ======================================================

type fakeAvailRepo struct {
	settings  *models.CalendarSettings
	schedules []models.WeeklySchedule
	slots     map[uint][]models.TimeSlot
	booked    []availdomain.BookedTime
}

func (f *fakeAvailRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	return nil, errors.New("not used")
}

func (f *fakeAvailRepo) GetActiveCalendarSettings(ctx context.Context, serviceID uint) (*models.CalendarSettings, error) {
	return f.settings, nil
}

func (f *fakeAvailRepo) ListWeeklySchedules(ctx context.Context, settingsID uint) ([]models.WeeklySchedule, error) {
	return f.schedules, nil
}

func (f *fakeAvailRepo) ListEnabledTimeSlots(ctx context.Context, scheduleID uint) ([]models.TimeSlot, error) {
	return f.slots[scheduleID], nil
}

func (f *fakeAvailRepo) ListBookedTimes(ctx context.Context, serviceID uint, from, to time.Time) ([]availdomain.BookedTime, error) {
	return f.booked, nil
}

func (f *fakeAvailRepo) ReplaceCalendarSettings(ctx context.Context, serviceID uint, settings *models.CalendarSettings) error {
	return nil
}

// ======================================================
// GATEWAY FAKE
// ======================================================

type fakeGateway struct {
	session    *gateway.CheckoutSession
	sessionErr error

	intent    *gateway.PaymentIntent
	intentErr error

	created *gateway.CreateCheckoutInput
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, in gateway.CreateCheckoutInput, subAccount string) (*gateway.CheckoutSession, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	f.created = &in
	return &gateway.CheckoutSession{
		ID:          "cs_test",
		URL:         "https://pay.example/cs_test",
		AmountTotal: in.Amount,
		Metadata:    in.Metadata,
	}, nil
}

func (f *fakeGateway) RetrieveCheckoutSession(ctx context.Context, sessionID string, subAccount string) (*gateway.CheckoutSession, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return f.session, nil
}

func (f *fakeGateway) RetrievePaymentIntent(ctx context.Context, paymentIntentID string, subAccount string) (*gateway.PaymentIntent, error) {
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return f.intent, nil
}

// ======================================================
// SHARED HELPERS
// ======================================================

// nopDispatcher delivers into a writer with no store; write failures are
// logged and swallowed, which is exactly the production failure mode.
func nopDispatcher() *notify.Dispatcher {
	return notify.NewDispatcher(notify.NewWriter(nil), nil, zerolog.Nop())
}

func nopCache() *cache.Cache {
	return cache.New(nil, 0)
}

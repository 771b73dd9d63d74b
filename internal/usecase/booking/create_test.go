package booking

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availdomain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
	ucavail "github.com/artisanhub/marketplace-api/internal/usecase/availability"
)

func createFixture() (*fakeRepo, *fakeAvailRepo) {
	repo := newFakeRepo()
	repo.services[7] = &models.Service{
		ID: 7, CreativeID: 2, Title: "Portrait session", Price: 200, DurationMin: 60,
	}

	avail := &fakeAvailRepo{
		settings: &models.CalendarSettings{
			ID:                1,
			ServiceID:         7,
			SchedulingEnabled: true,
			SessionDuration:   90,
			MinNoticeAmount:   24,
			MinNoticeUnit:     "hours",
			MaxAdvanceAmount:  30,
			MaxAdvanceUnit:    "days",
		},
		schedules: []models.WeeklySchedule{
			{ID: 10, CalendarSettingsID: 1, DayOfWeek: "Monday", Enabled: true},
		},
		slots: map[uint][]models.TimeSlot{
			10: {{ID: 100, WeeklyScheduleID: 10, SlotTime: "10:00", Enabled: true}},
		},
	}
	return repo, avail
}

func newCreateUC(repo *fakeRepo, avail *fakeAvailRepo) *CreateBooking {
	slots := ucavail.NewGetAvailableTimeSlots(avail, zerolog.Nop())
	uc := NewCreateBooking(repo, avail, slots, nopDispatcher(), nopCache())
	// Wed 2025-03-05 noon; Monday 2025-03-10 clears the 24h notice
	uc.Now = func() time.Time { return time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestCreateBooking(t *testing.T) {
	repo, avail := createFixture()
	uc := newCreateUC(repo, avail)

	b, err := uc.Execute(context.Background(), 3, CreateBookingInput{
		ServiceID:     7,
		Date:          "2025-03-10",
		StartTime:     "10:00",
		PaymentOption: "upfront",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.PublicID)
	assert.Equal(t, uint(2), b.CreativeID)
	assert.Equal(t, uint(3), b.ClientID)
	assert.Equal(t, 200.0, b.Price)
	assert.Equal(t, "10:00", b.StartTime)
	// session duration from calendar settings, not the service default
	assert.Equal(t, "11:30", b.EndTime)
	assert.Equal(t, string(domain.ClientPending), b.ClientStatus)
	assert.Equal(t, string(domain.CreativePending), b.CreativeStatus)
	assert.Equal(t, string(domain.PaymentPending), b.PaymentStatus)
}

func TestCreateBookingLaterStartsInProgress(t *testing.T) {
	repo, avail := createFixture()
	uc := newCreateUC(repo, avail)

	b, err := uc.Execute(context.Background(), 3, CreateBookingInput{
		ServiceID:     7,
		Date:          "2025-03-10",
		StartTime:     "10:00",
		PaymentOption: "later",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.ClientInProgress), b.ClientStatus)
	assert.Equal(t, string(domain.CreativeInProgress), b.CreativeStatus)
	assert.Equal(t, string(domain.PaymentPending), b.PaymentStatus)
}

func TestCreateBookingInvalidOption(t *testing.T) {
	repo, avail := createFixture()
	uc := newCreateUC(repo, avail)

	_, err := uc.Execute(context.Background(), 3, CreateBookingInput{
		ServiceID:     7,
		Date:          "2025-03-10",
		StartTime:     "10:00",
		PaymentOption: "installments",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_option"))
}

func TestCreateBookingSchedulingDisabled(t *testing.T) {
	repo, avail := createFixture()
	avail.settings.SchedulingEnabled = false
	uc := newCreateUC(repo, avail)

	_, err := uc.Execute(context.Background(), 3, CreateBookingInput{
		ServiceID:     7,
		Date:          "2025-03-10",
		StartTime:     "10:00",
		PaymentOption: "upfront",
	})
	assert.True(t, httperr.IsBusiness(err, "scheduling_disabled"))
}

func TestCreateBookingTooSoon(t *testing.T) {
	repo, avail := createFixture()
	uc := newCreateUC(repo, avail)
	// Monday 09:00, one hour before the requested slot, 24h notice required
	uc.Now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	_, err := uc.Execute(context.Background(), 3, CreateBookingInput{
		ServiceID:     7,
		Date:          "2025-03-10",
		StartTime:     "10:00",
		PaymentOption: "upfront",
	})
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateBookingSlotTaken(t *testing.T) {
	repo, avail := createFixture()
	uc := newCreateUC(repo, avail)

	// occupy the only slot, stored with offset noise
	avail.booked = []availdomain.BookedTime{{
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00:00+00:00",
	}}

	_, err := uc.Execute(context.Background(), 3, CreateBookingInput{
		ServiceID:     7,
		Date:          "2025-03-10",
		StartTime:     "10:00",
		PaymentOption: "upfront",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_not_available"))
}

func TestCreateBookingUnknownDayRejected(t *testing.T) {
	repo, avail := createFixture()
	uc := newCreateUC(repo, avail)

	// Tuesday has no schedule
	_, err := uc.Execute(context.Background(), 3, CreateBookingInput{
		ServiceID:     7,
		Date:          "2025-03-11",
		StartTime:     "10:00",
		PaymentOption: "upfront",
	})
	assert.True(t, httperr.IsBusiness(err, "slot_not_available"))
}

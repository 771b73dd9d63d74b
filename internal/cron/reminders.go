package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/artisanhub/marketplace-api/internal/domain/booking"
	"github.com/artisanhub/marketplace-api/internal/notify"
)

// Scheduler runs the daily reminder sweeps. Both sweeps tolerate failures:
// a broken query skips the run and the next tick tries again.
type Scheduler struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
	log        zerolog.Logger
	cron       *cron.Cron
}

func NewScheduler(db *gorm.DB, dispatcher *notify.Dispatcher, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		db:         db,
		dispatcher: dispatcher,
		log:        log,
		cron:       cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 8 * * *", s.sweepUpcomingSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 9 * * *", s.sweepOutstandingBalances); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Msg("reminder scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

type reminderRow struct {
	ID          uint
	ClientID    uint
	CreativeID  uint
	BookingDate time.Time
	StartTime   string
	Price       float64
	AmountPaid  float64
	ClientEmail string
	Title       string
}

// sweepUpcomingSessions reminds both sides of sessions happening tomorrow.
func (s *Scheduler) sweepUpcomingSessions() {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	var rows []reminderRow
	err := s.db.Table("bookings").
		Select("bookings.id, bookings.client_id, bookings.creative_id, bookings.booking_date, bookings.start_time, services.title").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("bookings.booking_date = ?", tomorrow).
		Where("bookings.client_status <> ?", string(domain.ClientCancelled)).
		Where("bookings.creative_status <> ?", string(domain.CreativeRejected)).
		Scan(&rows).Error
	if err != nil {
		s.log.Error().Err(err).Msg("upcoming session sweep failed")
		return
	}

	for _, r := range rows {
		id := r.ID
		msg := fmt.Sprintf("Your %s session is tomorrow at %s.", r.Title, r.StartTime)

		s.dispatcher.Dispatch(notify.Event{
			RecipientID:   r.ClientID,
			Type:          "booking_reminder",
			Title:         "Session tomorrow",
			Message:       msg,
			RelatedEntity: "booking",
			RelatedID:     &id,
		})
		s.dispatcher.Dispatch(notify.Event{
			RecipientID:   r.CreativeID,
			Type:          "booking_reminder",
			Title:         "Session tomorrow",
			Message:       msg,
			RelatedEntity: "booking",
			RelatedID:     &id,
		})
	}

	s.log.Info().Int("bookings", len(rows)).Msg("upcoming session sweep done")
}

// sweepOutstandingBalances nudges clients who still owe a balance on
// deposit-paid bookings.
func (s *Scheduler) sweepOutstandingBalances() {
	var rows []reminderRow
	err := s.db.Table("bookings").
		Select("bookings.id, bookings.client_id, bookings.price, bookings.amount_paid, users.email AS client_email, services.title").
		Joins("JOIN services ON services.id = bookings.service_id").
		Joins("JOIN users ON users.id = bookings.client_id").
		Where("bookings.payment_status = ?", string(domain.PaymentDepositPaid)).
		Where("bookings.payment_option IN ?", []string{string(domain.OptionSplit), string(domain.OptionLater)}).
		Where("bookings.client_status <> ?", string(domain.ClientCancelled)).
		Where("bookings.creative_status <> ?", string(domain.CreativeRejected)).
		Scan(&rows).Error
	if err != nil {
		s.log.Error().Err(err).Msg("outstanding balance sweep failed")
		return
	}

	for _, r := range rows {
		id := r.ID
		due := r.Price - r.AmountPaid
		if due <= 0 {
			continue
		}

		s.dispatcher.Dispatch(notify.Event{
			RecipientID:   r.ClientID,
			Email:         r.ClientEmail,
			Type:          "payment_reminder",
			Title:         "Balance outstanding",
			Message:       fmt.Sprintf("You still owe %.2f on your %s booking.", due, r.Title),
			RelatedEntity: "booking",
			RelatedID:     &id,
		})
	}

	s.log.Info().Int("bookings", len(rows)).Msg("outstanding balance sweep done")
}

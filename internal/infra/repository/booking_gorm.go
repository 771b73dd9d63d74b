package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// isUniqueViolation matches the postgres 23505 error class; gorm's own
// translated error covers the sqlite path used in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// --------------------------------------------------
// Service / users
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	userID uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("slot_already_booked")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Creative").
		Where("client_id = ?", clientID).
		Order("booking_date DESC, start_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForCreative(
	ctx context.Context,
	creativeID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Client").
		Where("creative_id = ?", creativeID).
		Order("booking_date DESC, start_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Deliverables
// --------------------------------------------------

func (r *BookingGormRepository) HasDeliverables(
	ctx context.Context,
	bookingID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Deliverable{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Payment verification
// --------------------------------------------------

// RunPaymentTransaction serializes payment application per booking: the row
// lock prevents the lost-update race between concurrent verifications, and
// the processed_payments unique index rejects a session replay before any
// money is counted twice.
func (r *BookingGormRepository) RunPaymentTransaction(
	ctx context.Context,
	bookingID uint,
	payment *models.ProcessedPayment,
	apply func(b *models.Booking, filesExist bool) error,
) (*models.Booking, error) {

	var locked models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		q := tx
		// sqlite has no row locks; its transactions are single-writer anyway
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&locked, bookingID).Error; err != nil {
			return httperr.ErrBusiness("booking_not_found")
		}

		if err := tx.Create(payment).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness("payment_already_processed")
			}
			return err
		}

		var files int64
		if err := tx.Model(&models.Deliverable{}).
			Where("booking_id = ?", locked.ID).
			Count(&files).Error; err != nil {
			return err
		}

		if err := apply(&locked, files > 0); err != nil {
			return err
		}

		// UpdateColumns keeps gorm from overwriting the forced updated_at,
		// which must stay pinned to the payment's own timestamp.
		return tx.Model(&models.Booking{}).
			Where("id = ?", locked.ID).
			UpdateColumns(map[string]any{
				"amount_paid":     locked.AmountPaid,
				"payment_status":  locked.PaymentStatus,
				"client_status":   locked.ClientStatus,
				"creative_status": locked.CreativeStatus,
				"updated_at":      locked.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &locked, nil
}

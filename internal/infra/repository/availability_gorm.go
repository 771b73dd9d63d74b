package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	domain "github.com/artisanhub/marketplace-api/internal/domain/availability"
	"github.com/artisanhub/marketplace-api/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, serviceID).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Calendar settings
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetActiveCalendarSettings(
	ctx context.Context,
	serviceID uint,
) (*models.CalendarSettings, error) {

	var settings models.CalendarSettings
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND active = ?", serviceID, true).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *AvailabilityGormRepository) ListWeeklySchedules(
	ctx context.Context,
	calendarSettingsID uint,
) ([]models.WeeklySchedule, error) {

	var schedules []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Preload("TimeBlocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_time ASC")
		}).
		Where("calendar_settings_id = ?", calendarSettingsID).
		Find(&schedules).Error; err != nil {
		return nil, err
	}

	// Only the first block per day is part of the schedule's read model.
	for i := range schedules {
		if len(schedules[i].TimeBlocks) > 1 {
			schedules[i].TimeBlocks = schedules[i].TimeBlocks[:1]
		}
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		return domain.DayRank(schedules[i].DayOfWeek) < domain.DayRank(schedules[j].DayOfWeek)
	})

	return schedules, nil
}

func (r *AvailabilityGormRepository) ListEnabledTimeSlots(
	ctx context.Context,
	weeklyScheduleID uint,
) ([]models.TimeSlot, error) {

	var slots []models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("weekly_schedule_id = ? AND enabled = ?", weeklyScheduleID, true).
		Order("slot_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// --------------------------------------------------
// Bookings (read side)
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListBookedTimes(
	ctx context.Context,
	serviceID uint,
	from time.Time,
	to time.Time,
) ([]domain.BookedTime, error) {

	var out []domain.BookedTime
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("booking_date", "start_time").
		Where(
			"service_id = ? AND booking_date >= ? AND booking_date <= ? AND creative_status <> ? AND client_status <> ?",
			serviceID, from, to, "rejected", "cancelled",
		).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Wholesale replace
// --------------------------------------------------

// ReplaceCalendarSettings swaps the whole settings aggregate inside one
// transaction, so a concurrent reader sees either the old tree or the new
// one, never a gap.
func (r *AvailabilityGormRepository) ReplaceCalendarSettings(
	ctx context.Context,
	serviceID uint,
	settings *models.CalendarSettings,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var settingsIDs []uint
		if err := tx.Model(&models.CalendarSettings{}).
			Where("service_id = ?", serviceID).
			Pluck("id", &settingsIDs).Error; err != nil {
			return err
		}

		if len(settingsIDs) > 0 {
			var scheduleIDs []uint
			if err := tx.Model(&models.WeeklySchedule{}).
				Where("calendar_settings_id IN ?", settingsIDs).
				Pluck("id", &scheduleIDs).Error; err != nil {
				return err
			}

			if len(scheduleIDs) > 0 {
				if err := tx.Where("weekly_schedule_id IN ?", scheduleIDs).
					Delete(&models.TimeSlot{}).Error; err != nil {
					return err
				}
				if err := tx.Where("weekly_schedule_id IN ?", scheduleIDs).
					Delete(&models.TimeBlock{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("calendar_settings_id IN ?", settingsIDs).
				Delete(&models.WeeklySchedule{}).Error; err != nil {
				return err
			}
			if err := tx.Where("service_id = ?", serviceID).
				Delete(&models.CalendarSettings{}).Error; err != nil {
				return err
			}
		}

		return tx.Create(settings).Error
	})
}

package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/artisanhub/marketplace-api/internal/config"
	"github.com/artisanhub/marketplace-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.CalendarSettings{},
		&models.WeeklySchedule{},
		&models.TimeBlock{},
		&models.TimeSlot{},
		&models.Booking{},
		&models.Deliverable{},
		&models.Notification{},
		&models.ProcessedPayment{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// A slot can be taken at most once per service and date while the
	// booking is live; cancelled and rejected rows free it again. AutoMigrate
	// cannot express the partial index, so it is applied here.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_live_slot
        ON bookings (service_id, booking_date, start_time)
        WHERE client_status <> 'cancelled' AND creative_status <> 'rejected'
    `)

	return db
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/artisanhub/marketplace-api/internal/cache"
	"github.com/artisanhub/marketplace-api/internal/config"
	"github.com/artisanhub/marketplace-api/internal/gateway"
	"github.com/artisanhub/marketplace-api/internal/handlers"
	infraRepo "github.com/artisanhub/marketplace-api/internal/infra/repository"
	"github.com/artisanhub/marketplace-api/internal/middleware"
	"github.com/artisanhub/marketplace-api/internal/models"
	"github.com/artisanhub/marketplace-api/internal/notify"
	"github.com/artisanhub/marketplace-api/internal/storage"
	ucAvail "github.com/artisanhub/marketplace-api/internal/usecase/availability"
	ucBooking "github.com/artisanhub/marketplace-api/internal/usecase/booking"
)

// RegisterRoutes wires the whole API. The returned dispatcher is shared
// with the cron scheduler so reminders reuse the same delivery path.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) *notify.Dispatcher {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availRepo := infraRepo.NewAvailabilityGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	redisClient := cache.NewRedisClient(cfg)
	availCache := cache.New(redisClient, 0)

	stripeGateway := gateway.NewStripeGateway(cfg.StripeSecretKey)
	deliverableStore := storage.NewDeliverableStore(cfg)

	dispatcher := notify.NewDispatcher(
		notify.NewWriter(db),
		notify.NewMailer(cfg),
		log,
	)

	// ======================================================
	// USE CASES: AVAILABILITY
	// ======================================================
	getSettingsUC := ucAvail.NewGetCalendarSettings(availRepo)
	getScheduleUC := ucAvail.NewGetWeeklySchedule(availRepo)
	getTimeSlotsUC := ucAvail.NewGetTimeSlots(availRepo)
	saveCalendarUC := ucAvail.NewSaveCalendarSettings(availRepo, availCache, log)

	availableDatesUC := ucAvail.NewGetAvailableDates(availRepo, availCache, log)
	availableSlotsUC := ucAvail.NewGetAvailableTimeSlots(availRepo, log)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		availRepo,
		availableSlotsUC,
		dispatcher,
		availCache,
	)

	bookingActionsUC := ucBooking.NewBookingActions(bookingRepo, dispatcher, availCache)

	checkoutUC := ucBooking.NewCreateCheckout(bookingRepo, stripeGateway, cfg)
	verifyPaymentUC := ucBooking.NewVerifyPayment(
		bookingRepo,
		stripeGateway,
		dispatcher,
		availCache,
		log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db)
	calendarHandler := handlers.NewCalendarHandler(
		getSettingsUC,
		getScheduleUC,
		getTimeSlotsUC,
		saveCalendarUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(availableDatesUC, availableSlotsUC)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, createBookingUC, bookingActionsUC)
	paymentHandler := handlers.NewPaymentHandler(checkoutUC, verifyPaymentUC)
	deliverableHandler := handlers.NewDeliverableHandler(db, deliverableStore, log)
	notificationHandler := handlers.NewNotificationHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.ListPublic)
		api.GET("/services/:serviceId", serviceHandler.Get)
		api.GET("/services/:serviceId/availability/dates", availabilityHandler.Dates)
		api.GET("/services/:serviceId/availability/slots", availabilityHandler.Slots)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			// ------------------------------
			// BOOKINGS (both roles)
			// ------------------------------
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/me/bookings/lookup/:publicId", bookingHandler.Lookup)
			secured.GET("/bookings/:id/files", deliverableHandler.List)
			secured.GET("/bookings/:id/files/:fileId/download", deliverableHandler.Download)

			// ------------------------------
			// CLIENT
			// ------------------------------
			client := secured.Group("/")
			client.Use(middleware.RequireRole(models.RoleClient))
			{
				client.POST("/bookings", bookingHandler.Create)
				client.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
				client.POST("/bookings/:id/checkout", paymentHandler.Checkout)
				client.POST("/bookings/:id/verify-payment", paymentHandler.Verify)
			}

			// ------------------------------
			// CREATIVE
			// ------------------------------
			creative := secured.Group("/")
			creative.Use(middleware.RequireRole(models.RoleCreative))
			{
				creative.GET("/me/services", serviceHandler.ListMine)
				creative.POST("/me/services", serviceHandler.Create)
				creative.PATCH("/me/services/:serviceId", serviceHandler.Update)

				creative.GET("/me/services/:serviceId/calendar", calendarHandler.GetSettings)
				creative.PUT("/me/services/:serviceId/calendar", calendarHandler.Save)
				creative.GET("/me/calendar/:settingsId/schedule", calendarHandler.GetSchedule)
				creative.GET("/me/schedule/:scheduleId/slots", calendarHandler.GetSlots)

				creative.PATCH("/bookings/:id/approve", bookingHandler.Approve)
				creative.PATCH("/bookings/:id/reject", bookingHandler.Reject)
				creative.PATCH("/bookings/:id/finalize", bookingHandler.Finalize)
				creative.POST("/bookings/:id/files", deliverableHandler.Upload)
			}
		}
	}

	return dispatcher
}

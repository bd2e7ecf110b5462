package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/audit"
	"github.com/barberbook/booking-api/internal/cache"
	"github.com/barberbook/booking-api/internal/config"
	"github.com/barberbook/booking-api/internal/handlers"
	infraRepo "github.com/barberbook/booking-api/internal/infra/repository"
	"github.com/barberbook/booking-api/internal/middleware"
	"github.com/barberbook/booking-api/internal/payments"
	"github.com/barberbook/booking-api/internal/storage"
	ucBooking "github.com/barberbook/booking-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	store := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)

	uploader := storage.NewUploader(storage.Config{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})

	mp, err := payments.NewClient(cfg.MercadoPagoToken)
	if err != nil {
		log.Warn().Err(err).Msg("payments disabled: invalid MercadoPago config")
	}
	var paymentLinker ucBooking.PaymentLinker
	if mp != nil {
		paymentLinker = mp
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listByUserUC := ucBooking.NewListByUser(bookingRepo)
	listByShopUC := ucBooking.NewListByShop(bookingRepo)
	updateStatusUC := ucBooking.NewUpdateStatus(bookingRepo, auditDispatcher, paymentLinker)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, auditDispatcher)
	listFreeSlotsUC := ucBooking.NewListFreeSlots(bookingRepo)
	checkAvailabilityUC := ucBooking.NewCheckAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	shopHandler := handlers.NewShopHandler(db, store, uploader, listFreeSlotsUC, checkAvailabilityUC)
	serviceHandler := handlers.NewServiceHandler(db, store)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		getBookingUC,
		listByUserUC,
		listByShopUC,
		updateStatusUC,
		deleteBookingUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/users/register", authHandler.Register)
		api.POST("/users/login", authHandler.Login)

		// ------------------------------
		// PUBLIC READS
		// ------------------------------
		api.GET("/shops", shopHandler.List)
		api.GET("/shops/:id", shopHandler.GetByID)
		api.GET("/shops/:id/services", shopHandler.ListServices)
		api.GET("/shops/:id/availability", shopHandler.Availability)

		api.GET("/services", serviceHandler.List)
		api.GET("/services/popular", serviceHandler.Popular)
		api.GET("/services/barber/:id", serviceHandler.ListByBarber)
		api.GET("/services/:id", serviceHandler.GetByID)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/users/profile", userHandler.GetProfile)
			secured.PUT("/users/profile", userHandler.UpdateProfile)

			secured.POST("/shops", shopHandler.Create)
			secured.PUT("/shops/:id", shopHandler.Update)
			secured.POST("/shops/:id/barbers", shopHandler.AddBarber)
			secured.POST("/shops/:id/logo", shopHandler.UploadLogo)
			secured.POST("/shops/:id/cover", shopHandler.UploadCover)

			secured.POST("/services", serviceHandler.Create)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/user", bookingHandler.ListMine)
			secured.GET("/bookings/:id", bookingHandler.GetByID)
			secured.GET("/bookings/shop/:id", bookingHandler.ListByShop)
			secured.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.DELETE("/bookings/:id", bookingHandler.Delete)
				admin.DELETE("/shops/:id", shopHandler.Delete)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

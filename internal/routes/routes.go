package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/audit"
	"github.com/glowupapps/salon-scheduler/internal/cache"
	"github.com/glowupapps/salon-scheduler/internal/config"
	"github.com/glowupapps/salon-scheduler/internal/handlers"
	infraRepo "github.com/glowupapps/salon-scheduler/internal/infra/repository"
	"github.com/glowupapps/salon-scheduler/internal/middleware"
	"github.com/glowupapps/salon-scheduler/internal/models"
	"github.com/glowupapps/salon-scheduler/internal/storage"
	ucAppointment "github.com/glowupapps/salon-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	slotCache := cache.NewAvailabilityCache(rdb, 60*time.Second)
	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES — AGENDAMENTO
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		slotCache,
		auditDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		slotCache,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		slotCache,
		auditDispatcher,
	)

	updatePaymentUC := ucAppointment.NewUpdatePayment(
		appointmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	salonHandler := handlers.NewSalonHandler(db, uploader)
	serviceHandler := handlers.NewServiceHandler(db)
	stylistHandler := handlers.NewStylistHandler(db, uploader)
	ratingHandler := handlers.NewRatingHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		availabilityUC,
		updateStatusUC,
		updatePaymentUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICO
		// ------------------------------
		api.GET("/salons", salonHandler.List)
		api.GET("/salons/:id", salonHandler.Get)
		api.GET("/salons/:id/services", serviceHandler.ListBySalon)
		api.GET("/salons/:id/stylists", stylistHandler.ListBySalon)
		api.GET("/stylists/:id/working-hours", stylistHandler.GetWorkingHours)
		api.GET("/appointments/availability", appointmentHandler.Availability)
		api.GET("/ratings/:targetType/:targetId", ratingHandler.ListByTarget)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// SALÕES (dono)
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireRoles(models.RoleSalonOwner, models.RoleAdmin))
			{
				owner.POST("/salons", salonHandler.Create)
				owner.GET("/me/salons", salonHandler.ListMine)
				owner.PATCH("/salons/:id", salonHandler.Update)
				owner.POST("/salons/:id/logo", salonHandler.UploadLogo)

				owner.POST("/salons/:id/services", serviceHandler.Create)
				owner.PATCH("/services/:id", serviceHandler.Update)
				owner.DELETE("/services/:id", serviceHandler.Deactivate)

				owner.POST("/salons/:id/stylists", stylistHandler.Create)
				owner.PATCH("/stylists/:id", stylistHandler.Update)
				owner.PUT("/stylists/:id/services", stylistHandler.SetServices)
				owner.PUT("/stylists/:id/working-hours", stylistHandler.UpdateWorkingHours)
				owner.POST("/stylists/:id/portfolio", stylistHandler.UploadPortfolioImage)
			}

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.POST("/appointments",
				middleware.RequireRoles(models.RoleClient),
				appointmentHandler.Create)

			secured.GET("/appointments", appointmentHandler.ListMine)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

			secured.PUT("/appointments/:id/payment",
				middleware.RequireRoles(models.RoleStylist, models.RoleSalonOwner, models.RoleAdmin),
				appointmentHandler.UpdatePayment)

			// ------------------------------
			// AVALIAÇÕES
			// ------------------------------
			secured.POST("/ratings",
				middleware.RequireRoles(models.RoleClient),
				ratingHandler.Create)
		}
	}
}

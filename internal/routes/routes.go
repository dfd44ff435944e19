package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/audit"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/config"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/handlers"
	infraRepo "github.com/semprecheioapp/semprecheioapp-sub001/internal/infra/repository"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/jobs"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/media"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/middleware"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/payments/asaas"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/session"
	ucSchedule "github.com/semprecheioapp/semprecheioapp-sub001/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	sessions *session.Store,
) *jobs.Scheduler {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	asaasClient := asaas.NewClient(cfg.AsaasBaseURL, cfg.AsaasAPIKey)
	uploader := media.NewUploader(cfg)

	// ======================================================
	// USE CASES — AGENDA
	// ======================================================
	generateSlotsUC := ucSchedule.NewGenerateSlots(scheduleRepo)

	materializeMonthUC := ucSchedule.NewMaterializeMonth(scheduleRepo, log)

	generateNextMonthUC := ucSchedule.NewGenerateNextMonth(materializeMonthUC)

	createAppointmentUC := ucSchedule.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucSchedule.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	meHandler := handlers.NewMeHandler(db)

	clientHandler := handlers.NewClientHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db, uploader)
	serviceHandler := handlers.NewServiceHandler(db)
	specialtyHandler := handlers.NewSpecialtyHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		auditDispatcher,
		generateSlotsUC,
		materializeMonthUC,
		generateNextMonthUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		auditDispatcher,
		createAppointmentUC,
		cancelAppointmentUC,
	)

	webhookHandler := handlers.NewWebhookHandler(db, log, cancelAppointmentUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(db, asaasClient, auditDispatcher, log)
	metricsHandler := handlers.NewMetricsHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// WEBHOOKS (sem autenticação, verificação própria)
	// ======================================================
	webhook := r.Group("/webhook")
	{
		webhook.POST("/cancel-appointment", webhookHandler.CancelAppointment)
		webhook.POST("/asaas", webhookHandler.Asaas)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CADASTROS DO TENANT
			// ------------------------------
			secured.GET("/professionals", professionalHandler.List)
			secured.POST("/professionals", professionalHandler.Create)
			secured.PATCH("/professionals/:id", professionalHandler.Update)
			secured.DELETE("/professionals/:id", professionalHandler.Delete)
			secured.POST("/professionals/:id/photo", professionalHandler.UploadPhoto)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/specialties", specialtyHandler.List)
			secured.POST("/specialties", specialtyHandler.Create)
			secured.DELETE("/specialties/:id", specialtyHandler.Delete)

			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)
			secured.PATCH("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id", customerHandler.Delete)

			// ------------------------------
			// DISPONIBILIDADE
			// ------------------------------
			secured.GET("/professional-availability", availabilityHandler.List)
			secured.POST("/professional-availability", availabilityHandler.Create)
			secured.POST("/professional-availability/generate-slots", availabilityHandler.GenerateSlots)
			secured.POST("/professional-availability/generate-next-month", availabilityHandler.GenerateNextMonth)
			secured.POST("/professional-availability/update-monthly", availabilityHandler.UpdateMonthly)
			secured.PATCH("/professional-availability/:id", availabilityHandler.Update)
			secured.DELETE("/professional-availability/:id", availabilityHandler.Delete)

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// ASSINATURA DO TENANT
			// ------------------------------
			secured.GET("/subscription", subscriptionHandler.Get)
			secured.POST("/subscription", subscriptionHandler.Create)
			secured.DELETE("/subscription", subscriptionHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// OPERADOR DA PLATAFORMA
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleSuperAdmin))
			{
				admin.GET("/clients", clientHandler.List)
				admin.POST("/clients", clientHandler.Create)
				admin.PATCH("/clients/:id", clientHandler.Update)
				admin.DELETE("/clients/:id", clientHandler.Delete)

				admin.GET("/metrics/revenue", metricsHandler.Revenue)
			}
		}
	}

	return jobs.NewScheduler(log, generateNextMonthUC)
}

package routes

import (
	"salon-app-server/internal/config"
	"salon-app-server/internal/handlers"
	"salon-app-server/internal/mailer"
	"salon-app-server/internal/middleware"
	"salon-app-server/internal/models"
	"salon-app-server/internal/payments"
	"salon-app-server/internal/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	hours := scheduling.BusinessHours{
		OpenMinute:      cfg.Salon.OpenMinute,
		CloseMinute:     cfg.Salon.CloseMinute,
		SlotStep:        scheduling.DefaultSlotStep,
		DefaultDuration: scheduling.DefaultServiceDuration,
		Location:        cfg.Salon.Location,
	}
	clock := scheduling.SystemClock(cfg.Salon.Location)
	sender := mailer.NewSMTPSender(cfg.Mailer.Host, cfg.Mailer.Port, cfg.Mailer.From)
	processor := payments.NewStripeProcessor(cfg.Stripe.SecretKey, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, hours, clock, logger)
	dashboardHandler := handlers.NewDashboardHandler(db, clock)
	notificationHandler := handlers.NewNotificationHandler(db, sender, logger)
	paymentHandler := handlers.NewPaymentHandler(db, processor)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// The service catalogue is public so prospective clients can browse.
		public.GET("/services", serviceHandler.GetServices)
		public.GET("/services/:id", serviceHandler.GetServiceByID)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Stylist list is needed by every role to book appointments.
			userRoutes.GET("/stylists", userHandler.GetStylists)

			// Receptionists need the client roster at the front desk.
			userRoutes.GET("/clients",
				middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin),
				userHandler.GetClients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Service catalogue management (admin)
		serviceRoutes := private.Group("/services")
		serviceRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			serviceRoutes.POST("", serviceHandler.CreateService)
			serviceRoutes.PUT("/:id", serviceHandler.UpdateService)
			serviceRoutes.DELETE("/:id", serviceHandler.DeleteService)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Free slot lookup, open to every authenticated role.
			appointmentRoutes.GET("/availability", appointmentHandler.GetAvailability)

			appointmentRoutes.POST("",
				middleware.RoleAuthMiddleware(models.RoleClient, models.RoleReceptionist, models.RoleAdmin),
				appointmentHandler.CreateAppointment)

			appointmentRoutes.POST("/walk-in",
				middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin),
				appointmentHandler.CreateWalkInAppointment)

			// Listing and single fetch scope by role inside the handler.
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			appointmentRoutes.PATCH("/:id",
				middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin),
				appointmentHandler.UpdateAppointment)

			// Status transitions; clients may only cancel, enforced in handler.
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)

			appointmentRoutes.DELETE("/:id",
				middleware.RoleAuthMiddleware(models.RoleAdmin),
				appointmentHandler.DeleteAppointment)
		}

		// Dashboard: one endpoint, payload depends on the caller's role.
		private.GET("/dashboard", dashboardHandler.GetDashboard)

		// Notification routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.POST("",
				middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin),
				notificationHandler.CreateNotification)
			notificationRoutes.GET("", notificationHandler.GetNotifications)
		}

		// Payment routes
		paymentRoutes := private.Group("/payments")
		{
			paymentRoutes.POST("/charge", paymentHandler.CreateCharge)
			paymentRoutes.GET("/history", paymentHandler.ListCharges)
			paymentRoutes.GET("/:chargeId", paymentHandler.GetCharge)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}

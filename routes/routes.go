package routes

import (
	"DentalClinic/cache"
	"DentalClinic/config"
	"DentalClinic/controllers"
	"DentalClinic/database"
	"DentalClinic/handlers"
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/repositories"
	"DentalClinic/services"
	"DentalClinic/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	if !config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.LoggingMiddleware())
	router.Use(middlewares.CorsMiddleware(config.CORSOrigins))
	router.Use(middlewares.SecurityHeaders())
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: config.RateLimitRPS,
		Burst:             config.RateLimitBurst,
	}))

	patientRepo := repositories.NewPatientRepository(db, cache)
	userRepo := repositories.NewUserRepository(db, cache)
	orderRepo := repositories.NewOrderRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db, cache)
	serviceRepo := repositories.NewServiceRepository(db, cache)
	expenseRepo := repositories.NewExpenseRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	satellites := services.Satellites{
		Appointments:    repositories.NewAppointmentRepository(db, cache),
		MedicalFindings: repositories.NewMedicalFindingRepository(db, cache),
		HealthInfo:      repositories.NewSatelliteRepository[models.HealthInfo](db, cache, "health_info"),
		Images:          repositories.NewSatelliteRepository[models.Image](db, cache, "image"),
		Invoices:        invoiceRepo,
		Cards:           repositories.NewSatelliteRepository[models.Card](db, cache, "card"),
	}

	locker := database.NewRedisLocker()
	mailer := utils.NewReportMailer(utils.SMTPConfig{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		User:     config.SMTPUser,
		Password: config.SMTPPass,
		From:     config.ReportSender,
	})

	patientService := services.NewPatientService(patientRepo, satellites, orderRepo, locker)
	recordService := services.NewRecordService(patientRepo, userRepo, satellites)
	orderService := services.NewOrderService(patientRepo, userRepo, orderRepo, locker)
	invoiceService := services.NewInvoiceService(patientRepo, invoiceRepo, serviceRepo)
	reportService := services.NewReportService(reportRepo, patientRepo, orderRepo, invoiceRepo, userRepo, mailer)
	catalogService := services.NewCatalogService(serviceRepo, expenseRepo)
	userService := services.NewUserService(userRepo, locker)

	controllers.SetupPatientRoutes(
		router,
		handlers.NewPatientHandler(patientService),
		handlers.NewRecordHandler(recordService),
		handlers.NewInvoiceHandler(invoiceService),
		handlers.NewOrderHandler(orderService),
	)
	controllers.SetupClinicRoutes(
		router,
		handlers.NewReportHandler(reportService),
		handlers.NewCatalogHandler(catalogService),
	)

	authController := controllers.NewAuthController(handlers.NewUserHandler(userService))
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}

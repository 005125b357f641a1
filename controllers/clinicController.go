package controllers

import (
	"DentalClinic/handlers"
	"DentalClinic/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes mounts reporting, the service catalog and expenses.
func SetupClinicRoutes(router *gin.Engine, reportHandler *handlers.ReportHandler, catalogHandler *handlers.CatalogHandler) {
	api := router.Group("/", middlewares.TokenAuthMiddleware())

	api.POST("/reports/payments", reportHandler.PaymentReport)
	api.POST("/reports/payments/email", reportHandler.EmailPaymentReport)
	api.POST("/reports/expenses", reportHandler.ExpenseReport)
	api.GET("/dashboard", reportHandler.Dashboard)

	api.POST("/services", catalogHandler.CreateService)
	api.GET("/services", catalogHandler.ListServices)
	api.PATCH("/services/:id", catalogHandler.UpdateService)
	api.DELETE("/services/:id", catalogHandler.DeleteService)

	api.POST("/expenses", catalogHandler.CreateExpense)
	api.GET("/expenses", catalogHandler.ListExpenses)
	api.DELETE("/expenses/:id", catalogHandler.DeleteExpense)
}

package controllers

import (
	"DentalClinic/handlers"
	"DentalClinic/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupPatientRoutes mounts the patient record and everything a patient owns.
func SetupPatientRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, recordHandler *handlers.RecordHandler, invoiceHandler *handlers.InvoiceHandler, orderHandler *handlers.OrderHandler) {
	api := router.Group("/", middlewares.TokenAuthMiddleware())

	api.POST("/patients", patientHandler.CreatePatient)
	api.GET("/patients", patientHandler.GetAllPatients)
	api.GET("/patients/search", patientHandler.SearchPatients)
	api.POST("/patients/filter", patientHandler.FilterPatients)
	api.GET("/patients/recent", patientHandler.RecentPatients)
	api.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	api.PATCH("/patients/:patient_id", patientHandler.UpdatePatient)
	api.DELETE("/patients/:patient_id", patientHandler.DeletePatient)

	api.POST("/patients/:patient_id/appointments", recordHandler.CreateAppointment)
	api.GET("/patients/:patient_id/appointments", recordHandler.GetPatientAppointments)
	api.GET("/appointments/today", recordHandler.TodayAppointments)
	api.POST("/appointments/day", recordHandler.AppointmentsOnDay)
	api.GET("/appointments/:id", recordHandler.GetAppointment)
	api.PATCH("/appointments/:id", recordHandler.UpdateAppointment)
	api.DELETE("/appointments/:id", recordHandler.DeleteAppointment)

	api.POST("/patients/:patient_id/medical-findings", recordHandler.CreateMedicalFinding)
	api.GET("/patients/:patient_id/medical-findings", recordHandler.GetPatientMedicalFindings)
	api.GET("/medical-findings/recent", recordHandler.RecentMedicalFindings)
	api.GET("/medical-findings/:id", recordHandler.GetMedicalFinding)
	api.PATCH("/medical-findings/:id", recordHandler.UpdateMedicalFinding)
	api.DELETE("/medical-findings/:id", recordHandler.DeleteMedicalFinding)

	api.POST("/patients/:patient_id/health-info", recordHandler.CreateHealthInfo)
	api.GET("/patients/:patient_id/health-info", recordHandler.GetPatientHealthInfo)
	api.GET("/health-info/:id", recordHandler.GetHealthInfo)
	api.PATCH("/health-info/:id", recordHandler.UpdateHealthInfo)
	api.DELETE("/health-info/:id", recordHandler.DeleteHealthInfo)

	api.POST("/patients/:patient_id/images", recordHandler.CreateImage)
	api.GET("/patients/:patient_id/images", recordHandler.GetPatientImages)
	api.GET("/images/:id", recordHandler.GetImage)
	api.PATCH("/images/:id", recordHandler.UpdateImage)
	api.DELETE("/images/:id", recordHandler.DeleteImage)

	api.POST("/patients/:patient_id/cards", recordHandler.CreateCard)
	api.GET("/patients/:patient_id/cards", recordHandler.GetPatientCards)
	api.GET("/cards/:id", recordHandler.GetCard)
	api.PATCH("/cards/:id", recordHandler.UpdateCard)
	api.DELETE("/cards/:id", recordHandler.DeleteCard)

	api.POST("/patients/:patient_id/invoices", invoiceHandler.CreateInvoice)
	api.GET("/patients/:patient_id/invoices", invoiceHandler.GetPatientInvoices)
	api.GET("/invoices/pending", invoiceHandler.PendingPayments)
	api.GET("/invoices/:id", invoiceHandler.GetInvoice)
	api.PATCH("/invoices/:id", invoiceHandler.UpdateInvoice)
	api.DELETE("/invoices/:id", invoiceHandler.DeleteInvoice)
	api.POST("/invoices/:id/payments", invoiceHandler.ConfirmPayment)

	api.POST("/patients/:patient_id/order", orderHandler.AssignOrder)
	api.GET("/orders/active", orderHandler.ActiveOrders)
	api.GET("/orders/active/mine", orderHandler.MyActiveOrders)
	api.GET("/orders/active/count", orderHandler.CountActiveOrders)
	api.GET("/orders/:id", orderHandler.GetOrder)
	api.PATCH("/orders/:id", orderHandler.UpdateOrder)
	api.DELETE("/orders/:id", orderHandler.DeleteOrder)
}

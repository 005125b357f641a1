package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) PaymentReport(c *gin.Context) {
	var req models.PaymentReportRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.service.PaymentReport(c.Request.Context(), req)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Payment report generated successfully", report)
}

func (h *ReportHandler) EmailPaymentReport(c *gin.Context) {
	var req models.EmailReportRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.service.EmailPaymentReport(c.Request.Context(), req)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Payment report sent to "+req.Recipient, report.Totals)
}

func (h *ReportHandler) ExpenseReport(c *gin.Context) {
	var req models.DateRangeRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.service.ExpenseReport(c.Request.Context(), req)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Expense report generated successfully", report)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

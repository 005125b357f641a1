package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var in models.InvoiceInput
	if !bindJSON(c, &in) {
		return
	}
	invoice, err := h.service.CreateInvoice(c.Request.Context(), c.Param("patient_id"), in, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Invoice created successfully", invoice)
}

func (h *InvoiceHandler) GetPatientInvoices(c *gin.Context) {
	list, err := h.service.ListInvoices(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	respondList(c, list, "Invoices retrieved successfully", "invoices")
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Invoice retrieved successfully", invoice)
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var patch models.InvoicePatch
	if !bindJSON(c, &patch) {
		return
	}
	invoice, err := h.service.UpdateInvoice(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Invoice updated successfully", invoice)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	respondDeleted(c, h.service.DeleteInvoice(c.Request.Context(), c.Param("id")), "Invoice deleted")
}

// ConfirmPayment records the pending payment of an invoice in the history.
func (h *InvoiceHandler) ConfirmPayment(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var in models.PaymentConfirmation
	if !bindJSON(c, &in) {
		return
	}
	invoice, err := h.service.ConfirmPayment(c.Request.Context(), c.Param("id"), in.Receipt, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Payment confirmed successfully", invoice)
}

func (h *InvoiceHandler) PendingPayments(c *gin.Context) {
	invoices, err := h.service.PendingPayments(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Pending payments retrieved successfully", invoices)
}

package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the billable services and the clinic expenses.
type CatalogHandler struct {
	service *services.CatalogService
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var service models.Service
	if !bindJSON(c, &service) {
		return
	}
	created, err := h.service.CreateService(c.Request.Context(), service)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Service created successfully", created)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	list, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	if len(list) == 0 {
		middlewares.RespondJSON(c, http.StatusOK, "No services available", []models.Service{})
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Services retrieved successfully", list)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var patch models.ServicePatch
	if !bindJSON(c, &patch) {
		return
	}
	service, err := h.service.UpdateService(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Service updated successfully", service)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	respondDeleted(c, h.service.DeleteService(c.Request.Context(), c.Param("id")), "Service deleted")
}

func (h *CatalogHandler) CreateExpense(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var expense models.Expense
	if !bindJSON(c, &expense) {
		return
	}
	created, err := h.service.CreateExpense(c.Request.Context(), expense, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Expense recorded successfully", created)
}

func (h *CatalogHandler) ListExpenses(c *gin.Context) {
	list, err := h.service.ListExpenses(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	if len(list) == 0 {
		middlewares.RespondJSON(c, http.StatusOK, "No expenses available", []models.Expense{})
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Expenses retrieved successfully", list)
}

func (h *CatalogHandler) DeleteExpense(c *gin.Context) {
	respondDeleted(c, h.service.DeleteExpense(c.Request.Context(), c.Param("id")), "Expense deleted")
}

package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *services.OrderService
}

func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// AssignOrder creates the patient's order or moves the existing one to a new
// doctor. It answers 201 on creation and 200 on update.
func (h *OrderHandler) AssignOrder(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var in models.OrderInput
	if !bindJSON(c, &in) {
		return
	}
	order, created, err := h.service.AssignOrder(c.Request.Context(), c.Param("patient_id"), in, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	if created {
		middlewares.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Order updated successfully", order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var patch models.OrderPatch
	if !bindJSON(c, &patch) {
		return
	}
	order, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Order updated successfully", order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	respondDeleted(c, h.service.Delete(c.Request.Context(), c.Param("id")), "Order deleted")
}

func (h *OrderHandler) ActiveOrders(c *gin.Context) {
	groups, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Active orders retrieved successfully", groups)
}

// MyActiveOrders lists the active orders assigned to the calling doctor.
func (h *OrderHandler) MyActiveOrders(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	groups, err := h.service.ListActiveForDoctor(c.Request.Context(), identity.ID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Active orders retrieved successfully", groups)
}

func (h *OrderHandler) CountActiveOrders(c *gin.Context) {
	count, err := h.service.CountActive(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Active orders counted successfully", gin.H{"count": count})
}

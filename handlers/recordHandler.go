package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RecordHandler serves the records a patient owns. Creation and listing are
// scoped to /patients/:patient_id, the rest is addressed by record id.
type RecordHandler struct {
	service *services.RecordService
}

func NewRecordHandler(service *services.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func (h *RecordHandler) CreateHealthInfo(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var info models.HealthInfo
	if !bindJSON(c, &info) {
		return
	}
	created, err := h.service.CreateHealthInfo(c.Request.Context(), c.Param("patient_id"), info, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Health info created successfully", created)
}

func (h *RecordHandler) GetPatientHealthInfo(c *gin.Context) {
	list, err := h.service.ListHealthInfo(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	respondList(c, list, "Health info retrieved successfully", "health info")
}

func (h *RecordHandler) GetHealthInfo(c *gin.Context) {
	info, err := h.service.GetHealthInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Health info retrieved successfully", info)
}

func (h *RecordHandler) UpdateHealthInfo(c *gin.Context) {
	patch, ok := rawBody(c)
	if !ok {
		return
	}
	info, err := h.service.UpdateHealthInfo(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Health info updated successfully", info)
}

func (h *RecordHandler) DeleteHealthInfo(c *gin.Context) {
	respondDeleted(c, h.service.DeleteHealthInfo(c.Request.Context(), c.Param("id")), "Health info deleted")
}

func (h *RecordHandler) CreateImage(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var image models.Image
	if !bindJSON(c, &image) {
		return
	}
	created, err := h.service.CreateImage(c.Request.Context(), c.Param("patient_id"), image, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Image created successfully", created)
}

func (h *RecordHandler) GetPatientImages(c *gin.Context) {
	list, err := h.service.ListImages(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	respondList(c, list, "Images retrieved successfully", "images")
}

func (h *RecordHandler) GetImage(c *gin.Context) {
	image, err := h.service.GetImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Image retrieved successfully", image)
}

func (h *RecordHandler) UpdateImage(c *gin.Context) {
	patch, ok := rawBody(c)
	if !ok {
		return
	}
	image, err := h.service.UpdateImage(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Image updated successfully", image)
}

func (h *RecordHandler) DeleteImage(c *gin.Context) {
	respondDeleted(c, h.service.DeleteImage(c.Request.Context(), c.Param("id")), "Image deleted")
}

func (h *RecordHandler) CreateCard(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var card models.Card
	if !bindJSON(c, &card) {
		return
	}
	created, err := h.service.CreateCard(c.Request.Context(), c.Param("patient_id"), card, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Card payment recorded successfully", created)
}

func (h *RecordHandler) GetPatientCards(c *gin.Context) {
	list, err := h.service.ListCards(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	respondList(c, list, "Cards retrieved successfully", "cards")
}

func (h *RecordHandler) GetCard(c *gin.Context) {
	card, err := h.service.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Card retrieved successfully", card)
}

func (h *RecordHandler) UpdateCard(c *gin.Context) {
	patch, ok := rawBody(c)
	if !ok {
		return
	}
	card, err := h.service.UpdateCard(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Card updated successfully", card)
}

func (h *RecordHandler) DeleteCard(c *gin.Context) {
	respondDeleted(c, h.service.DeleteCard(c.Request.Context(), c.Param("id")), "Card deleted")
}

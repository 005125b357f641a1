package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *RecordHandler) CreateMedicalFinding(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var finding models.MedicalFinding
	if !bindJSON(c, &finding) {
		return
	}
	created, err := h.service.CreateMedicalFinding(c.Request.Context(), c.Param("patient_id"), finding, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Medical finding created successfully", created)
}

func (h *RecordHandler) GetPatientMedicalFindings(c *gin.Context) {
	list, err := h.service.ListMedicalFindings(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	respondList(c, list, "Medical findings retrieved successfully", "medical findings")
}

func (h *RecordHandler) GetMedicalFinding(c *gin.Context) {
	finding, err := h.service.GetMedicalFinding(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Medical finding retrieved successfully", finding)
}

func (h *RecordHandler) UpdateMedicalFinding(c *gin.Context) {
	patch, ok := rawBody(c)
	if !ok {
		return
	}
	finding, err := h.service.UpdateMedicalFinding(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Medical finding updated successfully", finding)
}

func (h *RecordHandler) DeleteMedicalFinding(c *gin.Context) {
	respondDeleted(c, h.service.DeleteMedicalFinding(c.Request.Context(), c.Param("id")), "Medical finding deleted")
}

// RecentMedicalFindings answers the caller's findings of the last three days.
func (h *RecordHandler) RecentMedicalFindings(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	groups, err := h.service.RecentFindings(c.Request.Context(), identity.ID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Recent medical findings retrieved successfully", groups)
}

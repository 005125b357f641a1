package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var patient models.Patient
	if !bindJSON(c, &patient) {
		return
	}
	created, err := h.service.Register(c.Request.Context(), &patient, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Patient created successfully", created)
}

// GetPatientByID answers the patient with the ids of every record it owns.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	record, err := h.service.GetRecord(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Patient retrieved successfully", record)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patch, ok := rawBody(c)
	if !ok {
		return
	}
	patient, err := h.service.Update(c.Request.Context(), c.Param("patient_id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Patient updated successfully", patient)
}

// DeletePatient removes the patient together with everything it owns.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("patient_id"))
	respondDeleted(c, err, "Patient and all related records deleted")
}

func (h *PatientHandler) SearchPatients(c *gin.Context) {
	patients, err := h.service.Search(c.Request.Context(), c.Query("cardno"), c.Query("phoneNumber"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Patients found", patients)
}

func (h *PatientHandler) FilterPatients(c *gin.Context) {
	var req models.PatientFilterRequest
	if !bindJSON(c, &req) {
		return
	}
	patients, err := h.service.Filter(c.Request.Context(), req)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) RecentPatients(c *gin.Context) {
	patients, err := h.service.Recent(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Recent patients retrieved successfully", patients)
}

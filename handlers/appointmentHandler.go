package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/utils"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *RecordHandler) CreateAppointment(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	var in models.AppointmentInput
	if !bindJSON(c, &in) {
		return
	}
	appointment, err := h.service.CreateAppointment(c.Request.Context(), c.Param("patient_id"), in, identity.Ref())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *RecordHandler) GetPatientAppointments(c *gin.Context) {
	list, err := h.service.ListAppointments(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	respondList(c, list, "Appointments retrieved successfully", "appointments")
}

func (h *RecordHandler) GetAppointment(c *gin.Context) {
	appointment, err := h.service.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *RecordHandler) UpdateAppointment(c *gin.Context) {
	var patch models.AppointmentPatch
	if !bindJSON(c, &patch) {
		return
	}
	appointment, err := h.service.UpdateAppointment(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *RecordHandler) DeleteAppointment(c *gin.Context) {
	respondDeleted(c, h.service.DeleteAppointment(c.Request.Context(), c.Param("id")), "Appointment deleted")
}

// TodayAppointments lists today's appointments that are still scheduled.
func (h *RecordHandler) TodayAppointments(c *gin.Context) {
	h.scheduledOn(c, time.Now())
}

// AppointmentsOnDay lists the scheduled appointments of the day in startDate.
// An empty body means today.
func (h *RecordHandler) AppointmentsOnDay(c *gin.Context) {
	var req models.DateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middlewares.BadRequest(c, "Invalid request body")
		return
	}
	day := time.Now()
	if req.StartDate != "" {
		parsed, err := utils.ParseDay(req.StartDate)
		if err != nil {
			middlewares.BadRequest(c, err.Error())
			return
		}
		day = parsed
	}
	h.scheduledOn(c, day)
}

func (h *RecordHandler) scheduledOn(c *gin.Context, day time.Time) {
	appointments, err := h.service.ScheduledOn(c.Request.Context(), day)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Appointments retrieved successfully", appointments)
}

package middlewares

import (
	"DentalClinic/services"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHttpError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{services.NewValidationError(errors.New("firstName: cannot be blank.")), http.StatusBadRequest, "firstName: cannot be blank."},
		{services.NewNotFoundError("Patient not found"), http.StatusNotFound, "Patient not found"},
		{services.NewConflictError("Patient with this card number already exists"), http.StatusConflict, "Patient with this card number already exists"},
		{services.NewUnauthorizedError("Invalid username or password"), http.StatusUnauthorized, "Invalid username or password"},
		{services.NewForbiddenError("Forbidden"), http.StatusForbidden, "Forbidden"},
		{services.NewInternalError("failed to load patient", errors.New("connection refused")), http.StatusInternalServerError, "Internal server error"},
		{errors.New("plain"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HttpError(c, tt.err)

		if w.Code != tt.status {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.status, w.Code)
		}
		var resp Response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Success || resp.Message != tt.message {
			t.Errorf("%v: unexpected envelope %+v", tt.err, resp)
		}
	}
}

func TestRespondJSON_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondJSON(c, http.StatusCreated, "Patient created successfully", map[string]string{"id": "p-1"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var resp struct {
		Message string            `json:"message"`
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data["id"] != "p-1" {
		t.Errorf("unexpected envelope %+v", resp)
	}
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreatePatient_DuplicateCardNumber(t *testing.T) {
	s := newTestServer()
	s.registerPatient(t, "C-300")

	w, env := s.do(t, http.MethodPost, "/patients", map[string]interface{}{
		"cardNumber": "C-300",
		"firstName":  "Baraka",
		"age":        41,
		"sex":        "male",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if env.Success {
		t.Error("expected success to be false")
	}
}

func TestCreatePatient_MalformedBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetPatientByID_NotFound(t *testing.T) {
	s := newTestServer()

	w, env := s.do(t, http.MethodGet, "/patients/missing", nil)
	if w.Code != http.StatusNotFound || env.Message != "Patient not found" {
		t.Fatalf("expected 404 Patient not found, got %d %q", w.Code, env.Message)
	}
}

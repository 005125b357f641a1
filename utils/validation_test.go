package utils

import (
	"DentalClinic/models"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidatePatient(t *testing.T) {
	valid := models.Patient{CardNumber: "C-1", FirstName: "Neema", Age: 30, Sex: "female"}
	if err := ValidatePatient(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.Sex = "other"
	if err := ValidatePatient(bad); err == nil || !strings.Contains(err.Error(), "sex") {
		t.Errorf("expected sex error, got %v", err)
	}

	bad = valid
	bad.CardNumber = ""
	if err := ValidatePatient(bad); err == nil || !strings.Contains(err.Error(), "cardNumber") {
		t.Errorf("expected cardNumber error, got %v", err)
	}
}

func TestValidateOrderStatus(t *testing.T) {
	if err := ValidateOrderStatus("Active"); err != nil {
		t.Errorf("Active should pass: %v", err)
	}
	if err := ValidateOrderStatus("Done"); err == nil {
		t.Error("expected Done to be rejected")
	}
}

func TestValidateAppointmentInput(t *testing.T) {
	in := models.AppointmentInput{AppointmentDate: "2024-06-01", AppointmentTime: "10:00", Status: "Scheduled", DoctorID: "d1"}
	if err := ValidateAppointmentInput(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in.AppointmentDate = "June first"
	if err := ValidateAppointmentInput(in); err == nil {
		t.Error("expected invalid date to fail")
	}
}

func TestValidateInvoiceInput(t *testing.T) {
	in := models.InvoiceInput{
		Status: "Pending",
		Items:  []models.InvoiceItemInput{{ServiceID: "s1", Quantity: 1, Price: decimal.NewFromInt(100)}},
	}
	if err := ValidateInvoiceInput(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in.Items[0].Quantity = 0
	err := ValidateInvoiceInput(in)
	if err == nil || !strings.Contains(err.Error(), "items[0]") {
		t.Errorf("expected item error, got %v", err)
	}

	in.Items = nil
	if err := ValidateInvoiceInput(in); err == nil {
		t.Error("expected empty items to fail")
	}
}

func TestValidateUserInput_Password(t *testing.T) {
	in := models.UserInput{Username: "amina", Password: "password", Phone: "0712345678", Role: "reception"}
	if err := ValidateUserInput(in); err == nil || !strings.Contains(err.Error(), "password") {
		t.Errorf("expected password complexity error, got %v", err)
	}
	in.Password = "Passw0rd!"
	if err := ValidateUserInput(in); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateCard(t *testing.T) {
	if err := ValidateCard(models.Card{CardPrice: decimal.Zero}); err == nil {
		t.Error("expected zero card price to fail")
	}
	if err := ValidateCard(models.Card{CardPrice: decimal.NewFromInt(50)}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPaymentReportText(t *testing.T) {
	report := &models.PaymentReport{Totals: models.ReportTotals{GrandTotal: decimal.NewFromInt(330)}}
	text := PaymentReportText("2024-06-01 to 2024-06-02", report)
	if !strings.Contains(text, "330.00") {
		t.Errorf("expected grand total in body, got %q", text)
	}
}

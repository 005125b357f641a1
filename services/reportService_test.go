package services

import (
	"DentalClinic/models"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(d int, hour int) time.Time {
	return time.Date(2024, 3, d, hour, 0, 0, 0, time.Local)
}

func historyEntry(id, creator string, amount int64, at time.Time) models.PaymentHistory {
	return models.PaymentHistory{
		ID: id,
		Invoice: models.InvoiceSnapshot{
			ID:      "inv-" + id,
			Amount:  decimal.NewFromInt(amount),
			Created: models.UserRef{ID: "u-" + creator, Username: creator},
		},
		CreatedAt: at,
	}
}

func newTestReportService(store *mockReportStore) (*ReportService, *fakeMailer) {
	mailer := &fakeMailer{}
	_, invoices := newMockSatellites()
	svc := NewReportService(store, newMockPatientStore(), newMockOrderStore(), invoices, newMockUserStore(doctor), mailer)
	return svc, mailer
}

func TestPaymentReport_RangeIsInclusive(t *testing.T) {
	store := &mockReportStore{history: []models.PaymentHistory{
		historyEntry("before", "mary", 10, day(9, 23)),
		historyEntry("first", "mary", 20, day(10, 0)),
		historyEntry("last", "mary", 30, time.Date(2024, 3, 11, 23, 59, 59, 0, time.Local)),
		historyEntry("after", "mary", 40, day(12, 0)),
	}}
	svc, _ := newTestReportService(store)

	report, err := svc.PaymentReport(context.Background(), models.PaymentReportRequest{StartDate: "2024-03-10", EndDate: "2024-03-11"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.History) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(report.History))
	}
	for _, h := range report.History {
		if h.ID != "first" && h.ID != "last" {
			t.Errorf("unexpected entry %s", h.ID)
		}
	}
}

func TestPaymentReport_Totals(t *testing.T) {
	store := &mockReportStore{
		history: []models.PaymentHistory{
			historyEntry("a", "mary", 100, day(10, 9)),
			historyEntry("b", "joy", 200, day(10, 11)),
		},
		cards:    []models.Card{{ID: "c", CardPrice: decimal.NewFromInt(50), CreatedAt: day(10, 10)}},
		expenses: []models.Expense{{ID: "e", Amount: decimal.NewFromInt(20), CreatedAt: day(10, 12)}},
	}
	svc, _ := newTestReportService(store)

	report, err := svc.PaymentReport(context.Background(), models.PaymentReportRequest{StartDate: "2024-03-10", EndDate: "2024-03-10"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	totals := report.Totals
	if !totals.TotalInvoiceAmount.Equal(decimal.NewFromInt(300)) ||
		!totals.TotalCardPrice.Equal(decimal.NewFromInt(50)) ||
		!totals.TotalExpenses.Equal(decimal.NewFromInt(20)) {
		t.Errorf("unexpected totals %+v", totals)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(330)) {
		t.Errorf("expected grand total 330, got %s", totals.GrandTotal)
	}
}

func TestPaymentReport_ByUsernameSkipsCardsAndExpenses(t *testing.T) {
	store := &mockReportStore{
		history: []models.PaymentHistory{
			historyEntry("a", "mary", 100, day(10, 9)),
			historyEntry("b", "joy", 200, day(10, 11)),
		},
		cards: []models.Card{{ID: "c", CardPrice: decimal.NewFromInt(50), CreatedAt: day(10, 10)}},
	}
	svc, _ := newTestReportService(store)

	report, err := svc.PaymentReport(context.Background(), models.PaymentReportRequest{Username: "mary"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.History) != 1 || report.History[0].ID != "a" {
		t.Errorf("expected only mary's entry, got %v", report.History)
	}
	if len(report.Cards) != 0 || !report.Totals.GrandTotal.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected invoices only, got %+v", report.Totals)
	}
}

func TestPaymentReport_Validation(t *testing.T) {
	svc, _ := newTestReportService(&mockReportStore{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.PaymentReportRequest
	}{
		{"no criteria", models.PaymentReportRequest{}},
		{"half a range", models.PaymentReportRequest{StartDate: "2024-03-10"}},
		{"reversed range", models.PaymentReportRequest{StartDate: "2024-03-11", EndDate: "2024-03-10"}},
		{"bad date", models.PaymentReportRequest{StartDate: "10/03/2024", EndDate: "2024-03-10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.PaymentReport(ctx, tt.req); KindOf(err) != KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestEmailPaymentReport(t *testing.T) {
	store := &mockReportStore{history: []models.PaymentHistory{historyEntry("a", "mary", 100, day(10, 9))}}
	svc, mailer := newTestReportService(store)
	ctx := context.Background()

	req := models.EmailReportRequest{
		PaymentReportRequest: models.PaymentReportRequest{StartDate: "2024-03-10", EndDate: "2024-03-10"},
		Recipient:            "owner@clinic.test",
	}
	if _, err := svc.EmailPaymentReport(ctx, req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mailer.to != "owner@clinic.test" || mailer.period != "2024-03-10 to 2024-03-10" {
		t.Errorf("unexpected mail %s %q", mailer.to, mailer.period)
	}

	req.Recipient = "not-an-email"
	if _, err := svc.EmailPaymentReport(ctx, req); KindOf(err) != KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestExpenseReport(t *testing.T) {
	store := &mockReportStore{expenses: []models.Expense{
		{ID: "in", Amount: decimal.NewFromInt(15), CreatedAt: day(10, 8)},
		{ID: "out", Amount: decimal.NewFromInt(99), CreatedAt: day(12, 8)},
	}}
	svc, _ := newTestReportService(store)

	report, err := svc.ExpenseReport(context.Background(), models.DateRangeRequest{StartDate: "2024-03-10", EndDate: "2024-03-11"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Expenses) != 1 || !report.Total.Equal(decimal.NewFromInt(15)) {
		t.Errorf("unexpected report %+v", report)
	}
}

func TestOutstandingBalance(t *testing.T) {
	invoices := []models.Invoice{
		{Status: models.InvoicePending, Balance: decimal.NewFromInt(120)},
		{Status: models.InvoiceCancel, Balance: decimal.NewFromInt(500)},
		{Status: models.InvoicePaid, Balance: decimal.NewFromInt(-5)},
	}
	if got := OutstandingBalance(invoices); !got.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected 120, got %s", got)
	}
}

func TestDashboard(t *testing.T) {
	svc, _ := newTestReportService(&mockReportStore{})

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.TotalPatients != 0 || len(d.Users) != 3 {
		t.Errorf("unexpected dashboard %+v", d)
	}
}

package services

import (
	"DentalClinic/models"
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

var scaling = models.Service{ID: "s-1", Name: "Scaling", Price: decimal.NewFromInt(100)}

func newTestInvoiceService(t *testing.T) (*InvoiceService, *mockInvoiceStore) {
	t.Helper()
	patients := newMockPatientStore()
	_ = patients.Create(context.Background(), &models.Patient{ID: "p-1", CardNumber: "C-1", FirstName: "Amani"})
	_, invoices := newMockSatellites()
	svc := NewInvoiceService(patients, invoices, newMockServiceStore(scaling))
	svc.now = stepClock(testStart)
	return svc, invoices
}

func invoiceInput(amount int64) models.InvoiceInput {
	return models.InvoiceInput{
		Items: []models.InvoiceItemInput{
			{ServiceID: scaling.ID, Quantity: 2},
			{ServiceID: scaling.ID, Quantity: 1, Price: decimal.NewFromInt(50)},
		},
		CurrentPayment: decimal.NewFromInt(amount),
		Status:         models.InvoicePending,
	}
}

func TestCreateInvoice_DerivedTotals(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	invoice, err := svc.CreateInvoice(context.Background(), "p-1", invoiceInput(100), receptionist)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !invoice.TotalAmount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected total 250, got %s", invoice.TotalAmount)
	}
	if !invoice.Balance.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected balance 250 before confirmation, got %s", invoice.Balance)
	}
	if invoice.Items[0].Service.Service != "Scaling" {
		t.Errorf("expected service snapshot, got %v", invoice.Items[0].Service)
	}
	if invoice.Patient.CardNumber != "C-1" {
		t.Errorf("expected customer snapshot, got %v", invoice.Patient)
	}
}

func TestCreateInvoice_UnknownService(t *testing.T) {
	svc, _ := newTestInvoiceService(t)

	in := invoiceInput(0)
	in.Items[0].ServiceID = "s-9"
	if _, err := svc.CreateInvoice(context.Background(), "p-1", in, receptionist); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConfirmPayment(t *testing.T) {
	svc, invoices := newTestInvoiceService(t)
	ctx := context.Background()
	cashier := models.UserRef{ID: "u-cash", Username: "joy"}

	invoice, _ := svc.CreateInvoice(ctx, "p-1", invoiceInput(250), receptionist)
	confirmed, err := svc.ConfirmPayment(ctx, invoice.ID, true, cashier)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if confirmed.Status != models.InvoicePaid {
		t.Errorf("expected a fully paid invoice, got %s", confirmed.Status)
	}
	if !confirmed.Balance.IsZero() {
		t.Errorf("expected zero balance, got %s", confirmed.Balance)
	}
	if len(invoices.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(invoices.history))
	}
	entry := invoices.history[0]
	if entry.Invoice.Created != receptionist || entry.CreatedBy != cashier || !entry.Invoice.Receipt {
		t.Errorf("unexpected history entry %+v", entry)
	}

	if _, err := svc.ConfirmPayment(ctx, invoice.ID, true, cashier); KindOf(err) != KindValidation {
		t.Errorf("expected validation error on a second confirmation, got %v", err)
	}
}

func TestConfirmPayment_Partial(t *testing.T) {
	svc, _ := newTestInvoiceService(t)
	ctx := context.Background()

	invoice, _ := svc.CreateInvoice(ctx, "p-1", invoiceInput(100), receptionist)
	confirmed, err := svc.ConfirmPayment(ctx, invoice.ID, false, receptionist)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if confirmed.Status != models.InvoicePending {
		t.Errorf("expected invoice to stay pending, got %s", confirmed.Status)
	}
	if !confirmed.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected balance 150, got %s", confirmed.Balance)
	}
}

func TestPendingPayments(t *testing.T) {
	svc, _ := newTestInvoiceService(t)
	ctx := context.Background()

	_, _ = svc.CreateInvoice(ctx, "p-1", invoiceInput(0), receptionist)
	pending, _ := svc.CreateInvoice(ctx, "p-1", invoiceInput(40), receptionist)

	list, err := svc.PendingPayments(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 1 || list[0].ID != pending.ID {
		t.Fatalf("expected only the invoice with an amount due, got %v", list)
	}
}

func TestUpdateInvoice(t *testing.T) {
	svc, _ := newTestInvoiceService(t)
	ctx := context.Background()
	invoice, _ := svc.CreateInvoice(ctx, "p-1", invoiceInput(0), receptionist)

	bad := "Refunded"
	if _, err := svc.UpdateInvoice(ctx, invoice.ID, models.InvoicePatch{Status: &bad}); KindOf(err) != KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	amount := decimal.NewFromInt(60)
	updated, err := svc.UpdateInvoice(ctx, invoice.ID, models.InvoicePatch{CurrentPayment: &amount})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated.CurrentPayment.Amount.Equal(amount) || updated.CurrentPayment.Confirmed {
		t.Errorf("expected a new unconfirmed payment of 60, got %+v", updated.CurrentPayment)
	}
}

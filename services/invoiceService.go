package services

import (
	"DentalClinic/models"
	"DentalClinic/repositories"
	"DentalClinic/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvoiceService bills patients against the service catalog and confirms
// the payments taken at the desk.
type InvoiceService struct {
	patients PatientStore
	invoices InvoiceStore
	catalog  ServiceStore
	now      func() time.Time
}

func NewInvoiceService(patients PatientStore, invoices InvoiceStore, catalog ServiceStore) *InvoiceService {
	return &InvoiceService{patients: patients, invoices: invoices, catalog: catalog, now: time.Now}
}

// CreateInvoice snapshots each billed service. An item without a price is
// billed at the catalog price.
func (s *InvoiceService) CreateInvoice(ctx context.Context, patientID string, in models.InvoiceInput, creator models.UserRef) (*models.Invoice, error) {
	if err := utils.ValidateInvoiceInput(in); err != nil {
		return nil, NewValidationError(err)
	}
	patient, err := loadPatient(ctx, s.patients, patientID)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ID:             uuid.New().String(),
		Patient:        models.NewPatientRef(patient),
		CurrentPayment: models.Payment{Amount: in.CurrentPayment},
		Status:         in.Status,
		CreatedBy:      creator,
	}
	for _, item := range in.Items {
		service, err := s.catalog.GetByID(ctx, item.ServiceID)
		if err != nil {
			return nil, NewInternalError("failed to load service", err)
		}
		if service == nil {
			return nil, NewNotFoundError(fmt.Sprintf("Service %s not found", item.ServiceID))
		}
		price := item.Price
		if price.IsZero() {
			price = service.Price
		}
		invoice.Items = append(invoice.Items, models.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoice.ID,
			Service:     models.ServiceRef{ID: service.ID, Service: service.Name},
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       price,
		})
	}

	now := s.now()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, NewInternalError("failed to create invoice", err)
	}
	invoice.Payments = []models.PaymentHistory{}
	invoice.ComputeTotals()
	return invoice, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, patientID string) ([]models.Invoice, error) {
	return listForPatient[models.Invoice](ctx, s.patients, s.invoices, patientID, "invoices")
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	return getRecord[models.Invoice](ctx, s.invoices, id, "Invoice")
}

// UpdateInvoice changes the status, the confirm flag or the pending amount.
// A new amount starts a new unconfirmed payment.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, patch models.InvoicePatch) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil {
		if err := utils.ValidateInvoiceStatus(*patch.Status); err != nil {
			return nil, NewValidationError(fmt.Errorf("status: %w", err))
		}
		invoice.Status = *patch.Status
	}
	if patch.Confirm != nil {
		invoice.Confirm = *patch.Confirm
	}
	if patch.CurrentPayment != nil {
		if patch.CurrentPayment.IsNegative() {
			return nil, NewValidationError(fmt.Errorf("currentPayment: %w", utils.ErrNegative))
		}
		invoice.CurrentPayment = models.Payment{Amount: *patch.CurrentPayment}
	}

	invoice.UpdatedAt = s.now()
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, NewInternalError("failed to update invoice", err)
	}
	invoice.ComputeTotals()
	return invoice, nil
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	return deleteRecord[models.Invoice](ctx, s.invoices, id, "Invoice")
}

// ConfirmPayment moves the pending payment into the payment history. The
// invoice is marked Paid once nothing is left to pay.
func (s *InvoiceService) ConfirmPayment(ctx context.Context, id string, receipt bool, confirmer models.UserRef) (*models.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.CurrentPayment.Confirmed || !invoice.CurrentPayment.Amount.IsPositive() {
		return nil, NewValidationError(errors.New("no pending payment to confirm"))
	}

	now := s.now()
	entry := &models.PaymentHistory{
		ID: uuid.New().String(),
		Invoice: models.InvoiceSnapshot{
			ID:           invoice.ID,
			Amount:       invoice.CurrentPayment.Amount,
			Receipt:      receipt,
			CustomerName: invoice.Patient,
			Created:      invoice.CreatedBy,
		},
		CreatedBy: confirmer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	invoice.CurrentPayment.Confirmed = true
	invoice.CurrentPayment.Receipt = receipt
	invoice.Confirm = true
	invoice.Payments = append(invoice.Payments, *entry)
	invoice.ComputeTotals()
	if !invoice.Balance.IsPositive() {
		invoice.Status = models.InvoicePaid
	}
	invoice.UpdatedAt = now

	if err := s.invoices.ConfirmPayment(ctx, invoice, entry); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Payment already confirmed")
		}
		return nil, NewInternalError("failed to confirm payment", err)
	}
	return invoice, nil
}

// PendingPayments lists invoices whose current payment awaits confirmation.
func (s *InvoiceService) PendingPayments(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.invoices.ListPendingConfirmation(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list pending payments", err)
	}
	return invoices, nil
}

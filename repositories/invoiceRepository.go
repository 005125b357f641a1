package repositories

import (
	"DentalClinic/cache"
	"DentalClinic/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceRepository adds payment history to the generic satellite store.
// Totals are recomputed from items and history every time an invoice is read.
type InvoiceRepository struct {
	*SatelliteRepository[models.Invoice]
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB, cache *cache.Cache) *InvoiceRepository {
	return &InvoiceRepository{
		SatelliteRepository: NewSatelliteRepository[models.Invoice](db, cache, "invoice", "Items"),
		db:                  db,
	}
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := r.SatelliteRepository.GetByID(ctx, id)
	if err != nil || invoice == nil {
		return invoice, err
	}
	invoices := []models.Invoice{*invoice}
	if err := r.attachPayments(ctx, invoices); err != nil {
		return nil, err
	}
	return &invoices[0], nil
}

func (r *InvoiceRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Invoice, error) {
	invoices, err := r.SatelliteRepository.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := r.attachPayments(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListAll returns every invoice with derived totals.
func (r *InvoiceRepository) ListAll(ctx context.Context) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if err := r.attachPayments(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListPendingConfirmation returns invoices with an unconfirmed current payment.
func (r *InvoiceRepository) ListPendingConfirmation(ctx context.Context) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("current_payment_confirmed = ? AND current_payment_amount > 0", false).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invoices: %w", err)
	}
	if err := r.attachPayments(ctx, invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ConfirmPayment stores the history entry and the updated invoice together.
func (r *InvoiceRepository) ConfirmPayment(ctx context.Context, invoice *models.Invoice, entry *models.PaymentHistory) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// row lock so two cashiers cannot confirm the same payment
		var current models.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, "id = ?", invoice.ID).Error; err != nil {
			return err
		}
		if current.CurrentPayment.Confirmed {
			return fmt.Errorf("%w: payment already confirmed", ErrDuplicate)
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(invoice).Error
	})
	if err != nil {
		return fmt.Errorf("failed to confirm payment: %w", translateError(err))
	}
	r.invalidate(ctx, invoice.ID, invoice.Patient.ID)
	return nil
}

func (r *InvoiceRepository) attachPayments(ctx context.Context, invoices []models.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	ids := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}

	var history []models.PaymentHistory
	err := r.db.WithContext(ctx).
		Where("invoice_id IN ?", ids).
		Order("created_at ASC").
		Find(&history).Error
	if err != nil {
		return fmt.Errorf("failed to load payment history: %w", err)
	}

	byInvoice := make(map[string][]models.PaymentHistory, len(invoices))
	for _, h := range history {
		byInvoice[h.Invoice.ID] = append(byInvoice[h.Invoice.ID], h)
	}
	for i := range invoices {
		invoices[i].Payments = byInvoice[invoices[i].ID]
		invoices[i].ComputeTotals()
	}
	return nil
}

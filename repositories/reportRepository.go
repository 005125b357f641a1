package repositories

import (
	"DentalClinic/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ReportRepository reads the financial tables the payment report is built from.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// PaymentHistory returns the history entries matching filter, newest first.
func (r *ReportRepository) PaymentHistory(ctx context.Context, filter models.ReportFilter) ([]models.PaymentHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := r.db.WithContext(ctx)
	if filter.Username != "" {
		q = q.Where("invoice_created_username = ?", filter.Username)
	}
	if filter.HasRange() {
		q = q.Where("created_at BETWEEN ? AND ?", *filter.From, *filter.To)
	}
	if filter.Receipt != nil {
		q = q.Where("invoice_receipt = ?", *filter.Receipt)
	}

	var history []models.PaymentHistory
	if err := q.Order("created_at DESC").Find(&history).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment history: %w", err)
	}
	return history, nil
}

// Cards returns the card fees taken inside the inclusive window.
func (r *ReportRepository) Cards(ctx context.Context, from, to time.Time) ([]models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var cards []models.Card
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Expenses returns the expenses recorded inside the inclusive window.
func (r *ReportRepository) Expenses(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

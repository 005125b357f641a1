package repositories

import (
	"DentalClinic/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var expenses []models.Expense
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete expense: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

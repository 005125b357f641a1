package repositories

import (
	"DentalClinic/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// OrderRepository keeps the single current order of each patient.
// orders.patient_id is unique, so a patient can never hold two rows.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", translateError(err))
	}
	return nil
}

func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", translateError(err))
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByPatient returns the patient's current order or nil.
func (r *OrderRepository) FindByPatient(ctx context.Context, patientID string) (*models.Order, error) {
	return r.first(ctx, "patient_id = ?", patientID)
}

func (r *OrderRepository) first(ctx context.Context, query string, arg string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var order models.Order
	if err := r.db.WithContext(ctx).Where(query, arg).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete order: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListActive returns active orders, optionally only those of one doctor.
func (r *OrderRepository) ListActive(ctx context.Context, doctorID string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Where("status = ?", models.OrderActive)
	if doctorID != "" {
		q = q.Where("doctor_id = ?", doctorID)
	}
	var orders []models.Order
	if err := q.Order("updated_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list active orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", models.OrderActive).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active orders: %w", err)
	}
	return count, nil
}

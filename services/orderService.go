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

// OrderService keeps at most one current order per patient.
type OrderService struct {
	patients PatientStore
	users    UserStore
	orders   OrderStore
	locker   Locker
	now      func() time.Time
}

func NewOrderService(patients PatientStore, users UserStore, orders OrderStore, locker Locker) *OrderService {
	return &OrderService{patients: patients, users: users, orders: orders, locker: locker, now: time.Now}
}

// AssignOrder points the patient's current order at doctorID with status,
// creating the order the first time. created reports which case happened.
func (s *OrderService) AssignOrder(ctx context.Context, patientID string, in models.OrderInput, creator models.UserRef) (order *models.Order, created bool, err error) {
	if err := utils.ValidateOrderInput(in); err != nil {
		return nil, false, NewValidationError(err)
	}
	if _, err := loadPatient(ctx, s.patients, patientID); err != nil {
		return nil, false, err
	}
	doctor, err := s.loadDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, false, err
	}

	release, err := s.locker.Acquire(ctx, fmt.Sprintf("order_lock:%s", patientID))
	if err != nil {
		return nil, false, NewInternalError("failed to assign order", err)
	}
	defer release()

	current, err := s.orders.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, false, NewInternalError("failed to assign order", err)
	}

	now := s.now()
	if current != nil {
		current.AssignedDoctor = models.NewUserRef(doctor)
		current.Status = in.Status
		current.UpdatedAt = now
		if err := s.orders.Save(ctx, current); err != nil {
			return nil, false, NewInternalError("failed to update order", err)
		}
		return current, false, nil
	}

	order = &models.Order{
		ID:             uuid.New().String(),
		PatientID:      patientID,
		AssignedDoctor: models.NewUserRef(doctor),
		Status:         in.Status,
		CreatedBy:      creator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, false, NewConflictError("Patient already has an order")
		}
		return nil, false, NewInternalError("failed to create order", err)
	}
	return order, true, nil
}

func (s *OrderService) loadDoctor(ctx context.Context, id string) (*models.User, error) {
	doctor, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load doctor", err)
	}
	if doctor == nil {
		return nil, NewNotFoundError("Doctor not found")
	}
	return doctor, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load order", err)
	}
	if order == nil {
		return nil, NewNotFoundError("Order not found")
	}
	return order, nil
}

// Update changes the doctor and/or status of an order by its id.
func (s *OrderService) Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil {
		if err := utils.ValidateOrderStatus(*patch.Status); err != nil {
			return nil, NewValidationError(fmt.Errorf("status: %w", err))
		}
		order.Status = *patch.Status
	}
	if patch.DoctorID != nil {
		doctor, err := s.loadDoctor(ctx, *patch.DoctorID)
		if err != nil {
			return nil, err
		}
		order.AssignedDoctor = models.NewUserRef(doctor)
	}

	order.UpdatedAt = s.now()
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, NewInternalError("failed to update order", err)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	deleted, err := s.orders.Delete(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete order", err)
	}
	if !deleted {
		return NewNotFoundError("Order not found")
	}
	return nil
}

// ListActive groups the active orders by patient.
func (s *OrderService) ListActive(ctx context.Context) ([]models.ActiveOrders, error) {
	return s.listActive(ctx, "")
}

// ListActiveForDoctor is ListActive restricted to one assigned doctor.
func (s *OrderService) ListActiveForDoctor(ctx context.Context, doctorID string) ([]models.ActiveOrders, error) {
	return s.listActive(ctx, doctorID)
}

func (s *OrderService) listActive(ctx context.Context, doctorID string) ([]models.ActiveOrders, error) {
	orders, err := s.orders.ListActive(ctx, doctorID)
	if err != nil {
		return nil, NewInternalError("failed to list active orders", err)
	}

	result := []models.ActiveOrders{}
	index := map[string]int{}
	for _, o := range orders {
		i, ok := index[o.PatientID]
		if !ok {
			patient, err := s.patients.GetByID(ctx, o.PatientID)
			if err != nil {
				return nil, NewInternalError("failed to list active orders", err)
			}
			if patient == nil {
				continue
			}
			i = len(result)
			index[o.PatientID] = i
			result = append(result, models.ActiveOrders{
				PatientID:  patient.ID,
				FirstName:  patient.FirstName,
				CardNumber: patient.CardNumber,
			})
		}
		result[i].Orders = append(result[i].Orders, o)
	}
	return result, nil
}

func (s *OrderService) CountActive(ctx context.Context) (int64, error) {
	count, err := s.orders.CountActive(ctx)
	if err != nil {
		return 0, NewInternalError("failed to count active orders", err)
	}
	return count, nil
}

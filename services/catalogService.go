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

// CatalogService maintains the clinic's price list and its expense book.
type CatalogService struct {
	services ServiceStore
	expenses ExpenseStore
	now      func() time.Time
}

func NewCatalogService(services ServiceStore, expenses ExpenseStore) *CatalogService {
	return &CatalogService{services: services, expenses: expenses, now: time.Now}
}

func (s *CatalogService) CreateService(ctx context.Context, service models.Service) (*models.Service, error) {
	if err := utils.ValidateService(service); err != nil {
		return nil, NewValidationError(err)
	}
	now := s.now()
	service.ID = uuid.New().String()
	service.CreatedAt = now
	service.UpdatedAt = now
	if err := s.services.Create(ctx, &service); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Service already exists")
		}
		return nil, NewInternalError("failed to create service", err)
	}
	return &service, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list services", err)
	}
	return services, nil
}

// UpdateService renames and/or reprices a service. Invoices keep the name
// they were billed with.
func (s *CatalogService) UpdateService(ctx context.Context, id string, patch models.ServicePatch) (*models.Service, error) {
	if patch.Name == nil && patch.Price == nil {
		return nil, NewValidationError(errors.New("service or price is required"))
	}
	service, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load service", err)
	}
	if service == nil {
		return nil, NewNotFoundError("Service not found")
	}
	if patch.Name != nil {
		service.Name = *patch.Name
	}
	if patch.Price != nil {
		service.Price = *patch.Price
	}
	if err := utils.ValidateService(*service); err != nil {
		return nil, NewValidationError(err)
	}

	service.UpdatedAt = s.now()
	if err := s.services.Save(ctx, service); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Service already exists")
		}
		return nil, NewInternalError("failed to update service", err)
	}
	return service, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	deleted, err := s.services.Delete(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete service", err)
	}
	if !deleted {
		return NewNotFoundError("Service not found")
	}
	return nil
}

func (s *CatalogService) CreateExpense(ctx context.Context, expense models.Expense, creator models.UserRef) (*models.Expense, error) {
	if err := utils.ValidateExpense(expense); err != nil {
		return nil, NewValidationError(err)
	}
	now := s.now()
	expense.ID = uuid.New().String()
	expense.CreatedBy = creator
	expense.CreatedAt = now
	expense.UpdatedAt = now
	if err := s.expenses.Create(ctx, &expense); err != nil {
		return nil, NewInternalError("failed to create expense", err)
	}
	return &expense, nil
}

func (s *CatalogService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list expenses", err)
	}
	return expenses, nil
}

func (s *CatalogService) DeleteExpense(ctx context.Context, id string) error {
	deleted, err := s.expenses.Delete(ctx, id)
	if err != nil {
		return NewInternalError(fmt.Sprintf("failed to delete expense %s", id), err)
	}
	if !deleted {
		return NewNotFoundError("Expense not found")
	}
	return nil
}

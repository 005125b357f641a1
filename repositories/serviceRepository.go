package repositories

import (
	"DentalClinic/cache"
	"DentalClinic/models"
	"DentalClinic/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	ServiceCacheExpiry = 24 * time.Hour
	servicesCacheKey   = "services_cache"
)

// ServiceRepository stores the clinic's price list.
type ServiceRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewServiceRepository(db *gorm.DB, cache *cache.Cache) *ServiceRepository {
	return &ServiceRepository{db: db, cache: cache}
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", translateError(err))
	}
	r.invalidate(ctx)
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

// List returns the catalog ordered by name.
func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var services []models.Service
	if found, err := r.cache.GetJSON(ctx, servicesCacheKey, &services); err != nil {
		utils.Logger.Debug().Err(err).Msg("cache read failed")
	} else if found {
		return services, nil
	}

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if err := r.cache.SetJSON(ctx, servicesCacheKey, services, ServiceCacheExpiry); err != nil {
		utils.Logger.Debug().Err(err).Msg("cache write failed")
	}
	return services, nil
}

func (r *ServiceRepository) Save(ctx context.Context, service *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(service).Error; err != nil {
		return fmt.Errorf("failed to update service: %w", translateError(err))
	}
	r.invalidate(ctx)
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete service: %w", res.Error)
	}
	r.invalidate(ctx)
	return res.RowsAffected > 0, nil
}

func (r *ServiceRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, servicesCacheKey); err != nil {
		utils.Logger.Debug().Err(err).Msg("cache invalidation failed")
	}
}

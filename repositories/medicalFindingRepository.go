package repositories

import (
	"DentalClinic/cache"
	"DentalClinic/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type MedicalFindingRepository struct {
	*SatelliteRepository[models.MedicalFinding]
	db *gorm.DB
}

func NewMedicalFindingRepository(db *gorm.DB, cache *cache.Cache) *MedicalFindingRepository {
	return &MedicalFindingRepository{
		SatelliteRepository: NewSatelliteRepository[models.MedicalFinding](db, cache, "medical_finding"),
		db:                  db,
	}
}

// ListByCreatorSince returns findings a user wrote since the given time, newest first.
func (r *MedicalFindingRepository) ListByCreatorSince(ctx context.Context, userID string, since time.Time) ([]models.MedicalFinding, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var findings []models.MedicalFinding
	err := r.db.WithContext(ctx).
		Where("created_by_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&findings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent medical findings: %w", err)
	}
	return findings, nil
}

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
	"gorm.io/gorm/clause"
)

const (
	SatelliteCacheExpiry = 7 * 24 * time.Hour
	queryTimeout         = 5 * time.Second
)

// SatelliteRepository stores one kind of patient-owned record. The owning
// patient lives in the record's patient_id column; there is no copy of the
// relationship on the patient row.
type SatelliteRepository[T models.Satellite] struct {
	db       *gorm.DB
	cache    *cache.Cache
	kind     string
	preloads []string
}

func NewSatelliteRepository[T models.Satellite](db *gorm.DB, cache *cache.Cache, kind string, preloads ...string) *SatelliteRepository[T] {
	return &SatelliteRepository[T]{db: db, cache: cache, kind: kind, preloads: preloads}
}

func (r *SatelliteRepository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *SatelliteRepository[T]) Create(ctx context.Context, record *T) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.kind, translateError(err))
	}
	r.invalidate(ctx, (*record).RecordID(), (*record).OwnerID())
	return nil
}

// GetByID returns nil, nil when the record does not exist.
func (r *SatelliteRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cacheKey := r.recordCacheKey(id)
	var record T
	if found, err := r.cache.GetJSON(ctx, cacheKey, &record); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache read failed")
	} else if found {
		return &record, nil
	}

	if err := r.query(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", r.kind, err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, record, SatelliteCacheExpiry); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache write failed")
	}
	return &record, nil
}

// ListByPatient returns the patient's records newest first.
func (r *SatelliteRepository[T]) ListByPatient(ctx context.Context, patientID string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cacheKey := r.listCacheKey(patientID)
	var records []T
	if found, err := r.cache.GetJSON(ctx, cacheKey, &records); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache read failed")
	} else if found {
		return records, nil
	}

	err := r.query(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.kind, err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, records, SatelliteCacheExpiry); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache write failed")
	}
	return records, nil
}

// ListIDsByPatient returns the identifiers of the patient's records oldest first.
func (r *SatelliteRepository[T]) ListIDsByPatient(ctx context.Context, patientID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var model T
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&model).
		Where("patient_id = ?", patientID).
		Order("created_at ASC").
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s ids: %w", r.kind, err)
	}
	return ids, nil
}

// Save writes every column of an existing record.
func (r *SatelliteRepository[T]) Save(ctx context.Context, record *T) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update %s: %w", r.kind, translateError(err))
	}
	r.invalidate(ctx, (*record).RecordID(), (*record).OwnerID())
	return nil
}

// Delete removes a record and its owned rows. It reports whether anything was deleted.
func (r *SatelliteRepository[T]) Delete(ctx context.Context, id string) (bool, error) {
	record, err := r.GetByID(ctx, id)
	if err != nil || record == nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(record).Error; err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", r.kind, err)
	}
	r.invalidate(ctx, id, (*record).OwnerID())
	return true, nil
}

func (r *SatelliteRepository[T]) invalidate(ctx context.Context, id, patientID string) {
	if err := r.cache.DeleteBatch(ctx, r.recordCacheKey(id), r.listCacheKey(patientID)); err != nil {
		utils.Logger.Debug().Err(err).Str("kind", r.kind).Msg("cache invalidation failed")
	}
}

func (r *SatelliteRepository[T]) recordCacheKey(id string) string {
	return fmt.Sprintf("%s_cache:%s", r.kind, id)
}

func (r *SatelliteRepository[T]) listCacheKey(patientID string) string {
	return fmt.Sprintf("%s_patient_cache:%s", r.kind, patientID)
}

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
	PatientCacheExpiry = 7 * 24 * time.Hour
	patientsCacheKey   = "patients_cache"
)

// cascadeTables lists the patient-owned tables removed with the patient, with
// the cache kind used by their SatelliteRepository. Cards and payment history
// are read by the payment report and outlive the patient.
var cascadeTables = []struct {
	table string
	kind  string
}{
	{"appointments", "appointment"},
	{"medical_findings", "medical_finding"},
	{"health_info", "health_info"},
	{"images", "image"},
	{"invoices", "invoice"},
}

type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", translateError(err))
	}
	r.invalidate(ctx, patient.ID)
	return nil
}

// GetByID returns nil, nil when the patient does not exist.
func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	var patient models.Patient
	if found, err := r.cache.GetJSON(ctx, cacheKey, &patient); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache read failed")
	} else if found {
		return &patient, nil
	}

	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, patient, PatientCacheExpiry); err != nil {
		utils.Logger.Debug().Err(err).Str("key", cacheKey).Msg("cache write failed")
	}
	return &patient, nil
}

// FindByCardNumber returns nil, nil when no patient holds the card number.
func (r *PatientRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var patient models.Patient
	if err := r.db.WithContext(ctx).Where("card_number = ?", cardNumber).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check card number: %w", err)
	}
	return &patient, nil
}

// GetAll returns every patient, newest first.
func (r *PatientRepository) GetAll(ctx context.Context) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var patients []models.Patient
	if found, err := r.cache.GetJSON(ctx, patientsCacheKey, &patients); err != nil {
		utils.Logger.Debug().Err(err).Msg("cache read failed")
	} else if found {
		return patients, nil
	}

	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	if err := r.cache.SetJSON(ctx, patientsCacheKey, patients, PatientCacheExpiry); err != nil {
		utils.Logger.Debug().Err(err).Msg("cache write failed")
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", translateError(err))
	}
	r.invalidate(ctx, patient.ID)
	return nil
}

// DeletePatientAndRelated removes the patient, its current order and the
// records in cascadeTables in one transaction. Cards and payment history stay.
func (r *PatientRepository) DeletePatientAndRelated(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var deleted bool
	keys := []string{r.getPatientCacheKey(id), patientsCacheKey}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoiceIDs := tx.Table("invoices").Select("id").Where("patient_id = ?", id)
		if err := tx.Where("invoice_id IN (?)", invoiceIDs).Delete(&models.InvoiceItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete invoice items: %w", err)
		}

		for _, sat := range cascadeTables {
			var ids []string
			if err := tx.Table(sat.table).Where("patient_id = ?", id).Pluck("id", &ids).Error; err != nil {
				return fmt.Errorf("failed to list %s: %w", sat.table, err)
			}
			if err := tx.Exec("DELETE FROM "+sat.table+" WHERE patient_id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", sat.table, err)
			}
			for _, satID := range ids {
				keys = append(keys, fmt.Sprintf("%s_cache:%s", sat.kind, satID))
			}
			keys = append(keys, fmt.Sprintf("%s_patient_cache:%s", sat.kind, id))
		}

		if err := tx.Where("patient_id = ?", id).Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}

		res := tx.Delete(&models.Patient{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete patient: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if err := r.cache.DeleteBatch(ctx, keys...); err != nil {
		utils.Logger.Debug().Err(err).Str("patient_id", id).Msg("cache invalidation failed")
	}
	return deleted, nil
}

// Search matches the exact card number and/or a phone number substring.
func (r *PatientRepository) Search(ctx context.Context, cardNumber, phone string) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := r.db.WithContext(ctx)
	if cardNumber != "" {
		q = q.Where("card_number = ?", cardNumber)
	}
	if phone != "" {
		q = q.Where("phone_number ILIKE ?", "%"+phone+"%")
	}
	var patients []models.Patient
	if err := q.Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

// Filter matches a case-insensitive first name substring and/or a creation
// window. A nil from skips the window.
func (r *PatientRepository) Filter(ctx context.Context, firstName string, from, to *time.Time) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := r.db.WithContext(ctx)
	if firstName != "" {
		q = q.Where("first_name ILIKE ?", "%"+firstName+"%")
	}
	if from != nil && to != nil {
		q = q.Where("created_at BETWEEN ? AND ?", *from, *to)
	}
	var patients []models.Patient
	if err := q.Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to filter patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) CreatedSince(ctx context.Context, since time.Time) ([]models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var patients []models.Patient
	if err := r.db.WithContext(ctx).Where("created_at >= ?", since).Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *PatientRepository) invalidate(ctx context.Context, id string) {
	if err := r.cache.DeleteBatch(ctx, r.getPatientCacheKey(id), patientsCacheKey); err != nil {
		utils.Logger.Debug().Err(err).Str("patient_id", id).Msg("cache invalidation failed")
	}
}

func (r *PatientRepository) getPatientCacheKey(patientID string) string {
	return fmt.Sprintf("patient_cache:%s", patientID)
}

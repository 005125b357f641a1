package repositories

import (
	"DentalClinic/cache"
	"DentalClinic/models"
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	*SatelliteRepository[models.Appointment]
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{
		SatelliteRepository: NewSatelliteRepository[models.Appointment](db, cache, "appointment"),
		db:                  db,
	}
}

// ListByDayAndStatus returns the appointments booked for day with the given status.
func (r *AppointmentRepository) ListByDayAndStatus(ctx context.Context, day time.Time, status string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("appointment_date = ? AND status = ?", datatypes.Date(day), status).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

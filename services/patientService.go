package services

import (
	"DentalClinic/models"
	"DentalClinic/repositories"
	"DentalClinic/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PatientService struct {
	patients   PatientStore
	satellites Satellites
	orders     OrderStore
	locker     Locker
	now        func() time.Time
}

func NewPatientService(patients PatientStore, satellites Satellites, orders OrderStore, locker Locker) *PatientService {
	return &PatientService{
		patients:   patients,
		satellites: satellites,
		orders:     orders,
		locker:     locker,
		now:        time.Now,
	}
}

// Register creates a patient. Card numbers are unique across the clinic.
func (s *PatientService) Register(ctx context.Context, patient *models.Patient, creator models.UserRef) (*models.Patient, error) {
	if err := utils.ValidatePatient(*patient); err != nil {
		return nil, NewValidationError(err)
	}

	release, err := s.locker.Acquire(ctx, fmt.Sprintf("patient_lock:%s", patient.CardNumber))
	if err != nil {
		return nil, NewInternalError("failed to register patient", err)
	}
	defer release()

	existing, err := s.patients.FindByCardNumber(ctx, patient.CardNumber)
	if err != nil {
		return nil, NewInternalError("failed to register patient", err)
	}
	if existing != nil {
		return nil, NewConflictError("Patient with this card number already exists")
	}

	now := s.now()
	patient.ID = uuid.New().String()
	patient.CreatedBy = creator
	patient.CreatedAt = now
	patient.UpdatedAt = now
	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Patient with this card number already exists")
		}
		return nil, NewInternalError("failed to register patient", err)
	}
	return patient, nil
}

// Get returns the patient or NotFound.
func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load patient", err)
	}
	if patient == nil {
		return nil, NewNotFoundError("Patient not found")
	}
	return patient, nil
}

// GetRecord returns the patient with the identifiers of everything it owns.
func (s *PatientService) GetRecord(ctx context.Context, id string) (*models.PatientRecord, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	record := &models.PatientRecord{Patient: *patient, Orders: []string{}}
	lists := []struct {
		dst *[]string
		ids func(context.Context, string) ([]string, error)
	}{
		{&record.MedicalFindings, s.satellites.MedicalFindings.ListIDsByPatient},
		{&record.HealthInfo, s.satellites.HealthInfo.ListIDsByPatient},
		{&record.Appointments, s.satellites.Appointments.ListIDsByPatient},
		{&record.Images, s.satellites.Images.ListIDsByPatient},
		{&record.Invoices, s.satellites.Invoices.ListIDsByPatient},
		{&record.Cards, s.satellites.Cards.ListIDsByPatient},
	}
	for _, l := range lists {
		ids, err := l.ids(ctx, id)
		if err != nil {
			return nil, NewInternalError("failed to load patient record", err)
		}
		*l.dst = ids
	}

	order, err := s.orders.FindByPatient(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load patient record", err)
	}
	if order != nil {
		record.CurrentOrderID = &order.ID
		record.Orders = []string{order.ID}
	}
	return record, nil
}

func (s *PatientService) List(ctx context.Context) ([]models.Patient, error) {
	patients, err := s.patients.GetAll(ctx)
	if err != nil {
		return nil, NewInternalError("failed to list patients", err)
	}
	return patients, nil
}

// Update merges the JSON patch into the stored patient. Snapshots already
// copied onto satellites keep the old values.
func (s *PatientService) Update(ctx context.Context, id string, patch []byte) (*models.Patient, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if err := json.Unmarshal(patch, &updated); err != nil {
		return nil, NewValidationError(fmt.Errorf("invalid request body: %w", err))
	}
	updated.ID = current.ID
	updated.CreatedBy = current.CreatedBy
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()

	if err := utils.ValidatePatient(updated); err != nil {
		return nil, NewValidationError(err)
	}
	if updated.CardNumber != current.CardNumber {
		other, err := s.patients.FindByCardNumber(ctx, updated.CardNumber)
		if err != nil {
			return nil, NewInternalError("failed to update patient", err)
		}
		if other != nil {
			return nil, NewConflictError("Patient with this card number already exists")
		}
	}

	if err := s.patients.Update(ctx, &updated); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, NewConflictError("Patient with this card number already exists")
		}
		return nil, NewInternalError("failed to update patient", err)
	}
	return &updated, nil
}

// Delete removes the patient with its order and every satellite.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	deleted, err := s.patients.DeletePatientAndRelated(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete patient", err)
	}
	if !deleted {
		return NewNotFoundError("Patient not found")
	}
	return nil
}

// Search finds patients by exact card number and/or phone substring.
func (s *PatientService) Search(ctx context.Context, cardNumber, phone string) ([]models.Patient, error) {
	if cardNumber == "" && phone == "" {
		return nil, NewValidationError(errors.New("cardno or phoneNumber is required"))
	}
	patients, err := s.patients.Search(ctx, cardNumber, phone)
	if err != nil {
		return nil, NewInternalError("failed to search patients", err)
	}
	if len(patients) == 0 {
		return nil, NewNotFoundError("No patient found")
	}
	return patients, nil
}

// Filter matches first name and/or the day the patient was registered.
func (s *PatientService) Filter(ctx context.Context, req models.PatientFilterRequest) ([]models.Patient, error) {
	var from, to *time.Time
	if req.Date != "" {
		day, err := utils.ParseDay(req.Date)
		if err != nil {
			return nil, NewValidationError(err)
		}
		end := utils.EndOfDay(day)
		from, to = &day, &end
	}
	patients, err := s.patients.Filter(ctx, req.FirstName, from, to)
	if err != nil {
		return nil, NewInternalError("failed to filter patients", err)
	}
	return patients, nil
}

// Recent returns the patients registered since the start of the day two days ago.
func (s *PatientService) Recent(ctx context.Context) ([]models.Patient, error) {
	since := utils.StartOfDay(s.now().AddDate(0, 0, -2))
	patients, err := s.patients.CreatedSince(ctx, since)
	if err != nil {
		return nil, NewInternalError("failed to list recent patients", err)
	}
	return patients, nil
}

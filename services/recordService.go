package services

import (
	"DentalClinic/models"
	"DentalClinic/utils"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const recentFindingsWindow = 3 * 24 * time.Hour

// RecordService manages the records a patient owns. Every record carries the
// owning patient's id and a snapshot of the patient taken at creation.
type RecordService struct {
	patients   PatientStore
	users      UserStore
	satellites Satellites
	now        func() time.Time
}

func NewRecordService(patients PatientStore, users UserStore, satellites Satellites) *RecordService {
	return &RecordService{patients: patients, users: users, satellites: satellites, now: time.Now}
}

// EmptyListMessage is answered when a patient has no records of a kind.
func EmptyListMessage(plural string) string {
	return fmt.Sprintf("No %s available for this patient", plural)
}

func loadPatient(ctx context.Context, patients PatientStore, id string) (*models.Patient, error) {
	patient, err := patients.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load patient", err)
	}
	if patient == nil {
		return nil, NewNotFoundError("Patient not found")
	}
	return patient, nil
}

func listForPatient[T models.Satellite](ctx context.Context, patients PatientStore, store SatelliteStore[T], patientID, plural string) ([]T, error) {
	if _, err := loadPatient(ctx, patients, patientID); err != nil {
		return nil, err
	}
	records, err := store.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, NewInternalError("failed to list "+plural, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func getRecord[T models.Satellite](ctx context.Context, store SatelliteStore[T], id, singular string) (*T, error) {
	record, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load "+singular, err)
	}
	if record == nil {
		return nil, NewNotFoundError(singular + " not found")
	}
	return record, nil
}

func deleteRecord[T models.Satellite](ctx context.Context, store SatelliteStore[T], id, singular string) error {
	deleted, err := store.Delete(ctx, id)
	if err != nil {
		return NewInternalError("failed to delete "+singular, err)
	}
	if !deleted {
		return NewNotFoundError(singular + " not found")
	}
	return nil
}

// patchRecord merges a JSON body into a stored record. restore puts back the
// fields a client may not change, validate runs on the merged record.
func patchRecord[T models.Satellite](ctx context.Context, store SatelliteStore[T], id, singular string, patch []byte,
	restore func(dst *T, orig T), validate func(T) error) (*T, error) {
	current, err := getRecord(ctx, store, id, singular)
	if err != nil {
		return nil, err
	}

	updated := *current
	if err := json.Unmarshal(patch, &updated); err != nil {
		return nil, NewValidationError(fmt.Errorf("invalid request body: %w", err))
	}
	restore(&updated, *current)
	if err := validate(updated); err != nil {
		return nil, NewValidationError(err)
	}

	if err := store.Save(ctx, &updated); err != nil {
		return nil, NewInternalError("failed to update "+singular, err)
	}
	return &updated, nil
}

func (s *RecordService) loadUser(ctx context.Context, id, label string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, NewInternalError("failed to load "+label, err)
	}
	if user == nil {
		return nil, NewNotFoundError(label + " not found")
	}
	return user, nil
}

// Appointments

func (s *RecordService) CreateAppointment(ctx context.Context, patientID string, in models.AppointmentInput, creator models.UserRef) (*models.Appointment, error) {
	if err := utils.ValidateAppointmentInput(in); err != nil {
		return nil, NewValidationError(err)
	}
	patient, err := loadPatient(ctx, s.patients, patientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.loadUser(ctx, in.DoctorID, "Doctor")
	if err != nil {
		return nil, err
	}
	day, _ := utils.ParseDay(in.AppointmentDate)

	now := s.now()
	appointment := &models.Appointment{
		ID:              uuid.New().String(),
		AppointmentDate: datatypes.Date(day),
		AppointmentTime: in.AppointmentTime,
		ReasonForVisit:  in.ReasonForVisit,
		Status:          in.Status,
		Doctor:          models.NewUserRef(doctor),
		Patient:         models.NewPatientRef(patient),
		CreatedBy:       creator,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.satellites.Appointments.Create(ctx, appointment); err != nil {
		return nil, NewInternalError("failed to create appointment", err)
	}
	return appointment, nil
}

func (s *RecordService) ListAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return listForPatient[models.Appointment](ctx, s.patients, s.satellites.Appointments, patientID, "appointments")
}

func (s *RecordService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return getRecord[models.Appointment](ctx, s.satellites.Appointments, id, "Appointment")
}

// UpdateAppointment changes the booking fields; doctor and patient snapshots stay.
func (s *RecordService) UpdateAppointment(ctx context.Context, id string, patch models.AppointmentPatch) (*models.Appointment, error) {
	appointment, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.AppointmentDate != nil {
		day, err := utils.ParseDay(*patch.AppointmentDate)
		if err != nil {
			return nil, NewValidationError(fmt.Errorf("appointmentDate: %w", err))
		}
		appointment.AppointmentDate = datatypes.Date(day)
	}
	if patch.AppointmentTime != nil {
		appointment.AppointmentTime = *patch.AppointmentTime
	}
	if patch.ReasonForVisit != nil {
		appointment.ReasonForVisit = *patch.ReasonForVisit
	}
	if patch.Status != nil {
		appointment.Status = *patch.Status
	}
	if err := utils.ValidateAppointment(*appointment); err != nil {
		return nil, NewValidationError(err)
	}

	appointment.UpdatedAt = s.now()
	if err := s.satellites.Appointments.Save(ctx, appointment); err != nil {
		return nil, NewInternalError("failed to update appointment", err)
	}
	return appointment, nil
}

func (s *RecordService) DeleteAppointment(ctx context.Context, id string) error {
	return deleteRecord[models.Appointment](ctx, s.satellites.Appointments, id, "Appointment")
}

// ScheduledOn lists the appointments still scheduled for day.
func (s *RecordService) ScheduledOn(ctx context.Context, day time.Time) ([]models.Appointment, error) {
	appointments, err := s.satellites.Appointments.ListByDayAndStatus(ctx, utils.StartOfDay(day), models.AppointmentScheduled)
	if err != nil {
		return nil, NewInternalError("failed to list appointments", err)
	}
	return appointments, nil
}

// Medical findings

func (s *RecordService) CreateMedicalFinding(ctx context.Context, patientID string, finding models.MedicalFinding, creator models.UserRef) (*models.MedicalFinding, error) {
	if err := utils.ValidateMedicalFinding(finding); err != nil {
		return nil, NewValidationError(err)
	}
	patient, err := loadPatient(ctx, s.patients, patientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	finding.ID = uuid.New().String()
	finding.Patient = models.NewPatientRef(patient)
	finding.CreatedBy = creator
	finding.CreatedAt = now
	finding.UpdatedAt = now
	if err := s.satellites.MedicalFindings.Create(ctx, &finding); err != nil {
		return nil, NewInternalError("failed to create medical finding", err)
	}
	return &finding, nil
}

func (s *RecordService) ListMedicalFindings(ctx context.Context, patientID string) ([]models.MedicalFinding, error) {
	return listForPatient[models.MedicalFinding](ctx, s.patients, s.satellites.MedicalFindings, patientID, "medical findings")
}

func (s *RecordService) GetMedicalFinding(ctx context.Context, id string) (*models.MedicalFinding, error) {
	return getRecord[models.MedicalFinding](ctx, s.satellites.MedicalFindings, id, "Medical finding")
}

func (s *RecordService) UpdateMedicalFinding(ctx context.Context, id string, patch []byte) (*models.MedicalFinding, error) {
	return patchRecord[models.MedicalFinding](ctx, s.satellites.MedicalFindings, id, "Medical finding", patch,
		func(dst *models.MedicalFinding, orig models.MedicalFinding) {
			dst.ID, dst.Patient, dst.CreatedBy, dst.CreatedAt = orig.ID, orig.Patient, orig.CreatedBy, orig.CreatedAt
			dst.UpdatedAt = s.now()
		},
		utils.ValidateMedicalFinding)
}

func (s *RecordService) DeleteMedicalFinding(ctx context.Context, id string) error {
	return deleteRecord[models.MedicalFinding](ctx, s.satellites.MedicalFindings, id, "Medical finding")
}

// RecentFindings groups the findings userID wrote in the last three days by
// patient, most recently examined patient first.
func (s *RecordService) RecentFindings(ctx context.Context, userID string) ([]models.PatientFindings, error) {
	findings, err := s.satellites.MedicalFindings.ListByCreatorSince(ctx, userID, s.now().Add(-recentFindingsWindow))
	if err != nil {
		return nil, NewInternalError("failed to list recent medical findings", err)
	}

	groups := []models.PatientFindings{}
	index := map[string]int{}
	for _, f := range findings {
		i, ok := index[f.Patient.ID]
		if !ok {
			i = len(groups)
			index[f.Patient.ID] = i
			groups = append(groups, models.PatientFindings{Patient: f.Patient})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}
	return groups, nil
}

// Health info

func (s *RecordService) CreateHealthInfo(ctx context.Context, patientID string, info models.HealthInfo, creator models.UserRef) (*models.HealthInfo, error) {
	if err := utils.ValidateHealthInfo(info); err != nil {
		return nil, NewValidationError(err)
	}
	patient, err := loadPatient(ctx, s.patients, patientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	info.ID = uuid.New().String()
	info.Patient = models.NewPatientRef(patient)
	info.CreatedBy = creator
	info.CreatedAt = now
	info.UpdatedAt = now
	if err := s.satellites.HealthInfo.Create(ctx, &info); err != nil {
		return nil, NewInternalError("failed to create health info", err)
	}
	return &info, nil
}

func (s *RecordService) ListHealthInfo(ctx context.Context, patientID string) ([]models.HealthInfo, error) {
	return listForPatient[models.HealthInfo](ctx, s.patients, s.satellites.HealthInfo, patientID, "health info")
}

func (s *RecordService) GetHealthInfo(ctx context.Context, id string) (*models.HealthInfo, error) {
	return getRecord[models.HealthInfo](ctx, s.satellites.HealthInfo, id, "Health info")
}

func (s *RecordService) UpdateHealthInfo(ctx context.Context, id string, patch []byte) (*models.HealthInfo, error) {
	return patchRecord[models.HealthInfo](ctx, s.satellites.HealthInfo, id, "Health info", patch,
		func(dst *models.HealthInfo, orig models.HealthInfo) {
			dst.ID, dst.Patient, dst.CreatedBy, dst.CreatedAt = orig.ID, orig.Patient, orig.CreatedBy, orig.CreatedAt
			dst.UpdatedAt = s.now()
		},
		utils.ValidateHealthInfo)
}

func (s *RecordService) DeleteHealthInfo(ctx context.Context, id string) error {
	return deleteRecord[models.HealthInfo](ctx, s.satellites.HealthInfo, id, "Health info")
}

// Images. The path comes from the image store; nothing here touches bytes.

func (s *RecordService) CreateImage(ctx context.Context, patientID string, image models.Image, creator models.UserRef) (*models.Image, error) {
	if err := utils.ValidateImage(image); err != nil {
		return nil, NewValidationError(err)
	}
	patient, err := loadPatient(ctx, s.patients, patientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	image.ID = uuid.New().String()
	image.Patient = models.NewPatientRef(patient)
	image.CreatedBy = creator
	image.CreatedAt = now
	image.UpdatedAt = now
	if err := s.satellites.Images.Create(ctx, &image); err != nil {
		return nil, NewInternalError("failed to create image", err)
	}
	return &image, nil
}

func (s *RecordService) ListImages(ctx context.Context, patientID string) ([]models.Image, error) {
	return listForPatient[models.Image](ctx, s.patients, s.satellites.Images, patientID, "images")
}

func (s *RecordService) GetImage(ctx context.Context, id string) (*models.Image, error) {
	return getRecord[models.Image](ctx, s.satellites.Images, id, "Image")
}

func (s *RecordService) UpdateImage(ctx context.Context, id string, patch []byte) (*models.Image, error) {
	return patchRecord[models.Image](ctx, s.satellites.Images, id, "Image", patch,
		func(dst *models.Image, orig models.Image) {
			dst.ID, dst.Patient, dst.CreatedBy, dst.CreatedAt = orig.ID, orig.Patient, orig.CreatedBy, orig.CreatedAt
			dst.UpdatedAt = s.now()
		},
		utils.ValidateImage)
}

func (s *RecordService) DeleteImage(ctx context.Context, id string) error {
	return deleteRecord[models.Image](ctx, s.satellites.Images, id, "Image")
}

// Cards

func (s *RecordService) CreateCard(ctx context.Context, patientID string, card models.Card, creator models.UserRef) (*models.Card, error) {
	if err := utils.ValidateCard(card); err != nil {
		return nil, NewValidationError(err)
	}
	patient, err := loadPatient(ctx, s.patients, patientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	card.ID = uuid.New().String()
	card.Patient = models.NewPatientRef(patient)
	card.CreatedBy = creator
	card.CreatedAt = now
	card.UpdatedAt = now
	if err := s.satellites.Cards.Create(ctx, &card); err != nil {
		return nil, NewInternalError("failed to create card", err)
	}
	return &card, nil
}

func (s *RecordService) ListCards(ctx context.Context, patientID string) ([]models.Card, error) {
	return listForPatient[models.Card](ctx, s.patients, s.satellites.Cards, patientID, "cards")
}

func (s *RecordService) GetCard(ctx context.Context, id string) (*models.Card, error) {
	return getRecord[models.Card](ctx, s.satellites.Cards, id, "Card")
}

func (s *RecordService) UpdateCard(ctx context.Context, id string, patch []byte) (*models.Card, error) {
	return patchRecord[models.Card](ctx, s.satellites.Cards, id, "Card", patch,
		func(dst *models.Card, orig models.Card) {
			dst.ID, dst.Patient, dst.CreatedBy, dst.CreatedAt = orig.ID, orig.Patient, orig.CreatedBy, orig.CreatedAt
			dst.UpdatedAt = s.now()
		},
		utils.ValidateCard)
}

func (s *RecordService) DeleteCard(ctx context.Context, id string) error {
	return deleteRecord[models.Card](ctx, s.satellites.Cards, id, "Card")
}

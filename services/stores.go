package services

import (
	"DentalClinic/models"
	"context"
	"time"
)

// The services only see these interfaces; the repositories package provides
// the gorm implementations.

type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*models.Patient, error)
	GetAll(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	DeletePatientAndRelated(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, cardNumber, phone string) ([]models.Patient, error)
	Filter(ctx context.Context, firstName string, from, to *time.Time) ([]models.Patient, error)
	CreatedSince(ctx context.Context, since time.Time) ([]models.Patient, error)
	Count(ctx context.Context) (int64, error)
}

// SatelliteStore is the storage contract shared by every patient-owned kind.
type SatelliteStore[T models.Satellite] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	ListByPatient(ctx context.Context, patientID string) ([]T, error)
	ListIDsByPatient(ctx context.Context, patientID string) ([]string, error)
	Save(ctx context.Context, record *T) error
	Delete(ctx context.Context, id string) (bool, error)
}

type AppointmentStore interface {
	SatelliteStore[models.Appointment]
	ListByDayAndStatus(ctx context.Context, day time.Time, status string) ([]models.Appointment, error)
}

type MedicalFindingStore interface {
	SatelliteStore[models.MedicalFinding]
	ListByCreatorSince(ctx context.Context, userID string, since time.Time) ([]models.MedicalFinding, error)
}

type InvoiceStore interface {
	SatelliteStore[models.Invoice]
	ListAll(ctx context.Context) ([]models.Invoice, error)
	ListPendingConfirmation(ctx context.Context) ([]models.Invoice, error)
	ConfirmPayment(ctx context.Context, invoice *models.Invoice, entry *models.PaymentHistory) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	FindByPatient(ctx context.Context, patientID string) (*models.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListActive(ctx context.Context, doctorID string) ([]models.Order, error)
	CountActive(ctx context.Context) (int64, error)
}

type ReportStore interface {
	PaymentHistory(ctx context.Context, filter models.ReportFilter) ([]models.PaymentHistory, error)
	Cards(ctx context.Context, from, to time.Time) ([]models.Card, error)
	Expenses(ctx context.Context, from, to time.Time) ([]models.Expense, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context) ([]models.Expense, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ServiceStore interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Save(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) (bool, error)
}

// Locker serializes work on one key and returns the func that releases it.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

type Mailer interface {
	SendPaymentReport(to, period string, report *models.PaymentReport) error
}

// Satellites bundles the stores of the patient-owned kinds.
type Satellites struct {
	Appointments    AppointmentStore
	MedicalFindings MedicalFindingStore
	HealthInfo      SatelliteStore[models.HealthInfo]
	Images          SatelliteStore[models.Image]
	Invoices        InvoiceStore
	Cards           SatelliteStore[models.Card]
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]models.User, error)
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)
	CountByRole(ctx context.Context) ([]models.RoleCount, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) (bool, error)
}

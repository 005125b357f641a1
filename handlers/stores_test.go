package handlers

import (
	"DentalClinic/models"
	"DentalClinic/repositories"
	"DentalClinic/services"
	"context"
	"sync"
	"time"
)

// In-memory stores backing real services in the handler tests. Embedded
// interfaces stand in for methods these tests never reach.

type memPatients struct {
	services.PatientStore
	mu       sync.Mutex
	patients map[string]models.Patient
}

func newMemPatients() *memPatients {
	return &memPatients{patients: map[string]models.Patient{}}
}

func (m *memPatients) Create(ctx context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.CardNumber == patient.CardNumber {
			return repositories.ErrDuplicate
		}
	}
	m.patients[patient.ID] = *patient
	return nil
}

func (m *memPatients) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPatients) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.CardNumber == cardNumber {
			return &p, nil
		}
	}
	return nil, nil
}

// memSatellite lists records newest first by reversing insertion order.
type memSatellite[T models.Satellite] struct {
	mu      sync.Mutex
	records []T
}

func (m *memSatellite[T]) Create(ctx context.Context, record *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *memSatellite[T]) GetByID(ctx context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.RecordID() == id {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memSatellite[T]) ListByPatient(ctx context.Context, patientID string) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []T
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].OwnerID() == patientID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *memSatellite[T]) ListIDsByPatient(ctx context.Context, patientID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := []string{}
	for _, r := range m.records {
		if r.OwnerID() == patientID {
			ids = append(ids, r.RecordID())
		}
	}
	return ids, nil
}

func (m *memSatellite[T]) Save(ctx context.Context, record *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.RecordID() == (*record).RecordID() {
			m.records[i] = *record
		}
	}
	return nil
}

func (m *memSatellite[T]) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.RecordID() == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memAppointments struct {
	memSatellite[models.Appointment]
}

func (m *memAppointments) ListByDayAndStatus(ctx context.Context, day time.Time, status string) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.records {
		if time.Time(a.AppointmentDate).Equal(day) && a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

type memFindings struct {
	memSatellite[models.MedicalFinding]
}

func (m *memFindings) ListByCreatorSince(ctx context.Context, userID string, since time.Time) ([]models.MedicalFinding, error) {
	return nil, nil
}

type memInvoices struct {
	memSatellite[models.Invoice]
}

func (m *memInvoices) ListAll(ctx context.Context) ([]models.Invoice, error) {
	return nil, nil
}

func (m *memInvoices) ListPendingConfirmation(ctx context.Context) ([]models.Invoice, error) {
	return nil, nil
}

func (m *memInvoices) ConfirmPayment(ctx context.Context, invoice *models.Invoice, entry *models.PaymentHistory) error {
	return m.Save(ctx, invoice)
}

type memUsers struct {
	services.UserStore
	users map[string]models.User
}

func (m *memUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type memOrders struct {
	services.OrderStore
}

func (memOrders) FindByPatient(ctx context.Context, patientID string) (*models.Order, error) {
	return nil, nil
}

type nopLocker struct{}

func (nopLocker) Acquire(ctx context.Context, key string) (func(), error) {
	return func() {}, nil
}

func newMemSatellites() (services.Satellites, *memAppointments) {
	appointments := &memAppointments{}
	return services.Satellites{
		Appointments:    appointments,
		MedicalFindings: &memFindings{},
		HealthInfo:      &memSatellite[models.HealthInfo]{},
		Images:          &memSatellite[models.Image]{},
		Invoices:        &memInvoices{},
		Cards:           &memSatellite[models.Card]{},
	}, appointments
}

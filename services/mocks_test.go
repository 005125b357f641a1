package services

import (
	"DentalClinic/models"
	"DentalClinic/repositories"
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type mockPatientStore struct {
	mu       sync.Mutex
	patients map[string]models.Patient
	// cascade, when set, removes what the gorm repository removes with a patient
	cascade func(ctx context.Context, patientID string)
}

func newMockPatientStore() *mockPatientStore {
	return &mockPatientStore{patients: map[string]models.Patient{}}
}

func (m *mockPatientStore) Create(ctx context.Context, patient *models.Patient) error {
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

func (m *mockPatientStore) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockPatientStore) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.CardNumber == cardNumber {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *mockPatientStore) GetAll(ctx context.Context) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Patient
	for _, p := range m.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockPatientStore) Update(ctx context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[patient.ID] = *patient
	return nil
}

func (m *mockPatientStore) DeletePatientAndRelated(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.patients[id]
	delete(m.patients, id)
	if ok && m.cascade != nil {
		m.cascade(ctx, id)
	}
	return ok, nil
}

// cascadeSatellites deletes the patient's appointments, findings, health info,
// images and invoices. Cards and payment history stay, as in PatientRepository.
func cascadeSatellites(s Satellites) func(ctx context.Context, patientID string) {
	return func(ctx context.Context, patientID string) {
		deleteOwned[models.Appointment](ctx, s.Appointments, patientID)
		deleteOwned[models.MedicalFinding](ctx, s.MedicalFindings, patientID)
		deleteOwned[models.HealthInfo](ctx, s.HealthInfo, patientID)
		deleteOwned[models.Image](ctx, s.Images, patientID)
		deleteOwned[models.Invoice](ctx, s.Invoices, patientID)
	}
}

func deleteOwned[T models.Satellite](ctx context.Context, store SatelliteStore[T], patientID string) {
	ids, _ := store.ListIDsByPatient(ctx, patientID)
	for _, id := range ids {
		_, _ = store.Delete(ctx, id)
	}
}

func (m *mockPatientStore) Search(ctx context.Context, cardNumber, phone string) ([]models.Patient, error) {
	all, _ := m.GetAll(ctx)
	var out []models.Patient
	for _, p := range all {
		if cardNumber != "" && p.CardNumber != cardNumber {
			continue
		}
		if phone != "" && !strings.Contains(p.PhoneNumber, phone) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPatientStore) Filter(ctx context.Context, firstName string, from, to *time.Time) ([]models.Patient, error) {
	all, _ := m.GetAll(ctx)
	var out []models.Patient
	for _, p := range all {
		if firstName != "" && !strings.Contains(strings.ToLower(p.FirstName), strings.ToLower(firstName)) {
			continue
		}
		if from != nil && (p.CreatedAt.Before(*from) || p.CreatedAt.After(*to)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPatientStore) CreatedSince(ctx context.Context, since time.Time) ([]models.Patient, error) {
	all, _ := m.GetAll(ctx)
	var out []models.Patient
	for _, p := range all {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPatientStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.patients)), nil
}

func createdAt(record interface{}) time.Time {
	switch r := record.(type) {
	case models.Appointment:
		return r.CreatedAt
	case models.MedicalFinding:
		return r.CreatedAt
	case models.HealthInfo:
		return r.CreatedAt
	case models.Image:
		return r.CreatedAt
	case models.Invoice:
		return r.CreatedAt
	case models.Card:
		return r.CreatedAt
	}
	return time.Time{}
}

// mockSatelliteStore keeps records in insertion order, like rows in a table.
type mockSatelliteStore[T models.Satellite] struct {
	mu      sync.Mutex
	records []T
}

func (m *mockSatelliteStore[T]) Create(ctx context.Context, record *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *record)
	return nil
}

func (m *mockSatelliteStore[T]) GetByID(ctx context.Context, id string) (*T, error) {
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

func (m *mockSatelliteStore[T]) owned(patientID string) []T {
	var out []T
	for _, r := range m.records {
		if r.OwnerID() == patientID {
			out = append(out, r)
		}
	}
	return out
}

func (m *mockSatelliteStore[T]) ListByPatient(ctx context.Context, patientID string) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.owned(patientID)
	sort.SliceStable(out, func(i, j int) bool { return createdAt(out[i]).After(createdAt(out[j])) })
	return out, nil
}

func (m *mockSatelliteStore[T]) ListIDsByPatient(ctx context.Context, patientID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owned := m.owned(patientID)
	sort.SliceStable(owned, func(i, j int) bool { return createdAt(owned[i]).Before(createdAt(owned[j])) })
	ids := []string{}
	for _, r := range owned {
		ids = append(ids, r.RecordID())
	}
	return ids, nil
}

func (m *mockSatelliteStore[T]) Save(ctx context.Context, record *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.records {
		if r.RecordID() == (*record).RecordID() {
			m.records[i] = *record
			return nil
		}
	}
	return nil
}

func (m *mockSatelliteStore[T]) Delete(ctx context.Context, id string) (bool, error) {
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

type mockAppointmentStore struct {
	mockSatelliteStore[models.Appointment]
}

func (m *mockAppointmentStore) ListByDayAndStatus(ctx context.Context, day time.Time, status string) ([]models.Appointment, error) {
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

type mockFindingStore struct {
	mockSatelliteStore[models.MedicalFinding]
}

func (m *mockFindingStore) ListByCreatorSince(ctx context.Context, userID string, since time.Time) ([]models.MedicalFinding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.MedicalFinding
	for _, f := range m.records {
		if f.CreatedBy.ID == userID && !f.CreatedAt.Before(since) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type mockInvoiceStore struct {
	mockSatelliteStore[models.Invoice]
	history []models.PaymentHistory
}

func (m *mockInvoiceStore) ListAll(ctx context.Context) ([]models.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Invoice(nil), m.records...)
	for i := range out {
		out[i].ComputeTotals()
	}
	return out, nil
}

func (m *mockInvoiceStore) ListPendingConfirmation(ctx context.Context) ([]models.Invoice, error) {
	all, _ := m.ListAll(ctx)
	var out []models.Invoice
	for _, inv := range all {
		if !inv.CurrentPayment.Confirmed && inv.CurrentPayment.Amount.IsPositive() {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *mockInvoiceStore) ConfirmPayment(ctx context.Context, invoice *models.Invoice, entry *models.PaymentHistory) error {
	m.mu.Lock()
	m.history = append(m.history, *entry)
	m.mu.Unlock()
	return m.Save(ctx, invoice)
}

func newMockSatellites() (Satellites, *mockInvoiceStore) {
	invoices := &mockInvoiceStore{}
	return Satellites{
		Appointments:    &mockAppointmentStore{},
		MedicalFindings: &mockFindingStore{},
		HealthInfo:      &mockSatelliteStore[models.HealthInfo]{},
		Images:          &mockSatelliteStore[models.Image]{},
		Invoices:        invoices,
		Cards:           &mockSatelliteStore[models.Card]{},
	}, invoices
}

type mockOrderStore struct {
	mu     sync.Mutex
	orders map[string]models.Order
}

func newMockOrderStore() *mockOrderStore {
	return &mockOrderStore{orders: map[string]models.Order{}}
}

func (m *mockOrderStore) Create(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.PatientID == order.PatientID {
			return repositories.ErrDuplicate
		}
	}
	m.orders[order.ID] = *order
	return nil
}

func (m *mockOrderStore) Save(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = *order
	return nil
}

func (m *mockOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *mockOrderStore) FindByPatient(ctx context.Context, patientID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.PatientID == patientID {
			return &o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderStore) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.orders[id]
	delete(m.orders, id)
	return ok, nil
}

func (m *mockOrderStore) ListActive(ctx context.Context, doctorID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.orders {
		if o.Status == models.OrderActive && (doctorID == "" || o.AssignedDoctor.ID == doctorID) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockOrderStore) CountActive(ctx context.Context) (int64, error) {
	active, _ := m.ListActive(ctx, "")
	return int64(len(active)), nil
}

type mockUserStore struct {
	users map[string]models.User
	roles map[string]models.Role
}

func newMockUserStore(users ...models.User) *mockUserStore {
	m := &mockUserStore{
		users: map[string]models.User{},
		roles: map[string]models.Role{
			models.RoleAdmin:     {ID: 1, Name: models.RoleAdmin},
			models.RoleDoctor:    {ID: 2, Name: models.RoleDoctor},
			models.RoleReception: {ID: 3, Name: models.RoleReception},
		},
	}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Phone == user.Phone {
			return repositories.ErrDuplicate
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *mockUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserStore) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		if u.Role.Name == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserStore) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	r, ok := m.roles[name]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *mockUserStore) CountByRole(ctx context.Context) ([]models.RoleCount, error) {
	counts := map[string]int64{}
	for _, u := range m.users {
		counts[u.Role.Name]++
	}
	var out []models.RoleCount
	for _, name := range []string{models.RoleAdmin, models.RoleDoctor, models.RoleReception} {
		out = append(out, models.RoleCount{Role: name, Count: counts[name]})
	}
	return out, nil
}

func (m *mockUserStore) UpdateUser(ctx context.Context, user *models.User) error {
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserStore) DeleteUser(ctx context.Context, id string) (bool, error) {
	_, ok := m.users[id]
	delete(m.users, id)
	return ok, nil
}

type mockServiceStore struct {
	services map[string]models.Service
}

func newMockServiceStore(services ...models.Service) *mockServiceStore {
	m := &mockServiceStore{services: map[string]models.Service{}}
	for _, s := range services {
		m.services[s.ID] = s
	}
	return m
}

func (m *mockServiceStore) Create(ctx context.Context, service *models.Service) error {
	for _, s := range m.services {
		if s.Name == service.Name {
			return repositories.ErrDuplicate
		}
	}
	m.services[service.ID] = *service
	return nil
}

func (m *mockServiceStore) GetByID(ctx context.Context, id string) (*models.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockServiceStore) List(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range m.services {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockServiceStore) Save(ctx context.Context, service *models.Service) error {
	m.services[service.ID] = *service
	return nil
}

func (m *mockServiceStore) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := m.services[id]
	delete(m.services, id)
	return ok, nil
}

// mockReportStore applies the same filters as the SQL in ReportRepository.
// When cardStore is set, cards are read from it instead of cards.
type mockReportStore struct {
	history   []models.PaymentHistory
	cards     []models.Card
	cardStore *mockSatelliteStore[models.Card]
	expenses  []models.Expense
}

func matchesReportFilter(f models.ReportFilter, h models.PaymentHistory) bool {
	if f.Username != "" && h.Invoice.Created.Username != f.Username {
		return false
	}
	if f.Receipt != nil && h.Invoice.Receipt != *f.Receipt {
		return false
	}
	if f.HasRange() && (h.CreatedAt.Before(*f.From) || h.CreatedAt.After(*f.To)) {
		return false
	}
	return true
}

func (m *mockReportStore) PaymentHistory(ctx context.Context, filter models.ReportFilter) ([]models.PaymentHistory, error) {
	var out []models.PaymentHistory
	for _, h := range m.history {
		if matchesReportFilter(filter, h) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockReportStore) Cards(ctx context.Context, from, to time.Time) ([]models.Card, error) {
	cards := m.cards
	if m.cardStore != nil {
		m.cardStore.mu.Lock()
		cards = append([]models.Card(nil), m.cardStore.records...)
		m.cardStore.mu.Unlock()
	}
	var out []models.Card
	for _, c := range cards {
		if !c.CreatedAt.Before(from) && !c.CreatedAt.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockReportStore) Expenses(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range m.expenses {
		if !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	acquired []string
}

func (l *fakeLocker) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	l.acquired = append(l.acquired, key)
	l.mu.Unlock()
	return func() {}, nil
}

type fakeMailer struct {
	to     string
	period string
	report *models.PaymentReport
}

func (f *fakeMailer) SendPaymentReport(to, period string, report *models.PaymentReport) error {
	f.to, f.period, f.report = to, period, report
	return nil
}

// stepClock returns a clock that advances one minute per call.
func stepClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Minute)
		return current
	}
}

type mockExpenseStore struct {
	expenses []models.Expense
}

func (m *mockExpenseStore) Create(ctx context.Context, expense *models.Expense) error {
	m.expenses = append(m.expenses, *expense)
	return nil
}

func (m *mockExpenseStore) List(ctx context.Context) ([]models.Expense, error) {
	return m.expenses, nil
}

func (m *mockExpenseStore) Delete(ctx context.Context, id string) (bool, error) {
	for i, e := range m.expenses {
		if e.ID == id {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SexMale   = "male"
	SexFemale = "female"

	OrderActive   = "Active"
	OrderInactive = "Inactive"

	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

var BloodGroups = []interface{}{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Patient model
type Patient struct {
	ID          string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	CardNumber  string    `gorm:"column:card_number;size:50;not null;uniqueIndex" json:"cardNumber"`
	FirstName   string    `gorm:"column:first_name;size:100;not null;index" json:"firstName"`
	Age         int       `gorm:"column:age;not null" json:"age"`
	Sex         string    `gorm:"column:sex;check:sex IN ('male', 'female');not null" json:"sex"`
	PhoneNumber string    `gorm:"column:phone_number;size:30;index" json:"phoneNumber"`
	Town        string    `gorm:"column:town" json:"town"`
	Ward        string    `gorm:"column:ward" json:"ward"`
	HouseNumber string    `gorm:"column:house_number" json:"houseNumber"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedBy   UserRef   `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientRecord is the read view of a patient with the identifiers of every
// satellite it owns, oldest first.
type PatientRecord struct {
	Patient
	CurrentOrderID  *string  `json:"currentOrderId"`
	Orders          []string `json:"orders"`
	MedicalFindings []string `json:"medicalFindings"`
	HealthInfo      []string `json:"healthInfo"`
	Appointments    []string `json:"appointments"`
	Images          []string `json:"images"`
	Invoices        []string `json:"invoices"`
	Cards           []string `json:"cards"`
}

// Order is the single current doctor assignment of a patient.
type Order struct {
	ID             string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	PatientID      string    `gorm:"column:patient_id;size:36;not null;uniqueIndex" json:"patientId"`
	AssignedDoctor UserRef   `gorm:"embedded;embeddedPrefix:doctor_" json:"assignedDoctor"`
	Status         string    `gorm:"column:status;check:status IN ('Active', 'Inactive');not null;index" json:"status"`
	CreatedBy      UserRef   `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

func (o Order) RecordID() string { return o.ID }
func (o Order) OwnerID() string { return o.PatientID }

// ActiveOrders groups the active orders of one patient.
type ActiveOrders struct {
	PatientID  string  `json:"patientId"`
	FirstName  string  `json:"firstName"`
	CardNumber string  `json:"cardNumber"`
	Orders     []Order `json:"orders"`
}

// Appointment model
type Appointment struct {
	ID              string         `gorm:"primaryKey;column:id;size:36" json:"id"`
	AppointmentDate datatypes.Date `gorm:"column:appointment_date;not null;index" json:"appointmentDate"`
	AppointmentTime string         `gorm:"column:appointment_time;size:20;not null" json:"appointmentTime"`
	ReasonForVisit  string         `gorm:"column:reason_for_visit;type:text" json:"reasonForVisit"`
	Status          string         `gorm:"column:status;check:status IN ('Scheduled', 'Completed', 'Cancelled');not null;index" json:"status"`
	Doctor          UserRef        `gorm:"embedded;embeddedPrefix:doctor_" json:"doctorId"`
	Patient         PatientRef     `gorm:"embedded;embeddedPrefix:patient_" json:"patientId"`
	CreatedBy       UserRef        `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a Appointment) RecordID() string { return a.ID }
func (a Appointment) OwnerID() string { return a.Patient.ID }

// VitalSigns are recorded as free text, the way the clinic writes them down.
type VitalSigns struct {
	CoreTemperature string `json:"coreTemperature"`
	RespiratoryRate string `json:"respiratoryRate"`
	BloodOxygen     string `json:"bloodOxygen"`
	BloodPressure   string `json:"bloodPressure"`
	HeartRate       string `json:"heartRate"`
}

// TreatmentChecklist is shared by the planned and the performed treatment.
type TreatmentChecklist struct {
	Extraction                    bool   `json:"extraction"`
	Scaling                       bool   `json:"scaling"`
	RootCanal                     bool   `json:"rootCanal"`
	Filling                       bool   `json:"filling"`
	Bridge                        bool   `json:"bridge"`
	Crown                         bool   `json:"crown"`
	Apicectomy                    bool   `json:"apicectomy"`
	FixedOrthodonticAppliance     bool   `json:"fixedOrthodonticAppliance"`
	RemovableOrthodonticAppliance bool   `json:"removableOrthodonticAppliance"`
	RemovableDenture              bool   `json:"removableDenture"`
	Splinting                     bool   `json:"splinting"`
	Other                         string `json:"other"`
}

// MedicalFinding model
type MedicalFinding struct {
	ID                      string                                 `gorm:"primaryKey;column:id;size:36" json:"id"`
	ChiefComplaint          string                                 `gorm:"column:chief_complaint;type:text" json:"chiefComplaint"`
	HistoryOfPresentIllness string                                 `gorm:"column:history_of_present_illness;type:text" json:"historyOfPresentIllness"`
	VitalSigns              datatypes.JSONType[VitalSigns]         `gorm:"column:vital_signs" json:"vitalSigns"`
	PastMedicalHistory      string                                 `gorm:"column:past_medical_history;type:text" json:"pastMedicalHistory"`
	PastDentalHistory       string                                 `gorm:"column:past_dental_history;type:text" json:"pastDentalHistory"`
	IntraoralExamination    string                                 `gorm:"column:intraoral_examination;type:text" json:"intraoralExamination"`
	ExtraoralExamination    string                                 `gorm:"column:extraoral_examination;type:text" json:"extraoralExamination"`
	Investigation           string                                 `gorm:"column:investigation;type:text" json:"investigation"`
	Assessment              string                                 `gorm:"column:assessment;type:text" json:"assessment"`
	TreatmentPlan           datatypes.JSONType[TreatmentChecklist] `gorm:"column:treatment_plan" json:"treatmentPlan"`
	TreatmentDone           datatypes.JSONType[TreatmentChecklist] `gorm:"column:treatment_done" json:"treatmentDone"`
	Patient                 PatientRef                             `gorm:"embedded;embeddedPrefix:patient_" json:"patientId"`
	CreatedBy               UserRef                                `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt               time.Time                              `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt               time.Time                              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (MedicalFinding) TableName() string {
	return "medical_findings"
}

func (m MedicalFinding) RecordID() string { return m.ID }
func (m MedicalFinding) OwnerID() string { return m.Patient.ID }

// PatientFindings groups a doctor's recent findings by patient.
type PatientFindings struct {
	Patient  PatientRef       `json:"patient"`
	Findings []MedicalFinding `json:"findings"`
}

// HealthInfo model
type HealthInfo struct {
	ID         string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	BloodGroup string     `gorm:"column:blood_group;size:3" json:"bloodGroup"`
	Weight     string     `gorm:"column:weight" json:"weight"`
	Height     string     `gorm:"column:height" json:"height"`
	Allergies  string     `gorm:"column:allergies;type:text" json:"allergies"`
	Habits     string     `gorm:"column:habits;type:text" json:"habits"`
	Patient    PatientRef `gorm:"embedded;embeddedPrefix:patient_" json:"patientId"`
	CreatedBy  UserRef    `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (HealthInfo) TableName() string {
	return "health_info"
}

func (h HealthInfo) RecordID() string { return h.ID }
func (h HealthInfo) OwnerID() string { return h.Patient.ID }

// Image model. ImagePath is whatever the image store handed back.
type Image struct {
	ID          string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	ImagePath   string     `gorm:"column:image_path;not null" json:"imagePath"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Patient     PatientRef `gorm:"embedded;embeddedPrefix:patient_" json:"patientId"`
	CreatedBy   UserRef    `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Image) TableName() string {
	return "images"
}

func (i Image) RecordID() string { return i.ID }
func (i Image) OwnerID() string { return i.Patient.ID }

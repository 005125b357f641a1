package models

// UserRef is a point-in-time copy of a clinic user's display fields.
type UserRef struct {
	ID       string `gorm:"size:36" json:"id"`
	Username string `gorm:"size:100" json:"username"`
}

// PatientRef is a point-in-time copy of a patient's display fields.
// When embedded with the "patient_" prefix its ID is the owning patient key.
type PatientRef struct {
	ID         string `gorm:"size:36;index" json:"id"`
	Username   string `gorm:"size:100" json:"username"`
	CardNumber string `gorm:"size:50" json:"cardno"`
}

// ServiceRef is a point-in-time copy of a catalog service.
type ServiceRef struct {
	ID      string `gorm:"size:36" json:"id"`
	Service string `gorm:"size:150" json:"service"`
}

// Satellite is implemented by every record owned by exactly one patient.
type Satellite interface {
	RecordID() string
	OwnerID() string
}

// NewPatientRef captures the snapshot stored on satellite records.
func NewPatientRef(p *Patient) PatientRef {
	return PatientRef{ID: p.ID, Username: p.FirstName, CardNumber: p.CardNumber}
}

// NewUserRef captures the snapshot stored for a clinic user.
func NewUserRef(u *User) UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}

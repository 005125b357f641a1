package models

import "github.com/shopspring/decimal"

// AppointmentInput is the body of an appointment booking.
type AppointmentInput struct {
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	ReasonForVisit  string `json:"reasonForVisit"`
	Status          string `json:"status"`
	DoctorID        string `json:"doctorId"`
}

type AppointmentPatch struct {
	AppointmentDate *string `json:"appointmentDate"`
	AppointmentTime *string `json:"appointmentTime"`
	ReasonForVisit  *string `json:"reasonForVisit"`
	Status          *string `json:"status"`
}

// OrderInput assigns a patient to a doctor.
type OrderInput struct {
	DoctorID string `json:"doctorId"`
	Status   string `json:"status"`
}

type OrderPatch struct {
	DoctorID *string `json:"doctorId"`
	Status   *string `json:"status"`
}

type InvoiceItemInput struct {
	ServiceID   string          `json:"service"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// InvoiceInput is the body of a new invoice; CurrentPayment is the amount
// handed over at the desk, confirmed later.
type InvoiceInput struct {
	Items          []InvoiceItemInput `json:"items"`
	CurrentPayment decimal.Decimal    `json:"currentPayment"`
	Status         string             `json:"status"`
}

type InvoicePatch struct {
	Status         *string          `json:"status"`
	Confirm        *bool            `json:"confirm"`
	CurrentPayment *decimal.Decimal `json:"currentPayment"`
}

type PaymentConfirmation struct {
	Receipt bool `json:"receipt"`
}

type ServicePatch struct {
	Name  *string          `json:"service"`
	Price *decimal.Decimal `json:"price"`
}

// UserInput is used by admins to create clinic users.
type UserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Image    string `json:"image"`
}

type UserPatch struct {
	Username *string `json:"username"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Image    *string `json:"image"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PatientFilterRequest struct {
	FirstName string `json:"firstName"`
	Date      string `json:"date"`
}

type DateRangeRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type PaymentReportRequest struct {
	Username  string `json:"username"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Receipt   *bool  `json:"receipt"`
}

type EmailReportRequest struct {
	PaymentReportRequest
	Recipient string `json:"recipient"`
}

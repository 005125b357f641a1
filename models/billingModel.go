package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoicePaid    = "Paid"
	InvoicePending = "Pending"
	InvoiceCancel  = "Cancel"
	InvoiceOrder   = "order"
)

var InvoiceStatuses = []interface{}{InvoicePaid, InvoicePending, InvoiceCancel, InvoiceOrder}

func init() {
	// money goes out as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Service is an entry of the clinic's price list.
type Service struct {
	ID        string          `gorm:"primaryKey;column:id;size:36" json:"id"`
	Name      string          `gorm:"column:name;size:150;not null;uniqueIndex" json:"service"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Service) TableName() string {
	return "services"
}

// InvoiceItem model
type InvoiceItem struct {
	ID          string          `gorm:"primaryKey;column:id;size:36" json:"id"`
	InvoiceID   string          `gorm:"column:invoice_id;size:36;not null;index" json:"-"`
	Service     ServiceRef      `gorm:"embedded;embeddedPrefix:service_" json:"service"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Total is quantity times unit price.
func (i InvoiceItem) Total() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Payment is the amount currently being paid against an invoice.
type Payment struct {
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount"`
	Confirmed bool            `gorm:"not null;default:false" json:"confirm"`
	Receipt   bool            `gorm:"not null;default:false" json:"receipt"`
}

// Invoice model. TotalAmount, TotalPaid and Balance are never stored; they are
// derived from the items and the confirmed payment history on every read.
type Invoice struct {
	ID             string           `gorm:"primaryKey;column:id;size:36" json:"id"`
	Items          []InvoiceItem    `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE" json:"items"`
	Patient        PatientRef       `gorm:"embedded;embeddedPrefix:patient_" json:"customerName"`
	CurrentPayment Payment          `gorm:"embedded;embeddedPrefix:current_payment_" json:"currentPayment"`
	Status         string           `gorm:"column:status;check:status IN ('Paid', 'Pending', 'Cancel', 'order');not null;index" json:"status"`
	Confirm        bool             `gorm:"column:confirm;not null;default:false" json:"confirm"`
	CreatedBy      UserRef          `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	Payments       []PaymentHistory `gorm:"-" json:"payments"`
	TotalAmount    decimal.Decimal  `gorm:"-" json:"totalAmount"`
	TotalPaid      decimal.Decimal  `gorm:"-" json:"totalPaid"`
	Balance        decimal.Decimal  `gorm:"-" json:"balance"`
}

func (Invoice) TableName() string {
	return "invoices"
}

func (i Invoice) RecordID() string { return i.ID }
func (i Invoice) OwnerID() string { return i.Patient.ID }

// ComputeTotals derives the invoice totals from its items and payments.
func (i *Invoice) ComputeTotals() {
	total := decimal.Zero
	for _, item := range i.Items {
		total = total.Add(item.Total())
	}
	paid := decimal.Zero
	for _, p := range i.Payments {
		paid = paid.Add(p.Invoice.Amount)
	}
	i.TotalAmount = total
	i.TotalPaid = paid
	i.Balance = total.Sub(paid)
}

// InvoiceSnapshot is the invoice as it looked when a payment was confirmed.
type InvoiceSnapshot struct {
	ID           string          `gorm:"size:36;index" json:"id"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Receipt      bool            `gorm:"not null;default:false" json:"receipt"`
	CustomerName PatientRef      `gorm:"embedded;embeddedPrefix:customer_" json:"customerName"`
	Created      UserRef         `gorm:"embedded;embeddedPrefix:created_" json:"created"`
}

// PaymentHistory is one confirmed payment. The payment report reads from here.
type PaymentHistory struct {
	ID        string          `gorm:"primaryKey;column:id;size:36" json:"id"`
	Invoice   InvoiceSnapshot `gorm:"embedded;embeddedPrefix:invoice_" json:"invoice"`
	CreatedBy UserRef         `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PaymentHistory) TableName() string {
	return "payment_history"
}

// Card is a flat card fee paid by a patient.
type Card struct {
	ID        string          `gorm:"primaryKey;column:id;size:36" json:"id"`
	CardPrice decimal.Decimal `gorm:"column:card_price;type:numeric(12,2);not null" json:"cardPrice"`
	Patient   PatientRef      `gorm:"embedded;embeddedPrefix:patient_" json:"patientId"`
	CreatedBy UserRef         `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Card) TableName() string {
	return "cards"
}

func (c Card) RecordID() string { return c.ID }
func (c Card) OwnerID() string { return c.Patient.ID }

// Expense is clinic overhead and belongs to no patient.
type Expense struct {
	ID          string          `gorm:"primaryKey;column:id;size:36" json:"id"`
	Description string          `gorm:"column:description;type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	CreatedBy   UserRef         `gorm:"embedded;embeddedPrefix:created_by_" json:"createdBy"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Expense) TableName() string {
	return "expenses"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter selects payment history. From and To are either both set or
// both nil; To is already normalized to the end of its day.
type ReportFilter struct {
	Username string
	From     *time.Time
	To       *time.Time
	Receipt  *bool
}

func (f ReportFilter) HasRange() bool {
	return f.From != nil && f.To != nil
}

type ReportTotals struct {
	TotalInvoiceAmount decimal.Decimal `json:"totalInvoiceAmount"`
	TotalCardPrice     decimal.Decimal `json:"totalCardPrice"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	GrandTotal         decimal.Decimal `json:"grandTotal"`
}

// PaymentReport is never persisted.
type PaymentReport struct {
	History  []PaymentHistory `json:"history"`
	Cards    []Card           `json:"cards"`
	Expenses []Expense        `json:"expenses"`
	Totals   ReportTotals     `json:"totals"`
}

type ExpenseReport struct {
	Expenses []Expense       `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
}

type Dashboard struct {
	TotalPatients      int64           `json:"totalPatients"`
	ActiveOrders       int64           `json:"activeOrders"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	PendingPayments    int             `json:"pendingPayments"`
	Users              []RoleCount     `json:"users"`
}

package services

import (
	"DentalClinic/models"
	"DentalClinic/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrReportCriteria = errors.New("username or both startDate and endDate are required")

type ReportService struct {
	reports  ReportStore
	patients PatientStore
	orders   OrderStore
	invoices InvoiceStore
	users    UserStore
	mailer   Mailer
}

func NewReportService(reports ReportStore, patients PatientStore, orders OrderStore, invoices InvoiceStore, users UserStore, mailer Mailer) *ReportService {
	return &ReportService{
		reports:  reports,
		patients: patients,
		orders:   orders,
		invoices: invoices,
		users:    users,
		mailer:   mailer,
	}
}

// ReportFilterFrom turns the request into a filter. A date range is used only
// when both ends are given; at least a username or a range is required.
func ReportFilterFrom(req models.PaymentReportRequest) (models.ReportFilter, error) {
	filter := models.ReportFilter{
		Username: strings.TrimSpace(req.Username),
		Receipt:  req.Receipt,
	}
	if req.StartDate != "" && req.EndDate != "" {
		from, to, err := utils.DayRange(req.StartDate, req.EndDate)
		if err != nil {
			return models.ReportFilter{}, err
		}
		filter.From, filter.To = &from, &to
	}
	if filter.Username == "" && !filter.HasRange() {
		return models.ReportFilter{}, ErrReportCriteria
	}
	return filter, nil
}

// PaymentReport sums confirmed payments, and for clinic-wide reports the
// card fees and expenses of the same period.
func (s *ReportService) PaymentReport(ctx context.Context, req models.PaymentReportRequest) (*models.PaymentReport, error) {
	filter, err := ReportFilterFrom(req)
	if err != nil {
		return nil, NewValidationError(err)
	}

	history, err := s.reports.PaymentHistory(ctx, filter)
	if err != nil {
		return nil, NewInternalError("failed to build payment report", err)
	}
	report := &models.PaymentReport{
		History:  history,
		Cards:    []models.Card{},
		Expenses: []models.Expense{},
	}
	if report.History == nil {
		report.History = []models.PaymentHistory{}
	}

	if filter.Username == "" {
		cards, err := s.reports.Cards(ctx, *filter.From, *filter.To)
		if err != nil {
			return nil, NewInternalError("failed to build payment report", err)
		}
		expenses, err := s.reports.Expenses(ctx, *filter.From, *filter.To)
		if err != nil {
			return nil, NewInternalError("failed to build payment report", err)
		}
		if cards != nil {
			report.Cards = cards
		}
		if expenses != nil {
			report.Expenses = expenses
		}
	}

	report.Totals = ComputeReportTotals(report.History, report.Cards, report.Expenses)
	return report, nil
}

// ComputeReportTotals adds up a report. The grand total is payments plus
// card fees minus expenses.
func ComputeReportTotals(history []models.PaymentHistory, cards []models.Card, expenses []models.Expense) models.ReportTotals {
	var totals models.ReportTotals
	for _, h := range history {
		totals.TotalInvoiceAmount = totals.TotalInvoiceAmount.Add(h.Invoice.Amount)
	}
	for _, c := range cards {
		totals.TotalCardPrice = totals.TotalCardPrice.Add(c.CardPrice)
	}
	for _, e := range expenses {
		totals.TotalExpenses = totals.TotalExpenses.Add(e.Amount)
	}
	totals.GrandTotal = totals.TotalInvoiceAmount.Add(totals.TotalCardPrice).Sub(totals.TotalExpenses)
	return totals
}

// EmailPaymentReport builds the report and mails its summary to recipient.
func (s *ReportService) EmailPaymentReport(ctx context.Context, req models.EmailReportRequest) (*models.PaymentReport, error) {
	if err := utils.ValidateRecipient(req.Recipient); err != nil {
		return nil, NewValidationError(fmt.Errorf("recipient: %w", err))
	}
	report, err := s.PaymentReport(ctx, req.PaymentReportRequest)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendPaymentReport(req.Recipient, reportPeriod(req.PaymentReportRequest), report); err != nil {
		return nil, NewInternalError("failed to send payment report", err)
	}
	return report, nil
}

func reportPeriod(req models.PaymentReportRequest) string {
	var parts []string
	if req.StartDate != "" && req.EndDate != "" {
		parts = append(parts, req.StartDate+" to "+req.EndDate)
	}
	if req.Username != "" {
		parts = append(parts, "for "+req.Username)
	}
	return strings.Join(parts, " ")
}

// ExpenseReport lists the expenses of an inclusive day range.
func (s *ReportService) ExpenseReport(ctx context.Context, req models.DateRangeRequest) (*models.ExpenseReport, error) {
	from, to, err := utils.DayRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, NewValidationError(err)
	}
	expenses, err := s.reports.Expenses(ctx, from, to)
	if err != nil {
		return nil, NewInternalError("failed to build expense report", err)
	}

	report := &models.ExpenseReport{Expenses: []models.Expense{}, Total: decimal.Zero}
	if expenses != nil {
		report.Expenses = expenses
	}
	for _, e := range report.Expenses {
		report.Total = report.Total.Add(e.Amount)
	}
	return report, nil
}

// Dashboard collects the counters shown on the clinic home screen.
func (s *ReportService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	var err error

	if d.TotalPatients, err = s.patients.Count(ctx); err != nil {
		return nil, NewInternalError("failed to load dashboard", err)
	}
	if d.ActiveOrders, err = s.orders.CountActive(ctx); err != nil {
		return nil, NewInternalError("failed to load dashboard", err)
	}

	invoices, err := s.invoices.ListAll(ctx)
	if err != nil {
		return nil, NewInternalError("failed to load dashboard", err)
	}
	d.OutstandingBalance = OutstandingBalance(invoices)
	for _, inv := range invoices {
		if !inv.CurrentPayment.Confirmed && inv.CurrentPayment.Amount.IsPositive() {
			d.PendingPayments++
		}
	}

	if d.Users, err = s.users.CountByRole(ctx); err != nil {
		return nil, NewInternalError("failed to load dashboard", err)
	}
	return &d, nil
}

// OutstandingBalance sums what is still owed on invoices that are not cancelled.
func OutstandingBalance(invoices []models.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == models.InvoiceCancel || !inv.Balance.IsPositive() {
			continue
		}
		total = total.Add(inv.Balance)
	}
	return total
}


package utils

import (
	"DentalClinic/models"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the outgoing mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// ReportMailer sends payment reports over SMTP.
type ReportMailer struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewReportMailer(config SMTPConfig) *ReportMailer {
	from := config.From
	if from == "" {
		from = config.User
	}
	config.From = from
	return &ReportMailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
	}
}

// SendPaymentReport mails a summary of the report to one recipient.
func (m *ReportMailer) SendPaymentReport(to, period string, report *models.PaymentReport) error {
	if m.config.Host == "" {
		return fmt.Errorf("SMTP_HOST is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Payment report "+period)
	msg.SetBody("text/plain", PaymentReportText(period, report))
	msg.AddAlternative("text/html", paymentReportHTML(period, report))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}

// PaymentReportText renders the totals block used in the mail body.
func PaymentReportText(period string, report *models.PaymentReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Payment report %s\n\n", period)
	fmt.Fprintf(&b, "Payments:       %d  total %s\n", len(report.History), report.Totals.TotalInvoiceAmount.StringFixed(2))
	fmt.Fprintf(&b, "Cards:          %d  total %s\n", len(report.Cards), report.Totals.TotalCardPrice.StringFixed(2))
	fmt.Fprintf(&b, "Expenses:       %d  total %s\n", len(report.Expenses), report.Totals.TotalExpenses.StringFixed(2))
	fmt.Fprintf(&b, "Grand total:    %s\n", report.Totals.GrandTotal.StringFixed(2))
	return b.String()
}

func paymentReportHTML(period string, report *models.PaymentReport) string {
	var rows strings.Builder
	for _, h := range report.History {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			h.CreatedAt.Format("2006-01-02 15:04"),
			html.EscapeString(h.Invoice.CustomerName.Username),
			html.EscapeString(h.Invoice.Created.Username),
			h.Invoice.Amount.StringFixed(2))
	}

	return `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Payment report</title>
		<style>
			body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
			.container { background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 700px; }
			h1 { color: #333333; }
			td, th { padding: 4px 8px; text-align: left; color: #666666; }
			.total { font-weight: bold; color: #007bff; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Payment report ` + html.EscapeString(period) + `</h1>
			<table>
				<tr><th>Date</th><th>Patient</th><th>Created by</th><th>Amount</th></tr>
				` + rows.String() + `
			</table>
			<p>Invoices: ` + report.Totals.TotalInvoiceAmount.StringFixed(2) + `</p>
			<p>Cards: ` + report.Totals.TotalCardPrice.StringFixed(2) + `</p>
			<p>Expenses: ` + report.Totals.TotalExpenses.StringFixed(2) + `</p>
			<p class="total">Grand total: ` + report.Totals.GrandTotal.StringFixed(2) + `</p>
		</div>
	</body>
	</html>
	`
}

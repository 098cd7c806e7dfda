package render

import (
	"fmt"
	"net/smtp"
	"strings"

	"route-optimizer-service/internal/domain"
)

// EmailSender mails rendered route sheets to dispatch. It speaks plain SMTP
// with optional auth; all fields come from environment configuration.
type EmailSender struct {
	Host string
	Port string
	From string
	User string
	Pass string
}

func (e *EmailSender) Configured() bool {
	return e.Host != "" && e.From != ""
}

// SendSheets renders the report's route sheets and mails them as one
// plain-text message.
func (e *EmailSender) SendSheets(to []string, depot domain.Depot, report domain.OptimizationReport) error {
	if !e.Configured() {
		return fmt.Errorf("email sender not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	body := ReportSheets(depot, report)
	subject := fmt.Sprintf("Route sheets: %d routes, %.1f km", len(report.Routes), report.TotalDistanceKm)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", e.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(body)

	addr := e.Host + ":" + e.Port
	var auth smtp.Auth
	if e.User != "" {
		auth = smtp.PlainAuth("", e.User, e.Pass, e.Host)
	}

	if err := smtp.SendMail(addr, auth, e.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("send route sheets: %w", err)
	}
	return nil
}

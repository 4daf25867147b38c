package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type bookingConfirmationEmailData struct {
	baseEmailData
	CustomerName   string
	WorkerName     string
	ServiceDate    string
	ServiceTime    string
	Address        string
	TotalFormatted string
}

type bookingReminderEmailData struct {
	baseEmailData
	CustomerName string
	WorkerName   string
	ServiceDate  string
	ServiceTime  string
	Address      string
}

type dispatcherAlertEmailData struct {
	baseEmailData
	BookingID    string
	ServiceType  string
	ServiceDate  string
	ServiceTime  string
	Reason       string
	Alternatives []string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

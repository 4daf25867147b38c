package email

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface over a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendBookingConfirmationEmail(ctx context.Context, toEmail, customerName, workerName, serviceDate, serviceTime, address string, totalPrice float64) error {
	subject := fmt.Sprintf(subjectBookingConfirmationFmt, serviceDate)
	content, err := renderEmailTemplate("booking_confirmation.html", bookingConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:   "Booking confirmed",
			Heading: "Booking confirmed",
		},
		CustomerName:   customerName,
		WorkerName:     workerName,
		ServiceDate:    serviceDate,
		ServiceTime:    serviceTime,
		Address:        address,
		TotalFormatted: formatCurrencyUSD(totalPrice),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendBookingReminderEmail(ctx context.Context, toEmail, customerName, workerName, serviceDate, serviceTime, address string) error {
	subject := fmt.Sprintf(subjectBookingReminderFmt, serviceDate, serviceTime)
	content, err := renderEmailTemplate("booking_reminder.html", bookingReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   "Upcoming cleaning",
			Heading: "Your cleaning is coming up",
		},
		CustomerName: customerName,
		WorkerName:   workerName,
		ServiceDate:  serviceDate,
		ServiceTime:  serviceTime,
		Address:      address,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

func (s *SMTPSender) SendDispatcherAlertEmail(ctx context.Context, toEmail, bookingID, serviceType, serviceDate, serviceTime, reason string, alternatives []string) error {
	subject := fmt.Sprintf(subjectDispatcherAlertFmt, strings.TrimSpace(serviceDate+" "+serviceTime))
	content, err := renderEmailTemplate("dispatcher_alert.html", dispatcherAlertEmailData{
		baseEmailData: baseEmailData{
			Title:   "Unassigned booking",
			Heading: "Unassigned booking",
		},
		BookingID:    bookingID,
		ServiceType:  serviceType,
		ServiceDate:  serviceDate,
		ServiceTime:  serviceTime,
		Reason:       reason,
		Alternatives: alternatives,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

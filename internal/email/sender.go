// Package email delivers transactional mail for the booking funnel.
package email

import (
	"context"

	"cleanops_backend/platform/config"
	"cleanops_backend/platform/logger"
)

// Sender is the delivery interface the notification module depends on.
type Sender interface {
	SendBookingConfirmationEmail(ctx context.Context, toEmail, customerName, workerName, serviceDate, serviceTime, address string, totalPrice float64) error
	SendBookingReminderEmail(ctx context.Context, toEmail, customerName, workerName, serviceDate, serviceTime, address string) error
	SendDispatcherAlertEmail(ctx context.Context, toEmail, bookingID, serviceType, serviceDate, serviceTime, reason string, alternatives []string) error
}

// NoopSender logs instead of sending, used when email is not configured.
type NoopSender struct {
	log *logger.Logger
}

// NewNoopSender creates a sender that only logs.
func NewNoopSender(log *logger.Logger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendBookingConfirmationEmail(_ context.Context, toEmail, _, _, _, _, _ string, _ float64) error {
	s.log.Info("email disabled, skipping booking confirmation", "to", toEmail)
	return nil
}

func (s *NoopSender) SendBookingReminderEmail(_ context.Context, toEmail, _, _, _, _, _ string) error {
	s.log.Info("email disabled, skipping booking reminder", "to", toEmail)
	return nil
}

func (s *NoopSender) SendDispatcherAlertEmail(_ context.Context, toEmail, bookingID, _, _, _, _ string, _ []string) error {
	s.log.Info("email disabled, skipping dispatcher alert", "to", toEmail, "booking_id", bookingID)
	return nil
}

// NewSender picks the delivery implementation from config. With email
// disabled every send becomes a log line.
func NewSender(cfg config.EmailConfig, log *logger.Logger) Sender {
	if !cfg.GetEmailEnabled() {
		return NewNoopSender(log)
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}

// Compile-time checks.
var (
	_ Sender = (*NoopSender)(nil)
	_ Sender = (*SMTPSender)(nil)
)

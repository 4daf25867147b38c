package notification

import (
	"context"
	"testing"

	"cleanops_backend/internal/events"
	"cleanops_backend/platform/logger"

	"github.com/google/uuid"
)

type testEmailConfig struct {
	dispatcher string
}

func (c testEmailConfig) GetEmailEnabled() bool        { return false }
func (c testEmailConfig) GetSMTPHost() string          { return "" }
func (c testEmailConfig) GetSMTPPort() int             { return 0 }
func (c testEmailConfig) GetSMTPUsername() string      { return "" }
func (c testEmailConfig) GetSMTPPassword() string      { return "" }
func (c testEmailConfig) GetEmailFromName() string     { return "CleanOps" }
func (c testEmailConfig) GetEmailFromAddress() string  { return "no-reply@example.com" }
func (c testEmailConfig) GetDispatcherAddress() string { return c.dispatcher }

type testSender struct {
	confirmationCalls int
	reminderCalls     int
	alertCalls        int
	lastAlertTo       string
	lastAlertAlts     []string
}

func (s *testSender) SendBookingConfirmationEmail(_ context.Context, _, _, _, _, _, _ string, _ float64) error {
	s.confirmationCalls++
	return nil
}

func (s *testSender) SendBookingReminderEmail(_ context.Context, _, _, _, _, _, _ string) error {
	s.reminderCalls++
	return nil
}

func (s *testSender) SendDispatcherAlertEmail(_ context.Context, to, _, _, _, _, _ string, alternatives []string) error {
	s.alertCalls++
	s.lastAlertTo = to
	s.lastAlertAlts = alternatives
	return nil
}

func TestHandleBookingAssignedSendsConfirmation(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testEmailConfig{dispatcher: "dispatch@example.com"}, logger.New("development"))

	err := m.handleBookingAssigned(context.Background(), events.BookingAssigned{
		BookingID:     uuid.New(),
		WorkerName:    "Maria",
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		ServiceDate:   "2026-10-05",
		ServiceTime:   "10:00",
		Address:       "501 Congress Ave, Austin, TX 78701",
		TotalPrice:    190,
	})
	if err != nil {
		t.Fatalf("handleBookingAssigned returned error: %v", err)
	}
	if sender.confirmationCalls != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", sender.confirmationCalls)
	}
}

func TestHandleBookingAssignedSkipsWithoutEmail(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testEmailConfig{}, logger.New("development"))

	err := m.handleBookingAssigned(context.Background(), events.BookingAssigned{
		BookingID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("handleBookingAssigned returned error: %v", err)
	}
	if sender.confirmationCalls != 0 {
		t.Fatalf("expected no confirmation email without an address, got %d", sender.confirmationCalls)
	}
}

func TestHandleAssignmentFailedAlertsDispatcher(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testEmailConfig{dispatcher: "dispatch@example.com"}, logger.New("development"))

	err := m.handleAssignmentFailed(context.Background(), events.BookingAssignmentFailed{
		BookingID:    uuid.New(),
		ServiceType:  "airbnb",
		ServiceDate:  "2026-10-05",
		ServiceTime:  "10:00",
		Reason:       "no available worker for zone 78704 on 2026-10-05 at 10:00",
		Alternatives: []string{"W001"},
	})
	if err != nil {
		t.Fatalf("handleAssignmentFailed returned error: %v", err)
	}
	if sender.alertCalls != 1 {
		t.Fatalf("expected 1 dispatcher alert, got %d", sender.alertCalls)
	}
	if sender.lastAlertTo != "dispatch@example.com" {
		t.Fatalf("alert went to %q", sender.lastAlertTo)
	}
	if len(sender.lastAlertAlts) != 1 || sender.lastAlertAlts[0] != "W001" {
		t.Fatalf("unexpected alternatives: %v", sender.lastAlertAlts)
	}
}

func TestHandleAssignmentFailedWithoutDispatcherAddressDropsQuietly(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testEmailConfig{}, logger.New("development"))

	err := m.handleAssignmentFailed(context.Background(), events.BookingAssignmentFailed{
		BookingID: uuid.New(),
		Reason:    "no available worker",
	})
	if err != nil {
		t.Fatalf("handleAssignmentFailed returned error: %v", err)
	}
	if sender.alertCalls != 0 {
		t.Fatalf("expected no alert without a dispatcher address, got %d", sender.alertCalls)
	}
}

func TestHandleReminderDueSendsReminder(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testEmailConfig{}, logger.New("development"))

	err := m.handleReminderDue(context.Background(), events.BookingReminderDue{
		BookingID:     uuid.New(),
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		WorkerName:    "Maria",
		ServiceDate:   "2026-10-05",
		ServiceTime:   "10:00",
		Address:       "501 Congress Ave, Austin, TX 78701",
	})
	if err != nil {
		t.Fatalf("handleReminderDue returned error: %v", err)
	}
	if sender.reminderCalls != 1 {
		t.Fatalf("expected 1 reminder email, got %d", sender.reminderCalls)
	}
}

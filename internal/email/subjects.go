package email

const (
	subjectBookingConfirmationFmt = "Your cleaning is booked for %s"
	subjectBookingReminderFmt     = "Reminder: your cleaning is tomorrow, %s at %s"
	subjectDispatcherAlertFmt     = "Unassigned booking needs dispatch: %s"
)

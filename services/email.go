package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"meet_flow_app_go/config"
	"meet_flow_app_go/models"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	// Validate configuration
	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Prefer HTML if available
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine so
// handlers do not block on the Resend API.
func SendEmailAsync(cfg *config.Config, email *Email) {
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

const emailTimeFormat = "Monday, January 2 2006 at 15:04"

// manageLink builds the public reschedule/cancel link for a booking
func manageLink(cfg *config.Config, booking *models.Booking) string {
	return fmt.Sprintf("%s/bookings/%s", cfg.AppURL, booking.BookingToken)
}

// BuildBookingConfirmationEmail creates the confirmation email sent to
// the invitee right after a booking is created
func BuildBookingConfirmationEmail(cfg *config.Config, booking *models.Booking) *Email {
	when := booking.StartTime.Format(emailTimeFormat)
	eventName := booking.EventType.Name
	if eventName == "" {
		eventName = "Meeting"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nYour booking is confirmed.\n\n%s\n%s (%d minutes)\n\nNeed to make changes? Reschedule or cancel here:\n%s\n",
		booking.InviteeName, eventName, when, booking.Duration(), manageLink(cfg, booking))

	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking is confirmed.</p><p><strong>%s</strong><br>%s (%d minutes)</p><p><a href=\"%s\">Reschedule or cancel</a></p>",
		booking.InviteeName, eventName, when, booking.Duration(), manageLink(cfg, booking))

	return &Email{
		To:       []string{booking.InviteeEmail},
		Subject:  fmt.Sprintf("Confirmed: %s on %s", eventName, booking.StartTime.Format("Jan 2")),
		TextBody: text,
		HTMLBody: html,
	}
}

// BuildBookingRescheduledEmail creates the email sent after a booking
// was moved to a new time
func BuildBookingRescheduledEmail(cfg *config.Config, booking *models.Booking, oldStart time.Time) *Email {
	eventName := booking.EventType.Name
	if eventName == "" {
		eventName = "Meeting"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nYour booking was rescheduled.\n\nPrevious time: %s\nNew time: %s\n\nManage your booking:\n%s\n",
		booking.InviteeName, oldStart.Format(emailTimeFormat),
		booking.StartTime.Format(emailTimeFormat), manageLink(cfg, booking))

	return &Email{
		To:       []string{booking.InviteeEmail},
		Subject:  fmt.Sprintf("Rescheduled: %s on %s", eventName, booking.StartTime.Format("Jan 2")),
		TextBody: text,
	}
}

// BuildBookingReminderEmail creates the day-before reminder email
func BuildBookingReminderEmail(cfg *config.Config, booking *models.Booking) *Email {
	eventName := booking.EventType.Name
	if eventName == "" {
		eventName = "Meeting"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder of your upcoming booking.\n\n%s\n%s (%d minutes)\n\nNeed to make changes? Reschedule or cancel here:\n%s\n",
		booking.InviteeName, eventName, booking.StartTime.Format(emailTimeFormat),
		booking.Duration(), manageLink(cfg, booking))

	return &Email{
		To:       []string{booking.InviteeEmail},
		Subject:  fmt.Sprintf("Reminder: %s on %s", eventName, booking.StartTime.Format("Jan 2")),
		TextBody: text,
	}
}

// BuildBookingCancelledEmail creates the email sent after cancellation
func BuildBookingCancelledEmail(cfg *config.Config, booking *models.Booking) *Email {
	eventName := booking.EventType.Name
	if eventName == "" {
		eventName = "Meeting"
	}

	text := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s on %s has been cancelled.\n",
		booking.InviteeName, eventName, booking.StartTime.Format(emailTimeFormat))
	if booking.CancellationReason != nil && *booking.CancellationReason != "" {
		text += fmt.Sprintf("\nReason: %s\n", *booking.CancellationReason)
	}
	text += fmt.Sprintf("\nBook a new time:\n%s\n", cfg.AppURL)

	return &Email{
		To:       []string{booking.InviteeEmail},
		Subject:  fmt.Sprintf("Cancelled: %s on %s", eventName, booking.StartTime.Format("Jan 2")),
		TextBody: text,
	}
}

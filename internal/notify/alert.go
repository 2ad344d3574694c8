package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/la-masion/booking-api/internal/schedule"
	"github.com/la-masion/booking-api/pkg/logging"
)

// BookingAlert is the payload for a staff booking notification.
type BookingAlert struct {
	BookingID           string
	SquareBookingID     string
	SquareBookingStatus string
	LocationID          string
	Timezone            string
	StartAtUTC          time.Time
	CreatedAtUTC        time.Time
	ServiceName         string
	AddonNames          []string
	TotalDollars        int
	DepositCents        int
	Currency            string
	FirstName           string
	LastName            string
	Email               string
	Phone               string
	Notes               string
}

// AlertService sends best-effort booking alerts to staff. Failures are logged
// and reported back as a flag only; they never unwind the booking itself.
type AlertService struct {
	email   EmailSender
	to      string
	from    string
	enabled bool
	logger  *logging.Logger
}

// NewAlertService creates an alert service. A nil email sender or missing
// recipient leaves the service in a disabled-but-safe state.
func NewAlertService(email EmailSender, to, from string, enabled bool, logger *logging.Logger) *AlertService {
	if logger == nil {
		logger = logging.Default()
	}
	if from == "" {
		from = to
	}
	return &AlertService{
		email:   email,
		to:      to,
		from:    from,
		enabled: enabled,
		logger:  logger,
	}
}

// SendBookingAlert formats and sends the staff notification for a new booking.
func (s *AlertService) SendBookingAlert(ctx context.Context, alert BookingAlert) error {
	if !s.enabled {
		return fmt.Errorf("notify: booking alerts disabled")
	}
	if s.email == nil {
		return fmt.Errorf("notify: no email sender configured")
	}
	if s.to == "" {
		return fmt.Errorf("notify: no alert recipient configured (BOOKING_ALERT_EMAIL_TO)")
	}

	subject, body := formatBookingAlert(alert)
	if err := s.email.Send(ctx, EmailMessage{To: s.to, Subject: subject, Body: body}); err != nil {
		return err
	}
	return nil
}

func formatBookingAlert(alert BookingAlert) (subject, body string) {
	loc := schedule.LoadLocation(alert.Timezone)
	startLocal := alert.StartAtUTC.In(loc)
	createdLocal := alert.CreatedAtUTC.In(loc)

	whenLine := startLocal.Format("Monday 2 Jan 2006") + " at " + startLocal.Format("3:04 PM")
	bookedAtLine := createdLocal.Format("Monday 2 Jan 2006") + " at " + createdLocal.Format("3:04 PM")

	addonLine := "None"
	if len(alert.AddonNames) > 0 {
		addonLine = strings.Join(alert.AddonNames, ", ")
	}

	currency := alert.Currency
	if currency == "" {
		currency = "AUD"
	}
	money := func(dollars float64) string {
		return fmt.Sprintf("%s $%.2f", currency, dollars)
	}

	subject = fmt.Sprintf("New booking confirmed — %s %s — %s", alert.FirstName, alert.LastName, whenLine)

	lines := []string{
		"NEW BOOKING CONFIRMED",
		"",
		"Appointment date: " + startLocal.Format("Monday 2 Jan 2006"),
		"Appointment time: " + startLocal.Format("3:04 PM"),
		"",
		"Service: " + alert.ServiceName,
		"Add-ons: " + addonLine,
		"Total: " + money(float64(alert.TotalDollars)),
		"Deposit paid: " + money(float64(alert.DepositCents)/100),
		"",
		fmt.Sprintf("Customer: %s %s", alert.FirstName, alert.LastName),
		"Phone: " + alert.Phone,
		"Email: " + alert.Email,
	}
	if alert.Notes != "" {
		lines = append(lines, "Notes: "+alert.Notes)
	}
	lines = append(lines,
		"",
		"Booked at: "+bookedAtLine,
		"Booking ID: "+alert.BookingID,
	)
	if alert.SquareBookingID != "" {
		lines = append(lines, "Square booking ID: "+alert.SquareBookingID)
	}
	if strings.EqualFold(alert.SquareBookingStatus, "PENDING") {
		lines = append(lines,
			"",
			"ACTION REQUIRED: this appointment is PENDING in Square — please confirm it.",
		)
	}

	return subject, strings.Join(lines, "\n")
}

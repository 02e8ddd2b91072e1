// services/notifier.go
package services

import (
	"fmt"
	"os"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier sends customer-facing SMS and records every attempt in the
// notification log. Sends are fire-and-forget: failures are logged, never
// propagated to the checkout path.
type Notifier struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewNotifier(db *gorm.DB) *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &Notifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// SendBookingConfirmation texts the customer their appointment summary.
func (n *Notifier) SendBookingConfirmation(appointment models.Appointment, customer models.Customer) {
	message := fmt.Sprintf(
		"Hi %s, your appointment on %s is confirmed. Total: %.2f. See you soon!",
		customer.Name,
		appointment.AppointmentDate.Format("Mon, 02 Jan 15:04"),
		appointment.Total,
	)
	n.send(appointment.SalonID, customer, &appointment.ID, "confirmation", message)
}

// SendAppointmentReminder texts the customer the day before.
func (n *Notifier) SendAppointmentReminder(appointment models.Appointment, customer models.Customer) {
	message := fmt.Sprintf(
		"Hi %s, a reminder about your appointment tomorrow at %s.",
		customer.Name,
		appointment.AppointmentDate.Format("15:04"),
	)
	n.send(appointment.SalonID, customer, &appointment.ID, "reminder", message)
}

func (n *Notifier) send(salonID uuid.UUID, customer models.Customer, appointmentID *uuid.UUID, kind, message string) {
	logger := utils.GetLogger()

	entry := models.NotificationLog{
		SalonID:       salonID,
		CustomerID:    customer.ID,
		AppointmentID: appointmentID,
		Type:          kind,
		Message:       message,
		Channel:       "sms",
		SentAt:        time.Now(),
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(n.from)
	params.SetBody(message)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		logger.Warn("sms send failed",
			zap.String("customer", customer.ID.String()),
			zap.String("type", kind),
			zap.Error(err))
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = "sent"
	}

	if err := n.db.Create(&entry).Error; err != nil {
		logger.Error("failed to record notification log", zap.Error(err))
	}
}

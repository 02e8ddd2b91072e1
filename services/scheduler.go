// services/scheduler.go
package services

import (
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Scheduler runs the daily background jobs: appointment reminders and
// pay-period auto-close.
type Scheduler struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewScheduler(db *gorm.DB, notifier *Notifier) *Scheduler {
	return &Scheduler{db: db, notifier: notifier}
}

func (s *Scheduler) Start() {
	c := cron.New()

	// Reminders daily at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	// Close elapsed pay periods just after midnight
	c.AddFunc("5 0 * * *", s.CloseElapsedPayPeriods)

	c.Start()
	utils.GetLogger().Info("scheduler started")
}

// SendDailyReminders texts every customer with a scheduled appointment
// tomorrow, for salons that have reminders switched on.
func (s *Scheduler) SendDailyReminders() {
	logger := utils.GetLogger()
	logger.Info("starting daily reminder processing")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := s.db.
		Where("status = ? AND appointment_date >= ? AND appointment_date < ?",
			models.AppointmentScheduled, tomorrow, dayAfter).
		Find(&appointments).Error; err != nil {
		logger.Error("failed to fetch tomorrow's appointments", zap.Error(err))
		return
	}

	for _, appointment := range appointments {
		var salon models.Salon
		if err := s.db.First(&salon, "id = ?", appointment.SalonID).Error; err != nil || !salon.SMSReminders {
			continue
		}

		var customer models.Customer
		if err := s.db.First(&customer, "id = ?", appointment.CustomerID).Error; err != nil {
			logger.Warn("reminder skipped, customer not found",
				zap.String("appointment", appointment.ID.String()))
			continue
		}
		s.notifier.SendAppointmentReminder(appointment, customer)
	}

	logger.Info("daily reminder processing completed", zap.Int("appointments", len(appointments)))
}

// CloseElapsedPayPeriods marks every open pay period whose end date has
// passed as closed so pay runs can be generated against a stable window.
func (s *Scheduler) CloseElapsedPayPeriods() {
	logger := utils.GetLogger()

	result := s.db.Model(&models.PayPeriod{}).
		Where("status = ? AND end_date < ?", models.PayPeriodOpen, utils.BeginningOfDay(time.Now())).
		Update("status", models.PayPeriodClosed)
	if result.Error != nil {
		logger.Error("failed to close elapsed pay periods", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("closed elapsed pay periods", zap.Int64("count", result.RowsAffected))
	}
}

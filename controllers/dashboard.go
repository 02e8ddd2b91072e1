package controllers

import (
	"net/http"
	"time"

	"glowdesk-backend/config"
	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardOverview struct {
	TotalCustomers     int64               `json:"totalCustomers"`
	MonthlyRevenue     float64             `json:"monthlyRevenue"`
	TotalAppointments  int64               `json:"totalAppointments"`
	TodaysAppointments []TodaysAppointment `json:"todaysAppointments"`
	TopServices        []TopService        `json:"topServices"`
}

type TodaysAppointment struct {
	CustomerName string    `json:"customerName"`
	Time         time.Time `json:"time"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
}

type TopService struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

func GetDashboardOverview(c *gin.Context) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return
	}
	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return
	}

	// Total Customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("salon_id = ? AND deleted_at IS NULL", salonUUID).Count(&totalCustomers)

	// This Month's Revenue
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND appointment_date >= ? AND status <> ? AND deleted_at IS NULL",
			salonUUID, firstOfMonth, models.AppointmentCancelled).
		Select("COALESCE(SUM(total), 0)").Scan(&monthlyRevenue)

	// Total Appointments
	var totalAppointments int64
	config.DB.Model(&models.Appointment{}).Where("salon_id = ? AND deleted_at IS NULL", salonUUID).Count(&totalAppointments)

	// Today's appointments
	startOfDay := utils.BeginningOfDay(now)
	endOfDay := startOfDay.AddDate(0, 0, 1)
	var todays []TodaysAppointment
	config.DB.Raw(`
        SELECT c.name AS customer_name, a.appointment_date AS time, a.total, a.status
        FROM appointments a
        JOIN customers c ON c.id = a.customer_id
        WHERE a.salon_id = ? AND a.appointment_date >= ? AND a.appointment_date < ? AND a.deleted_at IS NULL
        ORDER BY a.appointment_date
    `, salonUUID, startOfDay, endOfDay).Scan(&todays)

	// Top services by booked revenue this month
	var topServices []TopService
	config.DB.Raw(`
        SELECT b.item_name AS name, COUNT(*) AS count, COALESCE(SUM(b.adjusted_price), 0) AS revenue
        FROM bookings b
        JOIN appointments a ON a.id = b.appointment_id
        WHERE a.salon_id = ? AND a.appointment_date >= ? AND a.status <> ? AND a.deleted_at IS NULL
        GROUP BY b.item_name
        ORDER BY revenue DESC
        LIMIT 5
    `, salonUUID, firstOfMonth, models.AppointmentCancelled).Scan(&topServices)

	c.JSON(http.StatusOK, DashboardOverview{
		TotalCustomers:     totalCustomers,
		MonthlyRevenue:     monthlyRevenue,
		TotalAppointments:  totalAppointments,
		TodaysAppointments: todays,
		TopServices:        topServices,
	})
}

// controllers/payroll.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"glowdesk-backend/config"
	"glowdesk-backend/models"
	"glowdesk-backend/services"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePayPeriodInput defines the expected JSON structure for a pay period
type CreatePayPeriodInput struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// AdjustmentInput is a manual +/- correction on one pay run line
type AdjustmentInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Note   string  `json:"note"`
}

// CreatePayPeriod opens a new pay period
func CreatePayPeriod(c *gin.Context) {
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

	var input CreatePayPeriodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if utils.DaysBetween(input.StartDate, input.EndDate) < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Pay period must cover at least one day")
		return
	}

	period := models.PayPeriod{
		SalonID:   salonUUID,
		StartDate: utils.BeginningOfDay(input.StartDate),
		EndDate:   utils.BeginningOfDay(input.EndDate),
		Status:    models.PayPeriodOpen,
	}

	if err := config.DB.Create(&period).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pay period")
		return
	}

	c.JSON(http.StatusCreated, period)
}

// GetPayPeriods lists the salon's pay periods
func GetPayPeriods(c *gin.Context) {
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

	var periods []models.PayPeriod
	if err := config.DB.Where("salon_id = ?", salonUUID).
		Order("start_date desc").
		Find(&periods).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pay periods")
		return
	}

	c.JSON(http.StatusOK, periods)
}

// ClosePayPeriod closes an open pay period so pay runs see a stable window
func ClosePayPeriod(c *gin.Context) {
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

	periodUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pay period ID format")
		return
	}

	var period models.PayPeriod
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, periodUUID).
		First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pay period not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	period.Status = models.PayPeriodClosed
	if err := config.DB.Save(&period).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to close pay period")
		return
	}

	c.JSON(http.StatusOK, period)
}

// GeneratePayRun aggregates every stylist's completed booking revenue in
// the pay period and builds a draft pay run with slab commissions and
// per-service overrides applied
func GeneratePayRun(c *gin.Context) {
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

	periodUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pay period ID format")
		return
	}

	var period models.PayPeriod
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, periodUUID).
		First(&period).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pay period not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if period.Status != models.PayPeriodClosed {
		utils.RespondWithError(c, http.StatusBadRequest, "Pay period must be closed before generating a pay run")
		return
	}

	// Completed appointments inside the period, with their bookings
	var appointments []models.Appointment
	if err := config.DB.Preload("Bookings").
		Where("salon_id = ? AND status = ? AND appointment_date >= ? AND appointment_date < ?",
			salonUUID, models.AppointmentCompleted,
			period.StartDate, period.EndDate.AddDate(0, 0, 1)).
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}

	// Aggregate adjusted revenue per stylist
	revenueByStaff := make(map[uuid.UUID]*services.StaffRevenue)
	for _, appointment := range appointments {
		for _, booking := range appointment.Bookings {
			if booking.StaffID == nil {
				continue
			}
			rev, ok := revenueByStaff[*booking.StaffID]
			if !ok {
				rev = &services.StaffRevenue{
					StaffID:   *booking.StaffID,
					ByService: make(map[uuid.UUID]float64),
				}
				revenueByStaff[*booking.StaffID] = rev
			}
			rev.Total += booking.AdjustedPrice
			if booking.ItemKind == models.BookingItemService {
				rev.ByService[booking.ItemID] += booking.AdjustedPrice
			}
		}
	}

	// Per-service overrides
	var serviceCommissions []models.ServiceCommission
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&serviceCommissions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load service commissions")
		return
	}
	overrides := make(map[uuid.UUID]float64, len(serviceCommissions))
	for _, sc := range serviceCommissions {
		overrides[sc.ServiceID] = sc.Percentage
	}

	var items []models.PayRunItem
	for staffID, rev := range revenueByStaff {
		var staff models.User
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, staffID).
			First(&staff).Error; err != nil {
			continue // bookings by removed staff are skipped
		}
		rev.StaffName = staff.Name

		var slabs []models.CommissionSlab
		if staff.CommissionTemplateID != nil {
			if err := config.DB.Where("template_id = ?", *staff.CommissionTemplateID).
				Find(&slabs).Error; err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load commission slabs")
				return
			}
		}

		items = append(items, services.BuildPayRunItem(*rev, slabs, overrides))
	}

	revenue, commission, netPay := services.PayRunTotals(items)
	payRun := models.PayRun{
		SalonID:         salonUUID,
		PayPeriodID:     period.ID,
		Status:          models.PayRunDraft,
		TotalRevenue:    revenue,
		TotalCommission: commission,
		TotalNetPay:     netPay,
		Items:           items,
	}

	if err := config.DB.Create(&payRun).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create pay run")
		return
	}

	c.JSON(http.StatusCreated, payRun)
}

// GetPayRuns lists the salon's pay runs
func GetPayRuns(c *gin.Context) {
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

	var payRuns []models.PayRun
	if err := config.DB.Preload("Items").
		Where("salon_id = ?", salonUUID).
		Find(&payRuns).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pay runs")
		return
	}

	c.JSON(http.StatusOK, payRuns)
}

func loadPayRun(c *gin.Context) (*models.PayRun, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return nil, false
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return nil, false
	}

	runUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pay run ID format")
		return nil, false
	}

	var payRun models.PayRun
	if err := config.DB.Preload("Items").
		Where("salon_id = ? AND id = ?", salonUUID, runUUID).
		First(&payRun).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Pay run not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &payRun, true
}

// GetPayRun retrieves one pay run with its lines
func GetPayRun(c *gin.Context) {
	payRun, ok := loadPayRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, payRun)
}

// AdjustPayRunItem records a manual correction on one line of a draft pay
// run and recomputes the run totals
func AdjustPayRunItem(c *gin.Context) {
	payRun, ok := loadPayRun(c)
	if !ok {
		return
	}

	if payRun.Status != models.PayRunDraft {
		utils.RespondWithError(c, http.StatusBadRequest, "Only draft pay runs can be adjusted")
		return
	}

	itemUUID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid pay run item ID format")
		return
	}

	var input AdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var target *models.PayRunItem
	for i := range payRun.Items {
		if payRun.Items[i].ID == itemUUID {
			target = &payRun.Items[i]
			break
		}
	}
	if target == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Pay run item not found")
		return
	}

	services.ApplyAdjustment(target, input.Amount, input.Note)
	_, commission, netPay := services.PayRunTotals(payRun.Items)
	payRun.TotalCommission = commission
	payRun.TotalNetPay = netPay

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(target).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save adjustment")
		return
	}
	if err := tx.Model(&models.PayRun{}).Where("id = ?", payRun.ID).
		Updates(map[string]interface{}{
			"total_commission": payRun.TotalCommission,
			"total_net_pay":    payRun.TotalNetPay,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update pay run totals")
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, payRun)
}

// FinalizePayRun locks a draft pay run
func FinalizePayRun(c *gin.Context) {
	payRun, ok := loadPayRun(c)
	if !ok {
		return
	}

	if payRun.Status != models.PayRunDraft {
		utils.RespondWithError(c, http.StatusBadRequest, "Pay run is already finalized")
		return
	}

	payRun.Status = models.PayRunFinalized
	if err := config.DB.Model(&models.PayRun{}).Where("id = ?", payRun.ID).
		Update("status", models.PayRunFinalized).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to finalize pay run")
		return
	}

	c.JSON(http.StatusOK, payRun)
}

// controllers/profile.go
package controllers

import (
	"net/http"

	"glowdesk-backend/config"
	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UpdateSalonInput struct {
	Name    *string  `json:"name"`
	Address *string  `json:"address"`
	TaxRate *float64 `json:"taxRate" binding:"omitempty,min=0,max=100"`
}

type UpdateWorkingHoursInput struct {
	WorkingHours models.JSONB `json:"workingHours" binding:"required"`
}

type UpdateNotificationsInput struct {
	SMSConfirmations *bool `json:"smsConfirmations"`
	SMSReminders     *bool `json:"smsReminders"`
}

func loadSalon(c *gin.Context) (*models.Salon, bool) {
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

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return nil, false
	}
	return &salon, true
}

// GetProfile returns the salon settings
func GetProfile(c *gin.Context) {
	salon, ok := loadSalon(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, salon)
}

// UpdateSalonProfile updates name, address and the default tax rate
func UpdateSalonProfile(c *gin.Context) {
	salon, ok := loadSalon(c)
	if !ok {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.TaxRate != nil {
		salon.TaxRate = *input.TaxRate
	}

	if err := config.DB.Save(salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
		return
	}

	c.JSON(http.StatusOK, salon)
}

// UpdateWorkingHours replaces the salon's working hours
func UpdateWorkingHours(c *gin.Context) {
	salon, ok := loadSalon(c)
	if !ok {
		return
	}

	var input UpdateWorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salon.WorkingHours = input.WorkingHours
	if err := config.DB.Save(salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update working hours")
		return
	}

	c.JSON(http.StatusOK, salon)
}

// UpdateNotifications toggles SMS confirmations and reminders
func UpdateNotifications(c *gin.Context) {
	salon, ok := loadSalon(c)
	if !ok {
		return
	}

	var input UpdateNotificationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.SMSConfirmations != nil {
		salon.SMSConfirmations = *input.SMSConfirmations
	}
	if input.SMSReminders != nil {
		salon.SMSReminders = *input.SMSReminders
	}

	if err := config.DB.Save(salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, salon)
}

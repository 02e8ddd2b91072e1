// controllers/commission.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"glowdesk-backend/config"
	"glowdesk-backend/models"
	"glowdesk-backend/services"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlabInput is one revenue band of a commission schedule
type SlabInput struct {
	MinAmount  float64  `json:"minAmount" binding:"min=0"`
	MaxAmount  *float64 `json:"maxAmount"`
	Percentage float64  `json:"percentage" binding:"min=0,max=100"`
}

// CreateCommissionTemplateInput defines the expected JSON structure for a template
type CreateCommissionTemplateInput struct {
	Name  string      `json:"name" binding:"required"`
	Slabs []SlabInput `json:"slabs" binding:"required,min=1"`
}

// UpdateCommissionTemplateInput defines the expected JSON structure for updates
type UpdateCommissionTemplateInput struct {
	Name  *string      `json:"name"`
	Slabs *[]SlabInput `json:"slabs"`
}

// ServiceCommissionInput sets a per-service commission override
type ServiceCommissionInput struct {
	ServiceID  uuid.UUID `json:"serviceId" binding:"required"`
	Percentage float64   `json:"percentage" binding:"min=0,max=100"`
}

func slabsFromInput(inputs []SlabInput) []models.CommissionSlab {
	slabs := make([]models.CommissionSlab, 0, len(inputs))
	for _, in := range inputs {
		slabs = append(slabs, models.CommissionSlab{
			MinAmount:  in.MinAmount,
			MaxAmount:  in.MaxAmount,
			Percentage: in.Percentage,
		})
	}
	return slabs
}

// CreateCommissionTemplate validates the slab schedule and persists it as
// a reusable template
func CreateCommissionTemplate(c *gin.Context) {
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

	var input CreateCommissionTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slabs := slabsFromInput(input.Slabs)
	if err := services.ValidateSlabs(slabs); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	template := models.CommissionTemplate{
		SalonID: salonUUID,
		Name:    input.Name,
		Slabs:   slabs,
	}

	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create commission template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetCommissionTemplates retrieves all templates for the salon
func GetCommissionTemplates(c *gin.Context) {
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

	var templates []models.CommissionTemplate
	if err := config.DB.Preload("Slabs").
		Where("salon_id = ?", salonUUID).
		Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve commission templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

func loadTemplate(c *gin.Context) (*models.CommissionTemplate, bool) {
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

	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return nil, false
	}

	var template models.CommissionTemplate
	if err := config.DB.Preload("Slabs").
		Where("salon_id = ? AND id = ?", salonUUID, templateUUID).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Commission template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &template, true
}

// GetCommissionTemplate retrieves one template with its slabs
func GetCommissionTemplate(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, template)
}

// replaceSlabs swaps a template's slab rows inside a transaction
func replaceSlabs(template *models.CommissionTemplate, slabs []models.CommissionSlab) error {
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("template_id = ?", template.ID).Delete(&models.CommissionSlab{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i := range slabs {
		slabs[i].ID = uuid.Nil
		slabs[i].TemplateID = template.ID
	}
	template.Slabs = slabs
	if err := tx.Save(template).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// UpdateCommissionTemplate renames a template and/or replaces its schedule
func UpdateCommissionTemplate(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}

	var input UpdateCommissionTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		template.Name = *input.Name
	}

	if input.Slabs != nil {
		slabs := slabsFromInput(*input.Slabs)
		if err := services.ValidateSlabs(slabs); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := replaceSlabs(template, slabs); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update commission template")
			return
		}
	} else if err := config.DB.Save(template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update commission template")
		return
	}

	c.JSON(http.StatusOK, template)
}

// AddTemplateSlab appends a slab, keeping the trailing slab unbounded
func AddTemplateSlab(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}

	var input SlabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slabs := services.AddSlab(template.Slabs, models.CommissionSlab{
		MinAmount:  input.MinAmount,
		Percentage: input.Percentage,
	})
	if err := services.ValidateSlabs(slabs); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := replaceSlabs(template, slabs); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add slab")
		return
	}

	c.JSON(http.StatusOK, template)
}

// UpdateTemplateSlab replaces the slab at the given position
func UpdateTemplateSlab(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid slab index")
		return
	}

	var input SlabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slabs := services.UpdateSlab(template.Slabs, index, models.CommissionSlab{
		MinAmount:  input.MinAmount,
		MaxAmount:  input.MaxAmount,
		Percentage: input.Percentage,
	})
	if err := services.ValidateSlabs(slabs); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := replaceSlabs(template, slabs); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update slab")
		return
	}

	c.JSON(http.StatusOK, template)
}

// RemoveTemplateSlab drops the slab at the given position; the new last
// slab becomes unbounded
func RemoveTemplateSlab(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid slab index")
		return
	}

	slabs := services.RemoveSlab(template.Slabs, index)
	if err := services.ValidateSlabs(slabs); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := replaceSlabs(template, slabs); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove slab")
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteCommissionTemplate removes a template and its slabs
func DeleteCommissionTemplate(c *gin.Context) {
	template, ok := loadTemplate(c)
	if !ok {
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("template_id = ?", template.ID).Delete(&models.CommissionSlab{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete slabs")
		return
	}
	if err := tx.Delete(template).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete commission template")
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Commission template deleted successfully"})
}

// SetServiceCommission upserts a per-service commission override
func SetServiceCommission(c *gin.Context) {
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

	var input ServiceCommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, input.ServiceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var override models.ServiceCommission
	err = config.DB.Where("salon_id = ? AND service_id = ?", salonUUID, input.ServiceID).
		First(&override).Error
	switch {
	case err == nil:
		override.Percentage = input.Percentage
		if err := config.DB.Save(&override).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service commission")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		override = models.ServiceCommission{
			SalonID:    salonUUID,
			ServiceID:  input.ServiceID,
			Percentage: input.Percentage,
		}
		if err := config.DB.Create(&override).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service commission")
			return
		}
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, override)
}

// GetServiceCommissions lists the salon's per-service overrides
func GetServiceCommissions(c *gin.Context) {
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

	var overrides []models.ServiceCommission
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&overrides).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service commissions")
		return
	}

	c.JSON(http.StatusOK, overrides)
}

// controllers/employee.go
package controllers

import (
	"errors"
	"net/http"

	"glowdesk-backend/config"
	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddEmployeeInput defines the expected JSON structure for adding staff
type AddEmployeeInput struct {
	Email                string     `json:"email" binding:"required,email"`
	Name                 string     `json:"name" binding:"required"`
	Phone                string     `json:"phone"`
	Password             string     `json:"password" binding:"required,min=8"`
	Role                 string     `json:"role" binding:"required,oneof=admin stylist"`
	CommissionTemplateID *uuid.UUID `json:"commissionTemplateId"`
}

// UpdateEmployeeInput defines the expected JSON structure for updating staff
type UpdateEmployeeInput struct {
	Name                 *string    `json:"name"`
	Phone                *string    `json:"phone"`
	Role                 *string    `json:"role" binding:"omitempty,oneof=admin stylist"`
	CommissionTemplateID *uuid.UUID `json:"commissionTemplateId"`
	IsActive             *bool      `json:"isActive"`
}

// GetEmployees lists the salon's staff
func GetEmployees(c *gin.Context) {
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

	var employees []models.User
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&employees).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	// Never return password hashes
	out := make([]gin.H, 0, len(employees))
	for _, e := range employees {
		out = append(out, gin.H{
			"id":                   e.ID,
			"email":                e.Email,
			"name":                 e.Name,
			"phone":                e.Phone,
			"role":                 e.Role,
			"commissionTemplateId": e.CommissionTemplateID,
			"isActive":             e.IsActive,
		})
	}

	c.JSON(http.StatusOK, out)
}

// AddEmployee creates a staff account in the salon
func AddEmployee(c *gin.Context) {
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

	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := config.DB.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if input.CommissionTemplateID != nil {
		var template models.CommissionTemplate
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, *input.CommissionTemplateID).
			First(&template).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Commission template not found")
			return
		}
	}

	employee := models.User{
		Email:                input.Email,
		Name:                 input.Name,
		Phone:                input.Phone,
		Password:             input.Password, // Will be hashed in BeforeCreate hook
		Role:                 input.Role,
		SalonID:              salonUUID,
		CommissionTemplateID: input.CommissionTemplateID,
	}

	if err := config.DB.Create(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    employee.ID,
		"email": employee.Email,
		"name":  employee.Name,
		"role":  employee.Role,
	})
}

// UpdateEmployee updates staff details
func UpdateEmployee(c *gin.Context) {
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

	employeeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var employee models.User
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, employeeUUID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Role != nil {
		employee.Role = *input.Role
	}
	if input.CommissionTemplateID != nil {
		var template models.CommissionTemplate
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, *input.CommissionTemplateID).
			First(&template).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Commission template not found")
			return
		}
		employee.CommissionTemplateID = input.CommissionTemplateID
	}
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&employee).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                   employee.ID,
		"email":                employee.Email,
		"name":                 employee.Name,
		"role":                 employee.Role,
		"commissionTemplateId": employee.CommissionTemplateID,
		"isActive":             employee.IsActive,
	})
}

// DeleteEmployee soft deletes a staff account
func DeleteEmployee(c *gin.Context) {
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

	employeeUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ? AND role <> ?", salonUUID, employeeUUID, models.RoleOwner).
		Delete(&models.User{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Employee not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

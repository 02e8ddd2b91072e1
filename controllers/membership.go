// controllers/membership.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"glowdesk-backend/config"
	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateMembershipInput defines the expected JSON structure for creating a membership
type CreateMembershipInput struct {
	Name               string      `json:"name" binding:"required"`
	DiscountType       string      `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue      float64     `json:"discountValue" binding:"required,min=0"`
	MinBillingAmount   *float64    `json:"minBillingAmount"`
	MaxDiscountValue   *float64    `json:"maxDiscountValue"`
	ApplicableServices []uuid.UUID `json:"applicableServices"`
	ApplicablePackages []uuid.UUID `json:"applicablePackages"`
}

// UpdateMembershipInput defines the expected JSON structure for updating a membership
type UpdateMembershipInput struct {
	Name               *string      `json:"name"`
	DiscountType       *string      `json:"discountType" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue      *float64     `json:"discountValue" binding:"omitempty,min=0"`
	MinBillingAmount   *float64     `json:"minBillingAmount"`
	MaxDiscountValue   *float64     `json:"maxDiscountValue"`
	ApplicableServices *[]uuid.UUID `json:"applicableServices"`
	ApplicablePackages *[]uuid.UUID `json:"applicablePackages"`
	IsActive           *bool        `json:"isActive"`
}

// AssignMembershipInput links a membership to a customer
type AssignMembershipInput struct {
	MembershipID uuid.UUID  `json:"membershipId" binding:"required"`
	ValidFrom    *time.Time `json:"validFrom"`
	ValidUntil   *time.Time `json:"validUntil"`
}

// CreateMembership creates a new membership plan for the salon
func CreateMembership(c *gin.Context) {
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

	var input CreateMembershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.DiscountType == models.DiscountPercentage && input.DiscountValue > 100 {
		utils.RespondWithError(c, http.StatusBadRequest, "Percentage discount cannot exceed 100")
		return
	}

	membership := models.Membership{
		SalonID:            salonUUID,
		Name:               input.Name,
		DiscountType:       input.DiscountType,
		DiscountValue:      input.DiscountValue,
		MinBillingAmount:   input.MinBillingAmount,
		MaxDiscountValue:   input.MaxDiscountValue,
		ApplicableServices: input.ApplicableServices,
		ApplicablePackages: input.ApplicablePackages,
		IsActive:           true,
	}

	if err := config.DB.Create(&membership).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create membership")
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// GetMemberships retrieves all membership plans for the salon
func GetMemberships(c *gin.Context) {
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

	var memberships []models.Membership
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&memberships).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve memberships")
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// UpdateMembership updates an existing membership plan
func UpdateMembership(c *gin.Context) {
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

	membershipID := c.Param("id")
	membershipUUID, err := uuid.Parse(membershipID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid membership ID format")
		return
	}

	var input UpdateMembershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var membership models.Membership
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, membershipUUID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Membership not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		membership.Name = *input.Name
	}
	if input.DiscountType != nil {
		membership.DiscountType = *input.DiscountType
	}
	if input.DiscountValue != nil {
		membership.DiscountValue = *input.DiscountValue
	}
	if input.MinBillingAmount != nil {
		membership.MinBillingAmount = input.MinBillingAmount
	}
	if input.MaxDiscountValue != nil {
		membership.MaxDiscountValue = input.MaxDiscountValue
	}
	if input.ApplicableServices != nil {
		membership.ApplicableServices = *input.ApplicableServices
	}
	if input.ApplicablePackages != nil {
		membership.ApplicablePackages = *input.ApplicablePackages
	}
	if input.IsActive != nil {
		membership.IsActive = *input.IsActive
	}

	if membership.DiscountType == models.DiscountPercentage && membership.DiscountValue > 100 {
		utils.RespondWithError(c, http.StatusBadRequest, "Percentage discount cannot exceed 100")
		return
	}

	if err := config.DB.Save(&membership).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update membership")
		return
	}

	c.JSON(http.StatusOK, membership)
}

// DeleteMembership soft deletes a membership plan
func DeleteMembership(c *gin.Context) {
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

	membershipID := c.Param("id")
	membershipUUID, err := uuid.Parse(membershipID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid membership ID format")
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, membershipUUID).
		Delete(&models.Membership{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete membership")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Membership not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Membership deleted successfully"})
}

// AssignMembership links a membership plan to a customer
func AssignMembership(c *gin.Context) {
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

	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input AssignMembershipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate customer and membership belong to the salon
	var customer models.Customer
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var membership models.Membership
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, input.MembershipID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Membership not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	validFrom := time.Now()
	if input.ValidFrom != nil {
		validFrom = *input.ValidFrom
	}

	link := models.CustomerMembership{
		CustomerID:   customerUUID,
		MembershipID: membership.ID,
		ValidFrom:    validFrom,
		ValidUntil:   input.ValidUntil,
		IsActive:     true,
	}

	if err := config.DB.Create(&link).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign membership")
		return
	}

	c.JSON(http.StatusCreated, link)
}

// GetCustomerMemberships lists a customer's membership links
func GetCustomerMemberships(c *gin.Context) {
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

	customerID := c.Param("id")
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var links []models.CustomerMembership
	if err := config.DB.Preload("Membership").
		Where("customer_id = ?", customerUUID).
		Find(&links).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve memberships")
		return
	}

	c.JSON(http.StatusOK, links)
}

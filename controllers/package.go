// controllers/package.go
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

// PackageServiceInput is one bundled service in a package. SellingPrice
// overrides the service's standalone price inside the bundle when set.
type PackageServiceInput struct {
	ServiceID    uuid.UUID `json:"serviceId" binding:"required"`
	SellingPrice *float64  `json:"sellingPrice"`
}

// CreatePackageInput defines the expected JSON structure for creating a package
type CreatePackageInput struct {
	Name           string                `json:"name" binding:"required"`
	Description    string                `json:"description"`
	Price          float64               `json:"price" binding:"required,min=0"`
	IsCustomizable bool                  `json:"isCustomizable"`
	Services       []PackageServiceInput `json:"services" binding:"required,min=1"`
}

// UpdatePackageInput defines the expected JSON structure for updating a package
type UpdatePackageInput struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	Price          *float64               `json:"price"`
	IsCustomizable *bool                  `json:"isCustomizable"`
	Services       *[]PackageServiceInput `json:"services"`
	IsActive       *bool                  `json:"isActive"`
}

// CreatePackage creates a new package with its bundled services
func CreatePackage(c *gin.Context) {
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

	var input CreatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate every bundled service belongs to the salon
	var packageServices []models.PackageService
	for _, item := range input.Services {
		var service models.Service
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, item.ServiceID).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+item.ServiceID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		packageServices = append(packageServices, models.PackageService{
			ID:                  uuid.New(),
			ServiceID:           service.ID,
			PackageSellingPrice: item.SellingPrice,
		})
	}

	pkg := models.Package{
		ID:              uuid.New(),
		SalonID:         salonUUID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		IsCustomizable:  input.IsCustomizable,
		IsActive:        true,
		PackageServices: packageServices,
	}

	if err := config.DB.Create(&pkg).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create package")
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// GetPackages retrieves all packages for the salon
func GetPackages(c *gin.Context) {
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

	var packages []models.Package
	if err := config.DB.Preload("PackageServices.Service").
		Where("salon_id = ?", salonUUID).
		Find(&packages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}

	c.JSON(http.StatusOK, packages)
}

// GetPackage retrieves a specific package by ID
func GetPackage(c *gin.Context) {
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

	packageID := c.Param("id")
	packageUUID, err := uuid.Parse(packageID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var pkg models.Package
	if err := config.DB.Preload("PackageServices.Service").
		Where("salon_id = ? AND id = ?", salonUUID, packageUUID).
		First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// UpdatePackage updates an existing package; when the service list is
// replaced the old bundle rows are dropped and recreated.
func UpdatePackage(c *gin.Context) {
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

	packageID := c.Param("id")
	packageUUID, err := uuid.Parse(packageID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	var input UpdatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var pkg models.Package
	if err := tx.Preload("PackageServices").
		Where("salon_id = ? AND id = ?", salonUUID, packageUUID).
		First(&pkg).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		pkg.Name = *input.Name
	}
	if input.Description != nil {
		pkg.Description = *input.Description
	}
	if input.Price != nil {
		pkg.Price = *input.Price
	}
	if input.IsCustomizable != nil {
		pkg.IsCustomizable = *input.IsCustomizable
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}

	if input.Services != nil {
		// Delete existing bundle rows
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageService{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing services")
			return
		}

		var packageServices []models.PackageService
		for _, item := range *input.Services {
			var service models.Service
			if err := tx.Where("salon_id = ? AND id = ?", salonUUID, item.ServiceID).
				First(&service).Error; err != nil {
				tx.Rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+item.ServiceID.String())
				} else {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				}
				return
			}

			packageServices = append(packageServices, models.PackageService{
				ID:                  uuid.New(),
				PackageID:           pkg.ID,
				ServiceID:           service.ID,
				PackageSellingPrice: item.SellingPrice,
			})
		}
		pkg.PackageServices = packageServices
	}

	if err := tx.Save(&pkg).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update package")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, pkg)
}

// DeletePackage removes a package and its bundle rows
func DeletePackage(c *gin.Context) {
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

	packageID := c.Param("id")
	packageUUID, err := uuid.Parse(packageID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid package ID format")
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var pkg models.Package
	if err := tx.Where("salon_id = ? AND id = ?", salonUUID, packageUUID).
		First(&pkg).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Package not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageService{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete package services")
		return
	}

	if err := tx.Delete(&pkg).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete package")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}

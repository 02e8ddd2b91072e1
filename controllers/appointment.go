// controllers/appointment.go
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

// notifier is injected from main so checkout can send confirmations.
var notifier *services.Notifier

func SetNotifier(n *services.Notifier) {
	notifier = n
}

// BookingItemInput is one selected service or package.
type BookingItemInput struct {
	Kind    string     `json:"kind" binding:"required,oneof=service package"`
	ItemID  uuid.UUID  `json:"itemId" binding:"required"`
	StaffID *uuid.UUID `json:"staffId"`

	// AddedServices customizes a package beyond its base bundle.
	AddedServices []uuid.UUID `json:"addedServices"`
}

// CreateAppointmentInput defines the expected JSON structure for checkout
type CreateAppointmentInput struct {
	CustomerID      uuid.UUID          `json:"customerId" binding:"required"`
	AppointmentDate *time.Time         `json:"appointmentDate"`
	Items           []BookingItemInput `json:"items" binding:"required,min=1"`
	DiscountType    string             `json:"discountType" binding:"omitempty,oneof=none percentage fixed"`
	DiscountValue   float64            `json:"discountValue" binding:"min=0"`
	CouponDiscount  float64            `json:"couponDiscount" binding:"min=0"`
	RequireStylist  bool               `json:"requireStylist"`
	PaymentStatus   string             `json:"paymentStatus" binding:"oneof=paid unpaid partial"`
	PaidAmount      float64            `json:"paidAmount" binding:"min=0"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
}

// CreateAppointment runs the whole checkout: workflow guards, pricing,
// membership discount resolution, adjusted line prices and a single
// transaction persisting the appointment with its bookings.
func CreateAppointment(c *gin.Context) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return
	}
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate customer exists in the same salon
	var customer models.Customer
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Load the salon's catalog once; the pricing layer works over these
	// slices, never the database.
	var catalogServices []models.Service
	if err := config.DB.Where("salon_id = ? AND is_active = ?", salonUUID, true).
		Find(&catalogServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load services")
		return
	}
	var catalogPackages []models.Package
	if err := config.DB.Preload("PackageServices.Service").
		Where("salon_id = ? AND is_active = ?", salonUUID, true).
		Find(&catalogPackages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load packages")
		return
	}

	// Build the selection and run the workflow guards
	flow := services.NewCheckoutFlow(input.RequireStylist)
	flow.SelectCustomer(customer.ID)
	flow.Selection.CustomizedServices = make(map[uuid.UUID][]uuid.UUID)

	for _, item := range input.Items {
		switch item.Kind {
		case models.BookingItemService:
			flow.Selection.ServiceIDs = append(flow.Selection.ServiceIDs, item.ItemID)
		case models.BookingItemPackage:
			flow.Selection.PackageIDs = append(flow.Selection.PackageIDs, item.ItemID)
			if len(item.AddedServices) > 0 {
				flow.Selection.CustomizedServices[item.ItemID] = item.AddedServices
			}
		}
		if item.StaffID != nil {
			flow.AssignStylist(item.ItemID, *item.StaffID)
		}
	}

	if err := flow.ProceedToCheckout(); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Validate the selected items against the catalog; unknown ids are a
	// client error at this boundary even though the pricing layer would
	// skip them.
	for _, item := range input.Items {
		switch item.Kind {
		case models.BookingItemService:
			if !serviceInCatalog(catalogServices, item.ItemID) {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+item.ItemID.String())
				return
			}
		case models.BookingItemPackage:
			pkg := packageInCatalog(catalogPackages, item.ItemID)
			if pkg == nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Package not found: "+item.ItemID.String())
				return
			}
			if len(item.AddedServices) > 0 && !pkg.IsCustomizable {
				utils.RespondWithError(c, http.StatusBadRequest, "Package is not customizable: "+pkg.Name)
				return
			}
		}
	}

	sel := flow.Selection
	subtotal := services.TotalPrice(sel, catalogServices, catalogPackages)

	discountType := input.DiscountType
	if discountType == "" {
		discountType = models.DiscountNone
	}

	// Resolve the best membership discount for this customer
	var links []models.CustomerMembership
	if err := config.DB.Preload("Membership").
		Where("customer_id = ?", customer.ID).
		Find(&links).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load memberships")
		return
	}
	active := services.ActiveMemberships(links, time.Now())
	membershipDiscount := services.BestMembershipDiscount(active, sel, catalogServices, catalogPackages)

	discountedTotal := services.FinalPrice(subtotal, discountType, input.DiscountValue) -
		membershipDiscount.Amount - input.CouponDiscount
	if discountedTotal < 0 {
		discountedTotal = 0
	}
	total := services.CheckoutTotal(subtotal, discountType, input.DiscountValue,
		membershipDiscount.Amount, input.CouponDiscount, salon.TaxRate)

	adjusted := services.AdjustedServicePrices(sel, catalogServices, catalogPackages, discountedTotal)

	// Build the booking rows
	var bookings []models.Booking
	for _, item := range input.Items {
		switch item.Kind {
		case models.BookingItemService:
			svc := serviceByID(catalogServices, item.ItemID)
			bookings = append(bookings, models.Booking{
				ItemKind:      models.BookingItemService,
				ItemID:        svc.ID,
				ItemName:      svc.Name,
				StaffID:       item.StaffID,
				UnitPrice:     svc.SellingPrice,
				AdjustedPrice: adjusted[svc.ID],
				Duration:      svc.Duration,
			})
		case models.BookingItemPackage:
			pkg := packageInCatalog(catalogPackages, item.ItemID)
			unitPrice := services.PackagePrice(pkg, sel.CustomizedServices[pkg.ID], catalogServices)
			pkgSel := services.Selection{
				PackageIDs:         []uuid.UUID{pkg.ID},
				CustomizedServices: sel.CustomizedServices,
			}
			bookings = append(bookings, models.Booking{
				ItemKind:      models.BookingItemPackage,
				ItemID:        pkg.ID,
				ItemName:      pkg.Name,
				StaffID:       item.StaffID,
				UnitPrice:     unitPrice,
				AdjustedPrice: services.AdjustedPrice(unitPrice, subtotal, discountedTotal),
				Duration:      services.TotalDuration(pkgSel, catalogServices, catalogPackages),
			})
		}
	}

	appointmentDate := time.Now()
	if input.AppointmentDate != nil {
		appointmentDate = *input.AppointmentDate
	}

	appointment := models.Appointment{
		ID:                 uuid.New(),
		AppointmentNumber:  "APT-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		SalonID:            salonUUID,
		CreatedByUserID:    uuid.Must(uuid.Parse(userID.(string))),
		CustomerID:         customer.ID,
		AppointmentDate:    appointmentDate,
		Status:             models.AppointmentScheduled,
		Subtotal:           subtotal,
		DiscountType:       discountType,
		DiscountValue:      input.DiscountValue,
		MembershipDiscount: membershipDiscount.Amount,
		MembershipID:       membershipDiscount.MembershipID,
		CouponDiscount:     input.CouponDiscount,
		TaxRate:            salon.TaxRate,
		Total:              total,
		PaymentStatus:      input.PaymentStatus,
		PaidAmount:         input.PaidAmount,
		PaymentMethod:      input.PaymentMethod,
		Notes:              input.Notes,
		Bookings:           bookings,
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	// Update customer stats
	if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"total_visits": gorm.Expr("total_visits + ?", 1),
			"total_spent":  gorm.Expr("total_spent + ?", total),
			"last_visit":   appointmentDate,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
		return
	}

	tx.Commit()

	// The flow reaches the summary stage only against the persisted id
	if err := flow.CompleteCheckout(appointment.ID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Checkout could not complete")
		return
	}

	if notifier != nil && salon.SMSConfirmations {
		go notifier.SendBookingConfirmation(appointment, customer)
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":    appointment,
		"adjustedPrices": adjusted,
		"membership": gin.H{
			"discount": membershipDiscount.Amount,
			"id":       membershipDiscount.MembershipID,
			"name":     membershipDiscount.MembershipName,
		},
	})
}

func serviceInCatalog(catalog []models.Service, id uuid.UUID) bool {
	return serviceByID(catalog, id) != nil
}

func serviceByID(catalog []models.Service, id uuid.UUID) *models.Service {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

func packageInCatalog(catalog []models.Package, id uuid.UUID) *models.Package {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// GetAppointments retrieves all appointments for the salon
func GetAppointments(c *gin.Context) {
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

	query := config.DB.Preload("Bookings").Where("salon_id = ?", salonUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date desc").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
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

	appointmentID := c.Param("id")
	appointmentUUID, err := uuid.Parse(appointmentID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Bookings").
		Where("salon_id = ? AND id = ?", salonUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CompleteAppointment marks an appointment as completed so its revenue
// counts toward pay runs
func CompleteAppointment(c *gin.Context) {
	updateAppointmentStatus(c, models.AppointmentCompleted)
}

// CancelAppointment marks an appointment as cancelled and reverses the
// customer stats recorded at checkout
func CancelAppointment(c *gin.Context) {
	updateAppointmentStatus(c, models.AppointmentCancelled)
}

func updateAppointmentStatus(c *gin.Context, status string) {
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

	appointmentID := c.Param("id")
	appointmentUUID, err := uuid.Parse(appointmentID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var appointment models.Appointment
	if err := tx.Where("salon_id = ? AND id = ?", salonUUID, appointmentUUID).
		First(&appointment).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.Status == status {
		tx.Rollback()
		c.JSON(http.StatusOK, appointment)
		return
	}

	previous := appointment.Status
	appointment.Status = status
	if err := tx.Save(&appointment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	// Cancelling reverses the stats recorded at checkout
	if status == models.AppointmentCancelled && previous != models.AppointmentCancelled {
		if err := tx.Model(&models.Customer{}).Where("id = ?", appointment.CustomerID).
			Updates(map[string]interface{}{
				"total_visits": gorm.Expr("total_visits - ?", 1),
				"total_spent":  gorm.Expr("total_spent - ?", appointment.Total),
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, appointment)
}

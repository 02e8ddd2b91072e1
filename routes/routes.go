package routes

import (
	"glowdesk-backend/config"
	"glowdesk-backend/controllers"
	"glowdesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"https://admin.glowdesk.app",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
			customers.POST("/:id/memberships", controllers.AssignMembership)
			customers.GET("/:id/memberships", controllers.GetCustomerMemberships)
		}

		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Package routes
		packages := api.Group("/packages")
		{
			packages.POST("", controllers.CreatePackage)
			packages.GET("", controllers.GetPackages)
			packages.GET("/:id", controllers.GetPackage)
			packages.PUT("/:id", controllers.UpdatePackage)
			packages.DELETE("/:id", controllers.DeletePackage)
		}

		// Membership routes
		memberships := api.Group("/memberships")
		{
			memberships.POST("", controllers.CreateMembership)
			memberships.GET("", controllers.GetMemberships)
			memberships.PUT("/:id", controllers.UpdateMembership)
			memberships.DELETE("/:id", controllers.DeleteMembership)
		}

		// Appointment (checkout) routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id/complete", controllers.CompleteAppointment)
			appointments.PUT("/:id/cancel", controllers.CancelAppointment)
		}

		// Commission template routes
		templates := api.Group("/commission-templates")
		{
			templates.POST("", controllers.CreateCommissionTemplate)
			templates.GET("", controllers.GetCommissionTemplates)
			templates.GET("/:id", controllers.GetCommissionTemplate)
			templates.PUT("/:id", controllers.UpdateCommissionTemplate)
			templates.DELETE("/:id", controllers.DeleteCommissionTemplate)
			templates.POST("/:id/slabs", controllers.AddTemplateSlab)
			templates.PUT("/:id/slabs/:index", controllers.UpdateTemplateSlab)
			templates.DELETE("/:id/slabs/:index", controllers.RemoveTemplateSlab)
		}

		// Per-service commission overrides
		api.POST("/service-commissions", controllers.SetServiceCommission)
		api.GET("/service-commissions", controllers.GetServiceCommissions)

		// Payroll routes
		payroll := api.Group("/payroll")
		{
			payroll.POST("/pay-periods", controllers.CreatePayPeriod)
			payroll.GET("/pay-periods", controllers.GetPayPeriods)
			payroll.PUT("/pay-periods/:id/close", controllers.ClosePayPeriod)
			payroll.POST("/pay-periods/:id/runs", controllers.GeneratePayRun)
			payroll.GET("/runs", controllers.GetPayRuns)
			payroll.GET("/runs/:id", controllers.GetPayRun)
			payroll.PUT("/runs/:id/items/:itemId/adjustment", controllers.AdjustPayRunItem)
			payroll.PUT("/runs/:id/finalize", controllers.FinalizePayRun)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := auth.Group("/profile", utils.AuthMiddleware())
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/update-salon", controllers.UpdateSalonProfile)
			profile.PUT("/update-hours", controllers.UpdateWorkingHours)
			profile.PUT("/update-notifications", controllers.UpdateNotifications)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}
	}

	return r
}

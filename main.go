package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pizzashop/backoffice-api/config"
	"github.com/pizzashop/backoffice-api/controllers"
	"github.com/pizzashop/backoffice-api/middleware"
	"github.com/pizzashop/backoffice-api/models"
	"github.com/pizzashop/backoffice-api/repository"
	"github.com/pizzashop/backoffice-api/services"
)

func main() {
	log.Println("Starting pizzashop back-office API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed lookup data and the bootstrap admin
	if err := config.SeedLookups(db); err != nil {
		log.Fatalf("Failed to seed lookup data: %v", err)
	}
	if err := config.SeedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	router := setupRouter(db)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires repositories, services and controllers onto the gin engine
func setupRouter(db *gorm.DB) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	tableRepo := repository.NewTableRepository(db)
	waitingRepo := repository.NewWaitingRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	tableService := services.NewTableService(db, tableRepo)
	waitingService := services.NewWaitingService(db, waitingRepo, tableRepo, orderRepo)
	userService := services.NewUserService(db, userRepo)
	dashboardService := services.NewDashboardService(db, dashboardRepo)

	tablesController := controllers.NewTablesController(tableService, waitingService)
	waitingController := controllers.NewWaitingController(waitingService)
	usersController := controllers.NewUsersController(userService)
	dashboardController := controllers.NewDashboardController(dashboardService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		v1.GET("/sections", tablesController.GetSections)
		v1.GET("/sections/tables", tablesController.GetSectionsWithTables)
		v1.GET("/sections/available", tablesController.GetSectionsWithAvailableTables)
		v1.GET("/sections/:id/tables/available", tablesController.GetAvailableTables)
		v1.GET("/tables/:id/order", tablesController.GetOrderByTable)
		v1.POST("/tables/assign", tablesController.AssignTables)

		v1.GET("/waiting/sections", waitingController.GetWaitingListSections)
		v1.GET("/waiting", waitingController.GetWaitingTokens)
		v1.GET("/waiting/customer", waitingController.GetCustomerByEmail)
		v1.GET("/waiting/:id", waitingController.GetToken)
		v1.POST("/waiting", waitingController.AddWaitingToken)
		v1.PUT("/waiting/:id", waitingController.EditWaitingToken)
		v1.DELETE("/waiting/:id", waitingController.DeleteWaitingToken)

		v1.GET("/users", usersController.GetUsers)
		v1.POST("/users", usersController.AddUser)
		v1.GET("/users/:id", usersController.GetUserForEdit)
		v1.PUT("/users/:id", usersController.EditUser)
		v1.DELETE("/users/:id", usersController.DeleteUser)
		v1.GET("/roles", usersController.GetRoles)
		v1.GET("/roles/:name/permissions", usersController.GetRolePermissions)
		v1.PUT("/roles/permissions", usersController.UpdateRolePermissions)
		v1.GET("/profile", usersController.GetProfile)
		v1.PUT("/profile", usersController.UpdateProfile)
		v1.POST("/profile/password", usersController.ChangePassword)

		v1.GET("/dashboard", dashboardController.GetDashboard)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pizzashop back-office API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_NOT_CONNECTED",
				"message": "Database is not connected",
			},
		})
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}

package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hanifauzan/bisnisku-backend/internal/activity"
	"github.com/hanifauzan/bisnisku-backend/internal/auth"
	"github.com/hanifauzan/bisnisku-backend/internal/customer"
	"github.com/hanifauzan/bisnisku-backend/internal/dashboard"
	"github.com/hanifauzan/bisnisku-backend/internal/debt"
	"github.com/hanifauzan/bisnisku-backend/internal/inventory"
	"github.com/hanifauzan/bisnisku-backend/internal/note"
	"github.com/hanifauzan/bisnisku-backend/internal/product"
	"github.com/hanifauzan/bisnisku-backend/internal/report"
	"github.com/hanifauzan/bisnisku-backend/internal/sales"
	"github.com/hanifauzan/bisnisku-backend/pkg/database"
	"github.com/hanifauzan/bisnisku-backend/pkg/middleware"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Setup Gin router
	r := gin.Default()

	// Middleware
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		authHandler := auth.NewHandler(db)
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.POST("/auth/refresh", authHandler.RefreshToken)

		// Google OAuth routes
		v1.GET("/auth/google", authHandler.GoogleLogin)
		v1.GET("/auth/google/callback", authHandler.GoogleCallback)

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth - get current user
			protected.GET("/auth/me", authHandler.GetMe)

			// Dashboard routes
			dashboardHandler := dashboard.NewHandler(db)
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)
			protected.GET("/dashboard/top-products", dashboardHandler.GetTopProducts)
			protected.GET("/dashboard/recent-sales", dashboardHandler.GetRecentSales)

			// Product routes
			productHandler := product.NewHandler(db)
			protected.GET("/products", productHandler.List)
			protected.POST("/products", productHandler.Create)
			protected.GET("/products/:id", productHandler.Get)
			protected.PUT("/products/:id", productHandler.Update)
			protected.DELETE("/products/:id", productHandler.Delete)
			protected.PATCH("/products/:id/toggle", productHandler.ToggleActive)

			// Sales routes
			salesHandler := sales.NewHandler(db)
			protected.GET("/sales", salesHandler.List)
			protected.POST("/sales", salesHandler.Create)
			protected.GET("/sales/:id", salesHandler.Get)
			protected.DELETE("/sales/:id", salesHandler.Delete)

			// Debtor routes
			debtHandler := debt.NewHandler(db)
			protected.GET("/debtors", debtHandler.ListOpen)
			protected.GET("/debtors/summary", debtHandler.GetSummary)
			protected.POST("/debtors/:id/pay", debtHandler.MarkPaid)

			// Customer routes
			customerHandler := customer.NewHandler(db)
			protected.GET("/customers", customerHandler.List)
			protected.POST("/customers", customerHandler.Create)
			protected.GET("/customers/:id", customerHandler.Get)
			protected.PUT("/customers/:id", customerHandler.Update)
			protected.DELETE("/customers/:id", customerHandler.Delete)
			protected.GET("/customers/:id/stats", customerHandler.GetStats)

			// Inventory routes
			inventoryHandler := inventory.NewHandler(db)
			protected.GET("/inventory", inventoryHandler.GetInventory)
			protected.GET("/inventory/summary", inventoryHandler.GetSummary)
			protected.GET("/inventory/alerts", inventoryHandler.GetAlerts)
			protected.GET("/inventory/export", inventoryHandler.ExportExcel)
			protected.PUT("/inventory/:id/stock", inventoryHandler.UpdateStock)

			// Reports routes
			reportHandler := report.NewHandler(db)
			protected.GET("/reports/sales", reportHandler.GetSalesReport)
			protected.GET("/reports/products", reportHandler.GetProductReport)
			protected.GET("/reports/categories", reportHandler.GetCategoryReport)
			protected.GET("/reports/export", reportHandler.ExportExcel)

			// Note routes
			noteHandler := note.NewHandler(db)
			protected.GET("/notes", noteHandler.List)
			protected.POST("/notes", noteHandler.Create)
			protected.GET("/notes/:id", noteHandler.Get)
			protected.PUT("/notes/:id", noteHandler.Update)
			protected.DELETE("/notes/:id", noteHandler.Delete)
			protected.PATCH("/notes/:id/pin", noteHandler.TogglePin)

			// Activity log
			activityHandler := activity.NewHandler(db)
			protected.GET("/activity", activityHandler.List)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

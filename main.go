package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tailorlink/tailorlink-api/config"
	"github.com/tailorlink/tailorlink-api/controllers"
	"github.com/tailorlink/tailorlink-api/middleware"
	"github.com/tailorlink/tailorlink-api/models"
	"github.com/tailorlink/tailorlink-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting TailorLink API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.TailorApplication{},
		&models.Order{},
		&models.Chat{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize S3 for avatar storage (optional in development)
	if cfg.AWSS3Bucket != "" {
		if _, err := services.InitS3Service(); err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		log.Println("S3 service initialized")
	} else {
		log.Println("AWS_S3_BUCKET not set, avatar uploads disabled")
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with CORS and the full /api/v1 route table
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// CORS for browser clients
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Public tailor directory
		v1.GET("/tailors", controllers.ListTailors)
		v1.GET("/tailors/:id", controllers.GetTailor)

		// Everything else requires a valid Auth0 token
		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			// Account and profile
			authorized.POST("/users", controllers.CreateUser)
			authorized.GET("/users/me", controllers.GetMe)
			authorized.GET("/users/me/profile", controllers.GetMyProfile)
			authorized.PUT("/users/me/profile", controllers.UpdateMyProfile)
			authorized.POST("/users/me/avatar", controllers.UploadAvatar)

			// Tailor applications
			authorized.POST("/tailors/apply", controllers.ApplyAsTailor)
			authorized.GET("/admin/applications", controllers.ListApplications)
			authorized.PUT("/admin/applications/:id", controllers.DecideApplication)

			// Orders and payments
			authorized.POST("/orders", controllers.CreateOrder)
			authorized.GET("/orders", controllers.ListOrders)
			authorized.GET("/orders/:id", controllers.GetOrder)
			authorized.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			authorized.GET("/orders/:id/payment", controllers.GetPaymentBreakdown)
			authorized.POST("/orders/:id/pay", controllers.PayOrder)

			// Messaging
			authorized.GET("/chats", controllers.ListChats)
			authorized.POST("/chats", controllers.CreateChat)
			authorized.GET("/chats/:id/messages", controllers.ListMessages)
			authorized.POST("/chats/:id/messages", controllers.SendMessage)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "TailorLink API is running",
	})
}

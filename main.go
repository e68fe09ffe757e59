package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/hustlenetwork/hustle_backend/config"
	"github.com/hustlenetwork/hustle_backend/middleware"
	"github.com/hustlenetwork/hustle_backend/routes"
	"github.com/hustlenetwork/hustle_backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to database. A failed connection is not fatal: the server runs
	// in degraded mode and /test reports the state.
	client, err := config.ConnectDB()
	if err != nil {
		log.Printf("Warning: database connection failed: %v", err)
		log.Println("Running in degraded mode, store-backed endpoints will return 503")
		client = nil
	}

	// Connect to Redis (optional, trending hashtags only)
	redisClient := config.ConnectRedis()

	// Create the engagement feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(rateLimiter.RateLimit())

	// Setup routes
	routes.SetupRoutes(e, client, redisClient, hub)

	// Ensure uploads directories exist
	os.MkdirAll("uploads", 0755)
	os.MkdirAll("uploads/thumbnails", 0755)

	// Serve uploaded media
	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

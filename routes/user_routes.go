package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustlenetwork/hustle_backend/controllers"
)

// RegisterUserRoutes sets up all user-related routes
func RegisterUserRoutes(e *echo.Echo, db *mongo.Database) {
	userController := controllers.NewUserController(db)

	users := e.Group("/api/users")
	users.POST("", userController.CreateUser)
	users.GET("", userController.ListUsers)
	users.GET("/:id", userController.GetUser)
}

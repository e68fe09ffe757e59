package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustlenetwork/hustle_backend/controllers"
)

// RegisterSearchRoutes sets up the combined user/reel search route
func RegisterSearchRoutes(e *echo.Echo, db *mongo.Database) {
	searchController := controllers.NewSearchController(db)

	e.GET("/api/search", searchController.Search)
}

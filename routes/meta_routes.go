package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/hustlenetwork/hustle_backend/controllers"
)

// RegisterMetaRoutes sets up the static metadata routes
func RegisterMetaRoutes(e *echo.Echo, redisClient *redis.Client) {
	metaController := controllers.NewMetaController(redisClient)

	meta := e.Group("/api/meta")
	meta.GET("/categories", metaController.GetCategories)
	meta.GET("/pricing", metaController.GetPricing)
	meta.GET("/trending", metaController.GetTrending)
}

package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hustlenetwork/hustle_backend/config"
	"github.com/hustlenetwork/hustle_backend/controllers"
	"github.com/hustlenetwork/hustle_backend/repositories"
	"github.com/hustlenetwork/hustle_backend/websocket"
)

// SetupRoutes configures all API routes by calling the individual route
// registration functions. The mongo client may be nil; everything downstream
// treats that as degraded mode.
func SetupRoutes(e *echo.Echo, client *mongo.Client, redisClient *redis.Client, hub *websocket.Hub) {
	db := config.Database(client)

	systemController := controllers.NewSystemController(client, redisClient)
	e.GET("/", systemController.Root)
	e.GET("/test", systemController.TestDatabase)

	e.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(c, hub)
	})

	RegisterMetaRoutes(e, redisClient)
	RegisterReelRoutes(e, repositories.NewReelRepository(db), hub, redisClient)
	RegisterSearchRoutes(e, db)
	RegisterUserRoutes(e, db)
	RegisterVendorRoutes(e, db)
}

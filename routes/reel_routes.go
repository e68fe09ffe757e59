package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/hustlenetwork/hustle_backend/controllers"
	"github.com/hustlenetwork/hustle_backend/repositories"
	"github.com/hustlenetwork/hustle_backend/websocket"
)

// RegisterReelRoutes sets up all reel-related routes
func RegisterReelRoutes(e *echo.Echo, repo *repositories.ReelRepository, hub *websocket.Hub, redisClient *redis.Client) {
	reelController := controllers.NewReelController(repo, hub, redisClient)

	reels := e.Group("/api/reels")
	reels.POST("", reelController.UploadReel)
	reels.GET("", reelController.ListReels)
	reels.POST("/:id/like", reelController.LikeReel)
	reels.POST("/:id/comment", reelController.CommentReel)
}

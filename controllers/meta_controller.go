package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"

	"github.com/hustlenetwork/hustle_backend/models"
)

type MetaController struct {
	Redis *redis.Client
}

func NewMetaController(redisClient *redis.Client) *MetaController {
	return &MetaController{Redis: redisClient}
}

// GetCategories handles GET /api/meta/categories.
func (mc *MetaController) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Categories())
}

// GetPricing handles GET /api/meta/pricing.
func (mc *MetaController) GetPricing(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Pricing())
}

// TrendingHashtag is one entry of the trending list.
type TrendingHashtag struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// GetTrending handles GET /api/meta/trending. Top hashtags by upload count,
// served from Redis; an empty list when Redis is not configured.
func (mc *MetaController) GetTrending(c echo.Context) error {
	limit := int64(10)
	if v := c.QueryParam("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	trending := []TrendingHashtag{}
	if mc.Redis == nil {
		return c.JSON(http.StatusOK, trending)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := mc.Redis.ZRevRangeWithScores(ctx, TrendingHashtagsKey, 0, limit-1).Result()
	if err != nil {
		// Trending is best effort, degrade to an empty list
		return c.JSON(http.StatusOK, trending)
	}

	for _, entry := range entries {
		tag, ok := entry.Member.(string)
		if !ok {
			continue
		}
		trending = append(trending, TrendingHashtag{Tag: tag, Count: int64(entry.Score)})
	}

	return c.JSON(http.StatusOK, trending)
}

package controllers

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hustlenetwork/hustle_backend/models"
)

const (
	userSearchLimit = 10
	reelSearchLimit = 20
)

type SearchController struct {
	DB *mongo.Database
}

func NewSearchController(db *mongo.Database) *SearchController {
	return &SearchController{DB: db}
}

// Search handles GET /api/search. Case-insensitive substring containment over
// user names and reel captions/hashtags. All matched users come first, then
// all matched reels, both in the store's natural order; no relevance scoring.
// An empty query matches everything.
func (sc *SearchController) Search(c echo.Context) error {
	if sc.DB == nil {
		return c.JSON(http.StatusServiceUnavailable, models.Response{
			Status:  http.StatusServiceUnavailable,
			Message: "Database not available",
		})
	}

	q := c.QueryParam("q")
	// The query is matched literally, never interpreted as a pattern
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	results := []models.SearchResult{}

	userCursor, err := sc.DB.Collection("user").Find(ctx,
		bson.M{"name": pattern},
		options.Find().SetLimit(userSearchLimit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Search failed",
		})
	}
	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Search failed",
		})
	}
	for _, u := range users {
		results = append(results, models.NewUserSearchResult(u))
	}

	reelCursor, err := sc.DB.Collection("reel").Find(ctx,
		bson.M{"$or": []bson.M{
			{"caption": pattern},
			{"hashtags": pattern},
		}},
		options.Find().SetLimit(reelSearchLimit))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Search failed",
		})
	}
	var reels []models.Reel
	if err := reelCursor.All(ctx, &reels); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Search failed",
		})
	}
	for _, r := range reels {
		results = append(results, models.NewReelSearchResult(r))
	}

	return c.JSON(http.StatusOK, results)
}

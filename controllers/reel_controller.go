package controllers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hustlenetwork/hustle_backend/models"
	"github.com/hustlenetwork/hustle_backend/repositories"
	"github.com/hustlenetwork/hustle_backend/utils"
	"github.com/hustlenetwork/hustle_backend/websocket"
)

// TrendingHashtagsKey is the Redis sorted set tracking hashtag upload counts.
const TrendingHashtagsKey = "trending:hashtags"

type ReelController struct {
	Repo  *repositories.ReelRepository
	Hub   *websocket.Hub
	Redis *redis.Client
}

func NewReelController(repo *repositories.ReelRepository, hub *websocket.Hub, redisClient *redis.Client) *ReelController {
	return &ReelController{Repo: repo, Hub: hub, Redis: redisClient}
}

// UploadReel handles POST /api/reels. The file is written to disk first and
// the metadata inserted after; if the insert fails the file is orphaned,
// there is no rollback.
func (rc *ReelController) UploadReel(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "File is required",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !utils.IsVideoContentType(contentType) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Only video uploads are allowed",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}

	filename := utils.TimestampedFilename(fileHeader.Filename)
	relativePath, err := utils.SaveUpload(fileData, filename)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save uploaded file",
		})
	}

	// Thumbnailing is best effort; a reel without a thumbnail is fine
	thumbnailURL := ""
	if thumb, err := utils.GenerateVideoThumbnail(relativePath); err == nil {
		thumbnailURL = utils.PublicURL(thumb)
	} else {
		log.Printf("thumbnail generation failed for %s: %v", filename, err)
	}

	now := time.Now().UTC()
	hashtags := utils.ParseHashtags(c.FormValue("hashtags"))
	reel := models.Reel{
		VideoURL:     utils.PublicURL(relativePath),
		ThumbnailURL: thumbnailURL,
		Caption:      c.FormValue("caption"),
		Hashtags:     hashtags,
		Likes:        []string{},
		Comments:     []models.Comment{},
		UserID:       c.FormValue("user_id"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := rc.Repo.Insert(ctx, reel)
	if err != nil {
		return rc.errorResponse(c, err)
	}

	// Read-after-write: the response is the persisted document, not a local echo
	saved, err := rc.Repo.FindByID(ctx, id)
	if err != nil {
		return rc.errorResponse(c, err)
	}

	rc.recordTrending(ctx, hashtags)

	view := models.NewReelView(saved)
	rc.Hub.Broadcast(websocket.Event{
		Type:   websocket.EventReelCreated,
		ReelID: view.ID,
		Data:   view,
	})

	return c.JSON(http.StatusOK, view)
}

// ListReels handles GET /api/reels. Newest first; limit and skip are trusted
// caller values, the limit is uncapped.
func (rc *ReelController) ListReels(c echo.Context) error {
	limit := int64(20)
	if v := c.QueryParam("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			limit = parsed
		}
	}

	skip := int64(0)
	if v := c.QueryParam("skip"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			skip = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	reels, err := rc.Repo.List(ctx, limit, skip)
	if err != nil {
		return rc.errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.NewReelViews(reels))
}

// LikeReel handles POST /api/reels/:id/like. With user_id the like is a
// symmetric toggle; without it the anon sentinel is added.
func (rc *ReelController) LikeReel(c echo.Context) error {
	id, err := repositories.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid reel id",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	reel, err := rc.Repo.ToggleLike(ctx, id, c.QueryParam("user_id"))
	if err != nil {
		return rc.errorResponse(c, err)
	}

	view := models.NewReelView(reel)
	rc.Hub.Broadcast(websocket.Event{
		Type:   websocket.EventReelLiked,
		ReelID: view.ID,
		Data:   map[string]int{"likes": view.Likes},
	})

	return c.JSON(http.StatusOK, view)
}

// CommentReel handles POST /api/reels/:id/comment.
func (rc *ReelController) CommentReel(c echo.Context) error {
	id, err := repositories.ParseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid reel id",
		})
	}

	var req models.CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Comment text is required",
		})
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    req.UserID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	reel, err := rc.Repo.AddComment(ctx, id, comment)
	if err != nil {
		return rc.errorResponse(c, err)
	}

	view := models.NewReelView(reel)
	rc.Hub.Broadcast(websocket.Event{
		Type:   websocket.EventReelCommented,
		ReelID: view.ID,
		Data:   models.NewCommentView(comment),
	})

	return c.JSON(http.StatusOK, view)
}

// recordTrending bumps each hashtag's upload counter. Best effort; a missing
// or failing Redis never affects the upload.
func (rc *ReelController) recordTrending(ctx context.Context, hashtags []string) {
	if rc.Redis == nil {
		return
	}
	for _, tag := range hashtags {
		if err := rc.Redis.ZIncrBy(ctx, TrendingHashtagsKey, 1, tag).Err(); err != nil {
			log.Printf("trending counter update failed: %v", err)
			return
		}
	}
}

func (rc *ReelController) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, models.Response{
			Status:  http.StatusServiceUnavailable,
			Message: "Database not available",
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Reel not found",
		})
	default:
		log.Printf("reel operation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hustlenetwork/hustle_backend/models"
)

type UserController struct {
	DB *mongo.Database
}

func NewUserController(db *mongo.Database) *UserController {
	return &UserController{DB: db}
}

// CreateUser handles POST /api/users.
func (uc *UserController) CreateUser(c echo.Context) error {
	if uc.DB == nil {
		return uc.unavailable(c)
	}

	var req models.UserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name and a valid email are required",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	collection := uc.DB.Collection("user")

	var existing models.User
	err := collection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "A user with this email already exists",
		})
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Printf("user lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	now := time.Now().UTC()
	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		// The unique email index still races the pre-check
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "A user with this email already exists",
			})
		}
		log.Printf("user insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	// Read back the persisted document
	var saved models.User
	if err := collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&saved); err != nil {
		log.Printf("user read-back failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	return c.JSON(http.StatusOK, saved)
}

// GetUser handles GET /api/users/:id.
func (uc *UserController) GetUser(c echo.Context) error {
	if uc.DB == nil {
		return uc.unavailable(c)
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err = uc.DB.Collection("user").FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch user",
		})
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/users.
func (uc *UserController) ListUsers(c echo.Context) error {
	if uc.DB == nil {
		return uc.unavailable(c)
	}

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

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := uc.DB.Collection("user").Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch users",
		})
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch users",
		})
	}

	return c.JSON(http.StatusOK, users)
}

func (uc *UserController) unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, models.Response{
		Status:  http.StatusServiceUnavailable,
		Message: "Database not available",
	})
}

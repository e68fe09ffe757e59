package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hustlenetwork/hustle_backend/models"
)

type VendorController struct {
	DB *mongo.Database
}

func NewVendorController(db *mongo.Database) *VendorController {
	return &VendorController{DB: db}
}

// CreateVendor handles POST /api/vendors. The category must be one of the
// static catalog keys and pricing_type one of the pricing options.
func (vc *VendorController) CreateVendor(c echo.Context) error {
	if vc.DB == nil {
		return vc.unavailable(c)
	}

	var req models.VendorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "user_id, title, a known category and a valid pricing_type are required",
		})
	}

	now := time.Now().UTC()
	vendor := models.Vendor{
		UserID:       req.UserID,
		Category:     req.Category,
		Title:        req.Title,
		Description:  req.Description,
		PricingType:  req.PricingType,
		PriceCredits: req.PriceCredits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	collection := vc.DB.Collection("vendor")
	result, err := collection.InsertOne(ctx, vendor)
	if err != nil {
		log.Printf("vendor insert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create vendor offering",
		})
	}

	var saved models.Vendor
	if err := collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&saved); err != nil {
		log.Printf("vendor read-back failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create vendor offering",
		})
	}

	return c.JSON(http.StatusOK, saved)
}

// ListVendors handles GET /api/vendors, optionally filtered by category.
func (vc *VendorController) ListVendors(c echo.Context) error {
	if vc.DB == nil {
		return vc.unavailable(c)
	}

	filter := bson.M{}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := vc.DB.Collection("vendor").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch vendor offerings",
		})
	}

	vendors := []models.Vendor{}
	if err := cursor.All(ctx, &vendors); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch vendor offerings",
		})
	}

	return c.JSON(http.StatusOK, vendors)
}

func (vc *VendorController) unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, models.Response{
		Status:  http.StatusServiceUnavailable,
		Message: "Database not available",
	})
}

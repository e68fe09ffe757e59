package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor is a skill offering tied to one of the static categories.
type Vendor struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       string             `json:"user_id" bson:"user_id"`
	Category     string             `json:"category" bson:"category"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	PricingType  string             `json:"pricing_type" bson:"pricing_type"`
	PriceCredits int                `json:"price_credits" bson:"price_credits"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// VendorRequest is the body for POST /api/vendors. Category must be one of
// the catalog keys from Categories().
type VendorRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	Category     string `json:"category" validate:"required,oneof=entertainment trades regulation network education"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	PricingType  string `json:"pricing_type" validate:"required,oneof=one_time subscription"`
	PriceCredits int    `json:"price_credits" validate:"gte=0"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model. Profiles are lookup data for search; nothing in the engagement
// path mutates them.
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Bio       string             `json:"bio,omitempty" bson:"bio,omitempty"`
	AvatarURL string             `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserRequest is the body for POST /api/users
type UserRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// Response is the envelope for status and error payloads.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

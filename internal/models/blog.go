package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a blog post stored in MongoDB. The liker set lives in
// PostgreSQL as Like rows keyed by the blog's hex id.
type Blog struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID       uint               `json:"owner_id" bson:"owner_id"`
	Title         string             `json:"title" bson:"title"`
	Body          string             `json:"body" bson:"body"`
	CoverImageURL string             `json:"cover_image_url,omitempty" bson:"cover_image_url,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateBlogRequest defines the request body for publishing a new blog
type CreateBlogRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=200"`
	Body          string `json:"body" validate:"required,min=1"`
	CoverImageURL string `json:"cover_image_url,omitempty" validate:"omitempty,url"`
}

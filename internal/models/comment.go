package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a blog, stored in MongoDB. A nil Parent
// marks a top-level comment; a non-nil Parent marks a reply. Reply depth is
// capped at 1: a reply never has children of its own.
type Comment struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	BlogID    primitive.ObjectID  `json:"blog_id" bson:"blog_id"`
	AuthorID  uint                `json:"author_id" bson:"author_id"`
	Content   string              `json:"content" bson:"content"`
	Parent    *primitive.ObjectID `json:"parent,omitempty" bson:"parent,omitempty"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting or replying
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

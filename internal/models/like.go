package models

import "gorm.io/gorm"

// Like represents a like on a blog. The unique index makes the row itself
// the (actor, blog) pair, so the blog's liker set and the user's liked set
// are two views of the same relation.
type Like struct {
	gorm.Model
	BlogID string `json:"blog_id" gorm:"index;uniqueIndex:idx_blog_user"` // blog hex id
	UserID uint   `json:"user_id" gorm:"index;uniqueIndex:idx_blog_user"`
}

// CommentLike represents a like on a comment
type CommentLike struct {
	gorm.Model
	CommentID string `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user"` // comment hex id
	UserID    uint   `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user"`
}

package models

import "time"

// Notification types. A FOLLOW_REQUEST row with status PENDING is the sole
// record of an outstanding follow request; there is no separate request
// entity.
const (
	NotificationFollowRequest = "FOLLOW_REQUEST"
	NotificationFollow        = "FOLLOW"
	NotificationLike          = "LIKE"
	NotificationComment       = "COMMENT"
	NotificationReply         = "REPLY"
)

// Notification statuses. UNREAD/READ apply to informational notifications,
// PENDING/ACCEPTED/REJECTED to follow requests.
const (
	StatusUnread   = "UNREAD"
	StatusRead     = "READ"
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Notification records one interaction event (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Type        string    `json:"type" gorm:"size:20;index"`
	BlogID      string    `json:"blog_id,omitempty" gorm:"index"` // blog hex id, empty for follow events
	Status      string    `json:"status" gorm:"size:10;index"`
	Message     string    `json:"message"`
	Content     string    `json:"content,omitempty"` // comment/reply excerpt
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// UpdateFollowRequest defines the request body for accepting/rejecting a
// follow request
type UpdateFollowRequest struct {
	Status string `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
}

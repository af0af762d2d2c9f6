package engine

import (
	"context"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"github.com/mraihan79/inkwell/backend/internal/repositories"
)

// NotificationLedger records interaction events as notifications. It is the
// single writer of notification rows for interactions, and a PENDING
// FOLLOW_REQUEST row doubles as the record of an outstanding follow request.
type NotificationLedger struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationLedger creates a new NotificationLedger
func NewNotificationLedger(notifRepo repositories.NotificationRepository) *NotificationLedger {
	return &NotificationLedger{notificationRepository: notifRepo}
}

// Record appends a notification for one interaction event. Self-interaction
// (sender == recipient) is a deliberate no-op, not an error. For LIKE the
// ledger first looks for an existing (sender, recipient, LIKE, blog) record
// and returns it unchanged, guaranteeing at most one LIKE notification per
// (actor, content) pair regardless of like/unlike churn. The lookup is a
// best-effort uniqueness check, not a storage constraint.
func (l *NotificationLedger) Record(ctx context.Context, senderID, recipientID uint, ntype, blogID, message, content string) (*models.Notification, error) {
	if senderID == recipientID {
		return nil, nil
	}

	if ntype == models.NotificationLike {
		existing, err := l.notificationRepository.FindInteraction(senderID, recipientID, ntype, blogID)
		if err != nil {
			return nil, storageErr(err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	notification := &models.Notification{
		SenderID:    senderID,
		RecipientID: recipientID,
		Type:        ntype,
		BlogID:      blogID,
		Status:      initialStatus(ntype),
		Message:     message,
		Content:     content,
	}
	if err := l.notificationRepository.CreateNotification(notification); err != nil {
		return nil, storageErr(err)
	}
	return notification, nil
}

// Reverse deletes the record matching the interaction if present, a no-op
// otherwise. Used on unlike.
func (l *NotificationLedger) Reverse(ctx context.Context, senderID, recipientID uint, ntype, blogID string) error {
	if err := l.notificationRepository.DeleteInteraction(senderID, recipientID, ntype, blogID); err != nil {
		return storageErr(err)
	}
	return nil
}

// HasPendingRequest reports whether sender has an outstanding FOLLOW_REQUEST
// to recipient.
func (l *NotificationLedger) HasPendingRequest(ctx context.Context, senderID, recipientID uint) (bool, error) {
	pending, err := l.notificationRepository.HasPendingRequest(senderID, recipientID)
	if err != nil {
		return false, storageErr(err)
	}
	return pending, nil
}

// DeleteByBlog removes every notification referencing the blog, preventing
// orphans when a blog is deleted.
func (l *NotificationLedger) DeleteByBlog(ctx context.Context, blogID string) error {
	if err := l.notificationRepository.DeleteByBlogID(blogID); err != nil {
		return storageErr(err)
	}
	return nil
}

// initialStatus picks the status a freshly recorded event starts in: follow
// requests are request-state rows, everything else is informational.
func initialStatus(ntype string) string {
	if ntype == models.NotificationFollowRequest {
		return models.StatusPending
	}
	return models.StatusUnread
}

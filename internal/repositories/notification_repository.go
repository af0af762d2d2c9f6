package repositories

import (
	"errors"

	"github.com/mraihan79/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationByID(id uint) (*models.Notification, error)
	// FindInteraction looks up the notification matching (sender, recipient,
	// type, blogID). It returns (nil, nil) when no record matches.
	FindInteraction(senderID, recipientID uint, ntype, blogID string) (*models.Notification, error)
	// DeleteInteraction removes the matching record; absence is not an error.
	DeleteInteraction(senderID, recipientID uint, ntype, blogID string) error
	HasPendingRequest(senderID, recipientID uint) (bool, error)
	GetPendingRequests(recipientID uint) ([]models.Notification, error)
	UpdateStatus(id uint, status string) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(id uint) error
	MarkAllAsRead(recipientID uint) error
	DeleteByBlogID(blogID string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed
// by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) FindInteraction(senderID, recipientID uint, ntype, blogID string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.Where("sender_id = ? AND recipient_id = ? AND type = ? AND blog_id = ?",
		senderID, recipientID, ntype, blogID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) DeleteInteraction(senderID, recipientID uint, ntype, blogID string) error {
	return r.db.Where("sender_id = ? AND recipient_id = ? AND type = ? AND blog_id = ?",
		senderID, recipientID, ntype, blogID).Delete(&models.Notification{}).Error
}

func (r *postgresNotificationRepository) HasPendingRequest(senderID, recipientID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("sender_id = ? AND recipient_id = ? AND type = ? AND status = ?",
			senderID, recipientID, models.NotificationFollowRequest, models.StatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postgresNotificationRepository) GetPendingRequests(recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("recipient_id = ? AND type = ? AND status = ?",
		recipientID, models.NotificationFollowRequest, models.StatusPending).
		Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&models.Notification{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, models.StatusUnread).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAsRead(id uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND status = ?", id, models.StatusUnread).
		Update("status", models.StatusRead).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND status = ?", recipientID, models.StatusUnread).
		Update("status", models.StatusRead).Error
}

// DeleteByBlogID removes every notification referencing a deleted blog
func (r *postgresNotificationRepository) DeleteByBlogID(blogID string) error {
	return r.db.Where("blog_id = ?", blogID).Delete(&models.Notification{}).Error
}

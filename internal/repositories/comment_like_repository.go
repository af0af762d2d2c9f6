package repositories

import (
	"github.com/mraihan79/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// CommentLikeRepository defines the interface for comment-like data operations
type CommentLikeRepository interface {
	CreateCommentLike(like *models.CommentLike) error
	DeleteCommentLike(commentID string, userID uint) error
	HasUserLikedComment(commentID string, userID uint) (bool, error)
	GetLikerIDsByCommentIDs(commentIDs []string) (map[string][]uint, error)
	GetLikesCountByCommentID(commentID string) (int64, error)
	DeleteByCommentIDs(commentIDs []string) error
}

// PostgresCommentLikeRepository implements CommentLikeRepository for PostgreSQL
type PostgresCommentLikeRepository struct {
	db *gorm.DB
}

// NewPostgresCommentLikeRepository creates a new PostgresCommentLikeRepository
func NewPostgresCommentLikeRepository(db *gorm.DB) *PostgresCommentLikeRepository {
	return &PostgresCommentLikeRepository{db: db}
}

func (r *PostgresCommentLikeRepository) CreateCommentLike(like *models.CommentLike) error {
	return r.db.Create(like).Error
}

func (r *PostgresCommentLikeRepository) DeleteCommentLike(commentID string, userID uint) error {
	res := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCommentLikeRepository) HasUserLikedComment(commentID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikerIDsByCommentIDs returns liker ids grouped by comment id for one
// batch of comments. Comments without likes are absent from the map.
func (r *PostgresCommentLikeRepository) GetLikerIDsByCommentIDs(commentIDs []string) (map[string][]uint, error) {
	grouped := make(map[string][]uint, len(commentIDs))
	if len(commentIDs) == 0 {
		return grouped, nil
	}
	var likes []models.CommentLike
	if err := r.db.Where("comment_id IN ?", commentIDs).Order("created_at ASC").Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, like := range likes {
		grouped[like.CommentID] = append(grouped[like.CommentID], like.UserID)
	}
	return grouped, nil
}

func (r *PostgresCommentLikeRepository) GetLikesCountByCommentID(commentID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByCommentIDs removes like rows for comments deleted in a cascade
func (r *PostgresCommentLikeRepository) DeleteByCommentIDs(commentIDs []string) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error
}

package repositories

import (
	"github.com/mraihan79/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for blog-like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(blogID string, userID uint) error
	HasUserLikedBlog(blogID string, userID uint) (bool, error)
	GetLikerIDsByBlogID(blogID string) ([]uint, error)
	GetLikedBlogIDsByUserID(userID uint) ([]string, error)
	GetLikesCountByBlogID(blogID string) (int64, error)
	DeleteByBlogID(blogID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostgresLikeRepository) DeleteLike(blogID string, userID uint) error {
	res := r.db.Where("blog_id = ? AND user_id = ?", blogID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresLikeRepository) HasUserLikedBlog(blogID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("blog_id = ? AND user_id = ?", blogID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikerIDsByBlogID returns the ids of users who liked the blog, oldest
// like first.
func (r *PostgresLikeRepository) GetLikerIDsByBlogID(blogID string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Like{}).Where("blog_id = ?", blogID).Order("created_at ASC").Pluck("user_id", &ids).Error
	return ids, err
}

func (r *PostgresLikeRepository) GetLikedBlogIDsByUserID(userID uint) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Like{}).Where("user_id = ?", userID).Order("created_at DESC").Pluck("blog_id", &ids).Error
	return ids, err
}

func (r *PostgresLikeRepository) GetLikesCountByBlogID(blogID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByBlogID removes every like row for a deleted blog
func (r *PostgresLikeRepository) DeleteByBlogID(blogID string) error {
	return r.db.Where("blog_id = ?", blogID).Delete(&models.Like{}).Error
}

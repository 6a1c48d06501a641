package repositories

import (
	"github.com/matejhrz/pixgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(savedPost *models.SavedPost) error
	UnsavePost(postID, userID uint) error
	IsPostSaved(postID, userID uint) (bool, error)
	GetSavedPostIDs(userID uint) ([]uint, error)
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

// SavePost inserts a saved-post row; duplicates collapse on the unique index.
func (r *PostgresSavedPostRepository) SavePost(savedPost *models.SavedPost) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(savedPost).Error
}

// UnsavePost removes the saved-post row for the (post, user) pair
func (r *PostgresSavedPostRepository) UnsavePost(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.SavedPost{}).Error
}

// IsPostSaved checks if a user has saved a specific post
func (r *PostgresSavedPostRepository) IsPostSaved(postID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedPost{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	return count > 0, err
}

// GetSavedPostIDs returns the IDs of the user's saved posts, most recently
// saved first
func (r *PostgresSavedPostRepository) GetSavedPostIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.SavedPost{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("post_id", &ids).Error
	return ids, err
}

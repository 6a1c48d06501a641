package repositories

import (
	"github.com/matejhrz/pixgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostWithDetails(id uint) (*models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetPostsByUserID(userID uint) ([]models.Post, error)
	GetFollowedPosts(viewerID uint) ([]models.Post, error)
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// withDetails preloads author, likes (with liking users), comments
// (with authors, newest first) and saved-by rows.
func (r *PostgresPostRepository) withDetails() *gorm.DB {
	return r.db.
		Preload("User").
		Preload("Likes.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		Preload("SavedBy")
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a bare post by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostWithDetails retrieves a post with all engagement data joined
func (r *PostgresPostRepository) GetPostWithDetails(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withDetails().First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves all posts with details, newest first
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := r.withDetails().Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID retrieves one author's posts with details, newest first
func (r *PostgresPostRepository) GetPostsByUserID(userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.withDetails().Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFollowedPosts retrieves posts authored by users the viewer follows,
// with details, newest first
func (r *PostgresPostRepository) GetFollowedPosts(viewerID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.withDetails().
		Where("user_id IN (?)",
			r.db.Table("follows").Select("following_id").Where("follower_id = ?", viewerID),
		).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost deletes a post together with its likes, comments and
// saved-post rows
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Select(clause.Associations).Delete(&models.Post{ID: id}).Error
}

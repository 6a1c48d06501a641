package repositories

import (
	"time"

	"github.com/matejhrz/pixgram/backend/internal/models"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(story *models.Story) error
	GetActiveStories(now time.Time) ([]models.Story, error)
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db *gorm.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

// CreateStory creates a new story
func (r *PostgresStoryRepository) CreateStory(story *models.Story) error {
	return r.db.Create(story).Error
}

// GetActiveStories retrieves all stories whose expiry has not elapsed at
// the given instant, with authors, newest first. There is no sweeper:
// expired rows simply stop matching.
func (r *PostgresStoryRepository) GetActiveStories(now time.Time) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.Preload("User").
		Where("expires_at > ?", now).
		Order("created_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

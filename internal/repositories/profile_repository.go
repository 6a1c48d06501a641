package repositories

import (
	"github.com/matejhrz/pixgram/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByUserID(userID uint) (*models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	SearchProfiles(term string) ([]models.Profile, error)
	GetProfileUserIDs() ([]uint, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// GetProfileByUserID retrieves a profile with its user by user ID
func (r *PostgresProfileRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates an existing profile
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// SearchProfiles matches profiles whose user name or interest list contains
// the term, case-insensitive. Interests are stored as a JSON string, so a
// LIKE against the serialized column covers the has-interest match.
func (r *PostgresProfileRepository) SearchProfiles(term string) ([]models.Profile, error) {
	var profiles []models.Profile
	pattern := "%" + term + "%"
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("LOWER(users.name) LIKE LOWER(?) OR LOWER(profiles.interests) LIKE LOWER(?)", pattern, pattern).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetProfileUserIDs returns the user IDs that already have a profile row
func (r *PostgresProfileRepository) GetProfileUserIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Profile{}).Pluck("user_id", &ids).Error
	return ids, err
}

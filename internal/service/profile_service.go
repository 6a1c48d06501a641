package service

import (
	"errors"
	"fmt"

	"github.com/matejhrz/pixgram/backend/internal/models"
	"github.com/matejhrz/pixgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// ProfileService owns profile reads and the lazy create-if-missing behavior.
type ProfileService struct {
	profiles repositories.ProfileRepository
	users    repositories.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{profiles: profileRepo, users: userRepo}
}

// GetOrCreateProfile returns the user's profile, creating an empty one on
// first view. Safe to call concurrently: a racing create loses on the
// unique user_id index and the winner's row is re-read.
func (s *ProfileService) GetOrCreateProfile(userID uint) (*models.Profile, error) {
	profile, err := s.profiles.GetProfileByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("could not fetch profile: %w", err)
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("could not fetch profile: %w", err)
	}

	newProfile := &models.Profile{
		UserID:    userID,
		Interests: []string{},
		AvatarURL: user.AvatarURL,
	}
	if err := s.profiles.CreateProfile(newProfile); err != nil {
		// Lost a concurrent create; fall through to the re-read.
		if profile, getErr := s.profiles.GetProfileByUserID(userID); getErr == nil {
			return profile, nil
		}
		return nil, fmt.Errorf("could not create profile: %w", err)
	}

	newProfile.User = *user
	return newProfile, nil
}

// UpdateProfile applies the non-empty fields of the request to the user's
// name and profile.
func (s *ProfileService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		profile.User.Name = req.Name
		if err := s.users.UpdateUser(&profile.User); err != nil {
			return nil, fmt.Errorf("could not update profile: %w", err)
		}
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Location != "" {
		profile.Location = req.Location
	}
	if err := s.profiles.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("could not update profile: %w", err)
	}
	return profile, nil
}

// SearchProfiles matches profiles by user name or interest, case-insensitive.
func (s *ProfileService) SearchProfiles(term string) ([]models.Profile, error) {
	profiles, err := s.profiles.SearchProfiles(term)
	if err != nil {
		return nil, fmt.Errorf("could not fetch profiles: %w", err)
	}
	return profiles, nil
}

// CreateMissingProfiles backfills an empty profile for every user without
// one and returns the number created.
func (s *ProfileService) CreateMissingProfiles() (int, error) {
	users, err := s.users.GetUsers()
	if err != nil {
		return 0, fmt.Errorf("could not create missing profiles: %w", err)
	}
	existingIDs, err := s.profiles.GetProfileUserIDs()
	if err != nil {
		return 0, fmt.Errorf("could not create missing profiles: %w", err)
	}
	existing := make(map[uint]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	created := 0
	for _, user := range users {
		if existing[user.ID] {
			continue
		}
		profile := &models.Profile{
			UserID:    user.ID,
			Interests: []string{},
			AvatarURL: user.AvatarURL,
		}
		if err := s.profiles.CreateProfile(profile); err != nil {
			return created, fmt.Errorf("could not create missing profiles: %w", err)
		}
		created++
	}
	return created, nil
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/matejhrz/pixgram/backend/internal/models"
	"github.com/matejhrz/pixgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// storyTTL is how long a story stays visible. Fixed at creation, never renewed.
const storyTTL = 24 * time.Hour

// StoryService owns the ephemeral story lifecycle: creation with a fixed
// expiry and read-time filtering of expired rows.
type StoryService struct {
	stories repositories.StoryRepository
	users   repositories.UserRepository
}

// NewStoryService creates a new StoryService
func NewStoryService(storyRepo repositories.StoryRepository, userRepo repositories.UserRepository) *StoryService {
	return &StoryService{stories: storyRepo, users: userRepo}
}

// CreateStory persists a new story for the user with ExpiresAt set to
// now + 24h. The story is visible to every subsequent ListActiveStories
// call immediately.
func (s *StoryService) CreateStory(userID uint, imageURL, caption string) (*models.Story, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("could not create story: %w", err)
	}

	now := time.Now()
	story := &models.Story{
		UserID:    userID,
		ImageURL:  imageURL,
		Caption:   caption,
		CreatedAt: now,
		ExpiresAt: now.Add(storyTTL),
	}
	if err := s.stories.CreateStory(story); err != nil {
		return nil, fmt.Errorf("could not create story: %w", err)
	}

	story.User = *user
	return story, nil
}

// ListActiveStories returns every story whose expiry has not elapsed at the
// given instant, grouped by author. Stories inside a group stay in
// descending-recency order; groups are ordered by each author's newest
// story, so the most recently active author comes first. Authors with no
// active story produce no group.
func (s *StoryService) ListActiveStories(now time.Time) ([]models.StoryGroup, error) {
	stories, err := s.stories.GetActiveStories(now)
	if err != nil {
		return nil, fmt.Errorf("could not fetch stories: %w", err)
	}

	groupIndex := make(map[uint]int)
	groups := make([]models.StoryGroup, 0, len(stories))
	for _, story := range stories {
		idx, ok := groupIndex[story.UserID]
		if !ok {
			idx = len(groups)
			groupIndex[story.UserID] = idx
			groups = append(groups, models.StoryGroup{
				UserID:    story.UserID,
				Username:  story.User.Name,
				UserImage: story.User.AvatarURL,
			})
		}
		groups[idx].Stories = append(groups[idx].Stories, story)
	}
	return groups, nil
}

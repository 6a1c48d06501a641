package service

import (
	"testing"

	"github.com/matejhrz/pixgram/backend/internal/models"
	"github.com/matejhrz/pixgram/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProfileService(db *gorm.DB) *ProfileService {
	return NewProfileService(
		repositories.NewPostgresProfileRepository(db),
		repositories.NewPostgresUserRepository(db),
	)
}

func TestGetOrCreateProfileLazyCreate(t *testing.T) {
	db := openTestDB(t)
	svc := newProfileService(db)
	user := createTestUser(t, db, "alice")

	profile, err := svc.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.NotNil(t, profile.Interests)

	// A second call returns the same row, not a second one.
	again, err := svc.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateProfileUnknownUser(t *testing.T) {
	db := openTestDB(t)
	svc := newProfileService(db)

	_, err := svc.GetOrCreateProfile(999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := openTestDB(t)
	svc := newProfileService(db)
	user := createTestUser(t, db, "alice")

	profile, err := svc.UpdateProfile(user.ID, models.UpdateProfileRequest{
		Name: "Alice Liddell",
		Bio:  "down the rabbit hole",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", profile.User.Name)
	assert.Equal(t, "down the rabbit hole", profile.Bio)

	// Empty fields leave stored values untouched.
	profile, err = svc.UpdateProfile(user.ID, models.UpdateProfileRequest{Location: "Oxford"})
	require.NoError(t, err)
	assert.Equal(t, "down the rabbit hole", profile.Bio)
	assert.Equal(t, "Oxford", profile.Location)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Alice Liddell", stored.Name)
}

func TestSearchProfiles(t *testing.T) {
	db := openTestDB(t)
	svc := newProfileService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := svc.GetOrCreateProfile(alice.ID)
	require.NoError(t, err)
	bobProfile, err := svc.GetOrCreateProfile(bob.ID)
	require.NoError(t, err)

	bobProfile.Interests = []string{"photography", "hiking"}
	require.NoError(t, db.Save(bobProfile).Error)

	byName, err := svc.SearchProfiles("ali")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, alice.ID, byName[0].UserID)

	byInterest, err := svc.SearchProfiles("photo")
	require.NoError(t, err)
	require.Len(t, byInterest, 1)
	assert.Equal(t, bob.ID, byInterest[0].UserID)
}

func TestCreateMissingProfiles(t *testing.T) {
	db := openTestDB(t)
	svc := newProfileService(db)
	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	createTestUser(t, db, "carol")

	_, err := svc.GetOrCreateProfile(alice.ID)
	require.NoError(t, err)

	created, err := svc.CreateMissingProfiles()
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	// Idempotent.
	created, err = svc.CreateMissingProfiles()
	require.NoError(t, err)
	assert.Zero(t, created)
}

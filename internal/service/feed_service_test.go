package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/matejhrz/pixgram/backend/internal/models"
	"github.com/matejhrz/pixgram/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBlobStore records deletes so tests can assert the best-effort image
// cleanup without a running MongoDB.
type fakeBlobStore struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeBlobStore) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	return "/files/fake", nil
}

func (f *fakeBlobStore) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	return io.NopCloser(nil), "application/octet-stream", nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeBlobStore) deletedRefs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func newFeedService(db *gorm.DB) (*FeedService, *fakeBlobStore) {
	blobs := &fakeBlobStore{}
	svc := NewFeedService(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresSavedPostRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresCommentRepository(db),
		blobs,
	)
	return svc, blobs
}

func TestToggleLikeSequence(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	liked, err := svc.ToggleLike(post.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(post.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = svc.ToggleLike(post.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	user := createTestUser(t, db, "alice")

	_, err := svc.ToggleLike(999, user.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestToggleLikeIndependentUsers(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)

	_, err := svc.ToggleLike(post.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(post.ID, bob.ID)
	require.NoError(t, err)

	// Bob unliking leaves Alice's like in place.
	liked, err := svc.ToggleLike(post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	posts, err := svc.ListAllPosts()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Len(t, posts[0].Likes, 1)
	assert.Equal(t, alice.ID, posts[0].Likes[0].UserID)
}

func TestToggleSaveSequence(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID)

	saved, err := svc.ToggleSave(post.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	posts, err := svc.ListSavedPosts(user.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)

	saved, err = svc.ToggleSave(post.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	posts, err = svc.ListSavedPosts(user.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestToggleFollow(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	following, err := svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	state, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, state)

	// The edge is directed.
	state, err = svc.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, state)

	counts, err := svc.GetFollowCounts(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Followers)
	assert.EqualValues(t, 0, counts.Following)

	following, err = svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	state, err = svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, state)
}

func TestToggleFollowSelf(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")

	_, err := svc.ToggleFollow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFollowersAndFollowing(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := svc.ToggleFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	followers, err := svc.GetFollowers(alice.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := svc.GetFollowing(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)
}

func TestListFollowedPosts(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	createTestPost(t, db, bob.ID)
	bobNewer := createTestPost(t, db, bob.ID)
	createTestPost(t, db, carol.ID)

	_, err := svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	posts, err := svc.ListFollowedPosts(alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, bobNewer.ID, posts[0].ID)
	for _, p := range posts {
		assert.Equal(t, bob.ID, p.UserID)
	}
}

func TestCreatePost(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")

	post, err := svc.CreatePost(alice.ID, "/files/img1", "first light")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "alice", post.User.Name)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestDeletePostOwnership(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)

	err := svc.DeletePost(post.ID, bob.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	err = svc.DeletePost(999, alice.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Post must survive the failed attempts.
	posts, err := svc.ListAllPosts()
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestDeletePostCascades(t *testing.T) {
	db := openTestDB(t)
	svc, blobs := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)

	_, err := svc.ToggleLike(post.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.ToggleSave(post.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.AddComment(post.ID, bob.ID, "nice shot")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(post.ID, alice.ID))

	posts, err := svc.ListAllPosts()
	require.NoError(t, err)
	assert.Empty(t, posts)

	saved, err := svc.ListSavedPosts(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)

	var likes, comments int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)

	// Image cleanup runs in the background.
	assert.Eventually(t, func() bool {
		refs := blobs.deletedRefs()
		return len(refs) == 1 && refs[0] == post.ImageURL
	}, time.Second, 10*time.Millisecond)
}

func TestAddComment(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)

	comment, err := svc.AddComment(post.ID, bob.ID, "nice shot")
	require.NoError(t, err)
	assert.Equal(t, "nice shot", comment.Content)
	assert.Equal(t, "bob", comment.User.Name)

	_, err = svc.AddComment(post.ID, bob.ID, "   ")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.AddComment(999, bob.ID, "hello")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestEditCommentOwnership(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)

	comment, err := svc.AddComment(post.ID, bob.ID, "original")
	require.NoError(t, err)

	_, err = svc.EditComment(comment.ID, alice.ID, "hijacked")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, "original", stored.Content)

	updated, err := svc.EditComment(comment.ID, bob.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.Equal(t, "bob", updated.User.Name)
}

func TestEditCommentValidation(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID)

	comment, err := svc.AddComment(post.ID, alice.ID, "keep me")
	require.NoError(t, err)

	_, err = svc.EditComment(comment.ID, alice.ID, "")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.EditComment(999, alice.ID, "hello")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteComment(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID)

	comment, err := svc.AddComment(post.ID, bob.ID, "temporary")
	require.NoError(t, err)

	err = svc.DeleteComment(comment.ID, alice.ID)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	require.NoError(t, svc.DeleteComment(comment.ID, bob.ID))

	err = svc.DeleteComment(comment.ID, bob.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListAllPostsOrderAndDetails(t *testing.T) {
	db := openTestDB(t)
	svc, _ := newFeedService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	older := createTestPost(t, db, alice.ID)
	newer := createTestPost(t, db, bob.ID)

	_, err := svc.AddComment(older.ID, bob.ID, "first")
	require.NoError(t, err)
	_, err = svc.AddComment(older.ID, alice.ID, "second")
	require.NoError(t, err)

	posts, err := svc.ListAllPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)

	require.Len(t, posts[1].Comments, 2)
	// Newest comment first, each with its author joined.
	assert.Equal(t, "second", posts[1].Comments[0].Content)
	assert.Equal(t, "alice", posts[1].Comments[0].User.Name)
	assert.Equal(t, "first", posts[1].Comments[1].Content)
}

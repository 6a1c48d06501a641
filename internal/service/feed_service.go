package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/matejhrz/pixgram/backend/internal/models"
	"github.com/matejhrz/pixgram/backend/internal/repositories"
	"github.com/matejhrz/pixgram/backend/pkg/blob"
	"gorm.io/gorm"
)

// FeedService assembles post listings with their engagement data and applies
// the row-existence toggle mutations (like, save, follow). All consistency
// reduces to the composite unique indexes on the toggle tables; there are no
// multi-statement transactions here.
type FeedService struct {
	posts    repositories.PostRepository
	likes    repositories.LikeRepository
	saves    repositories.SavedPostRepository
	follows  repositories.FollowRepository
	comments repositories.CommentRepository
	blobs    blob.Store
}

// NewFeedService creates a new FeedService
func NewFeedService(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	savedPostRepo repositories.SavedPostRepository,
	followRepo repositories.FollowRepository,
	commentRepo repositories.CommentRepository,
	blobStore blob.Store,
) *FeedService {
	return &FeedService{
		posts:    postRepo,
		likes:    likeRepo,
		saves:    savedPostRepo,
		follows:  followRepo,
		comments: commentRepo,
		blobs:    blobStore,
	}
}

// ListAllPosts returns every post with author, likes (with liking users)
// and comments (with authors), newest first.
func (s *FeedService) ListAllPosts() ([]models.Post, error) {
	posts, err := s.posts.GetAllPosts()
	if err != nil {
		return nil, fmt.Errorf("could not fetch posts: %w", err)
	}
	return posts, nil
}

// ListFollowedPosts returns the posts authored by users the viewer follows,
// with full details, newest first.
func (s *FeedService) ListFollowedPosts(viewerID uint) ([]models.Post, error) {
	posts, err := s.posts.GetFollowedPosts(viewerID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch followed posts: %w", err)
	}
	return posts, nil
}

// ListPostsByUser returns one author's posts with full details, newest first.
func (s *FeedService) ListPostsByUser(userID uint) ([]models.Post, error) {
	posts, err := s.posts.GetPostsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch posts: %w", err)
	}
	return posts, nil
}

// ListSavedPosts returns the viewer's saved posts with full details, most
// recently saved first.
func (s *FeedService) ListSavedPosts(userID uint) ([]models.Post, error) {
	ids, err := s.saves.GetSavedPostIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch saved posts: %w", err)
	}

	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.posts.GetPostWithDetails(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // post deleted since it was saved
			}
			return nil, fmt.Errorf("could not fetch saved posts: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

// CreatePost persists a new post and returns it with details joined.
func (s *FeedService) CreatePost(userID uint, imageURL, caption string) (*models.Post, error) {
	post := &models.Post{UserID: userID, ImageURL: imageURL, Caption: caption}
	if err := s.posts.CreatePost(post); err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}
	return s.posts.GetPostWithDetails(post.ID)
}

// DeletePost removes an owned post together with its likes, comments and
// saved-post rows, then removes the backing image best-effort: a failed
// image delete is logged, the post deletion still succeeds.
func (s *FeedService) DeletePost(postID, userID uint) error {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
		}
		return fmt.Errorf("could not delete post: %w", err)
	}
	if post.UserID != userID {
		return fmt.Errorf("delete post %d: %w", postID, models.ErrUnauthorized)
	}

	if err := s.posts.DeletePost(postID); err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}

	if s.blobs != nil && post.ImageURL != "" {
		go func(ref string) {
			if err := s.blobs.Delete(context.Background(), ref); err != nil {
				log.Printf("Error deleting image %s for post %d: %v", ref, postID, err)
			}
		}(post.ImageURL)
	}
	return nil
}

// ToggleLike flips the like row for the (post, user) pair and returns the
// resulting state: true means the post is now liked.
func (s *FeedService) ToggleLike(postID, userID uint) (bool, error) {
	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
		}
		return false, fmt.Errorf("could not toggle like: %w", err)
	}

	liked, err := s.likes.HasUserLikedPost(postID, userID)
	if err != nil {
		return false, fmt.Errorf("could not toggle like: %w", err)
	}
	if liked {
		if err := s.likes.DeleteLike(postID, userID); err != nil {
			return false, fmt.Errorf("could not toggle like: %w", err)
		}
		return false, nil
	}
	if err := s.likes.CreateLike(&models.Like{PostID: postID, UserID: userID}); err != nil {
		return false, fmt.Errorf("could not toggle like: %w", err)
	}
	return true, nil
}

// ToggleSave flips the saved-post row for the (post, user) pair and returns
// the resulting state: true means the post is now saved.
func (s *FeedService) ToggleSave(postID, userID uint) (bool, error) {
	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
		}
		return false, fmt.Errorf("could not toggle save: %w", err)
	}

	saved, err := s.saves.IsPostSaved(postID, userID)
	if err != nil {
		return false, fmt.Errorf("could not toggle save: %w", err)
	}
	if saved {
		if err := s.saves.UnsavePost(postID, userID); err != nil {
			return false, fmt.Errorf("could not toggle save: %w", err)
		}
		return false, nil
	}
	if err := s.saves.SavePost(&models.SavedPost{PostID: postID, UserID: userID}); err != nil {
		return false, fmt.Errorf("could not toggle save: %w", err)
	}
	return true, nil
}

// ToggleFollow flips the follow edge follower -> following and returns the
// resulting state: true means follower now follows following.
func (s *FeedService) ToggleFollow(followerID, followingID uint) (bool, error) {
	if followerID == followingID {
		return false, fmt.Errorf("cannot follow yourself: %w", models.ErrValidation)
	}

	following, err := s.follows.IsFollowing(followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("could not toggle follow: %w", err)
	}
	if following {
		if err := s.follows.DeleteFollow(followerID, followingID); err != nil {
			return false, fmt.Errorf("could not toggle follow: %w", err)
		}
		return false, nil
	}
	if err := s.follows.CreateFollow(&models.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
		return false, fmt.Errorf("could not toggle follow: %w", err)
	}
	return true, nil
}

// IsFollowing reports whether followerID currently follows followingID.
func (s *FeedService) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.follows.IsFollowing(followerID, followingID)
}

// GetFollowCounts returns the follower and following tallies for a user.
func (s *FeedService) GetFollowCounts(userID uint) (*models.FollowCounts, error) {
	followers, err := s.follows.GetFollowersCount(userID)
	if err != nil {
		return nil, fmt.Errorf("could not get follow counts: %w", err)
	}
	following, err := s.follows.GetFollowingCount(userID)
	if err != nil {
		return nil, fmt.Errorf("could not get follow counts: %w", err)
	}
	return &models.FollowCounts{Followers: followers, Following: following}, nil
}

// GetFollowers returns the users following userID.
func (s *FeedService) GetFollowers(userID uint) ([]models.User, error) {
	return s.follows.GetFollowers(userID)
}

// GetFollowing returns the users userID follows.
func (s *FeedService) GetFollowing(userID uint) ([]models.User, error) {
	return s.follows.GetFollowing(userID)
}

// AddComment appends a comment to a post and returns it with the author
// joined. Empty content is rejected.
func (s *FeedService) AddComment(postID, userID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content is required: %w", models.ErrValidation)
	}
	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("could not add comment: %w", err)
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("could not add comment: %w", err)
	}
	return s.comments.GetCommentWithUser(comment.ID)
}

// EditComment updates a comment's content. Only the author may edit; empty
// content is rejected rather than silently deleting, so delete-on-empty
// stays an explicit caller decision.
func (s *FeedService) EditComment(commentID, userID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content is required: %w", models.ErrValidation)
	}

	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %d: %w", commentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("could not edit comment: %w", err)
	}
	if comment.UserID != userID {
		return nil, fmt.Errorf("edit comment %d: %w", commentID, models.ErrUnauthorized)
	}

	comment.Content = content
	if err := s.comments.UpdateComment(comment); err != nil {
		return nil, fmt.Errorf("could not edit comment: %w", err)
	}
	return s.comments.GetCommentWithUser(comment.ID)
}

// DeleteComment hard-deletes an owned comment.
func (s *FeedService) DeleteComment(commentID, userID uint) error {
	comment, err := s.comments.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %d: %w", commentID, models.ErrNotFound)
		}
		return fmt.Errorf("could not delete comment: %w", err)
	}
	if comment.UserID != userID {
		return fmt.Errorf("delete comment %d: %w", commentID, models.ErrUnauthorized)
	}
	if err := s.comments.DeleteComment(commentID); err != nil {
		return fmt.Errorf("could not delete comment: %w", err)
	}
	return nil
}

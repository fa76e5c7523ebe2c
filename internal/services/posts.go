package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/repositories"
	"github.com/anonto42/petsocial/backend/validators"
)

// PostFeed manages posts and their like sets
type PostFeed struct {
	posts repositories.PostRepository
	now   func() time.Time
}

// NewPostFeed creates a PostFeed
func NewPostFeed(posts repositories.PostRepository) *PostFeed {
	return &PostFeed{
		posts: posts,
		now:   time.Now,
	}
}

// Create stores a new post authored by userID
func (s *PostFeed) Create(ctx context.Context, userID uint, authorName, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if err := validators.Struct(models.CreatePostRequest{Text: text}); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:   text,
		Name:   authorName,
		UserID: userID,
		Likes:  []models.Like{},
		Date:   s.timestamp(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, translate("create post", err)
	}
	return post, nil
}

// List returns posts newest first. A limit of 0 returns everything after skip.
func (s *PostFeed) List(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	posts, err := s.posts.GetAllPosts(ctx, skip, limit)
	if err != nil {
		return nil, translate("list posts", err)
	}
	return posts, nil
}

// ListByUser returns the posts of userID newest first
func (s *PostFeed) ListByUser(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	posts, err := s.posts.GetPostsByUserID(ctx, userID, skip, limit)
	if err != nil {
		return nil, translate("list posts by user", err)
	}
	return posts, nil
}

// GetByID returns a post; malformed ids are reported as ErrNotFound
func (s *PostFeed) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, translate("get post", err)
	}
	return post, nil
}

// Delete removes a post if requesterID created it
func (s *PostFeed) Delete(ctx context.Context, id string, requesterID uint) error {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanModify(post, requesterID) {
		return ErrForbidden
	}
	return translate("delete post", s.posts.DeletePost(ctx, id))
}

// Like adds userID to the front of the post's like set
func (s *PostFeed) Like(ctx context.Context, id string, userID uint) ([]models.Like, error) {
	likes, err := s.posts.AddLike(ctx, id, models.Like{User: userID, Date: s.timestamp()})
	if err != nil {
		return nil, translate("like post", err)
	}
	return likes, nil
}

// Unlike removes userID from the post's like set
func (s *PostFeed) Unlike(ctx context.Context, id string, userID uint) ([]models.Like, error) {
	likes, err := s.posts.RemoveLike(ctx, id, userID)
	if err != nil {
		return nil, translate("unlike post", err)
	}
	return likes, nil
}

// timestamp matches the millisecond precision of stored dates so responses agree with later reads
func (s *PostFeed) timestamp() time.Time {
	return s.now().Truncate(time.Millisecond)
}

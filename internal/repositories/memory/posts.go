package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type postRepo struct {
	mu   sync.RWMutex
	byID map[string]models.Post
}

// NewPostRepo returns an empty post store
func NewPostRepo() repositories.PostRepository {
	return &postRepo{
		byID: make(map[string]models.Post),
	}
}

func (r *postRepo) CreatePost(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Date.IsZero() {
		post.Date = time.Now().Truncate(time.Millisecond)
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	r.byID[post.ID.Hex()] = clonePost(*post)
	return nil
}

func (r *postRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (r *postRepo) GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	return r.list(func(p models.Post) bool { return p.UserID == userID }, skip, limit), nil
}

func (r *postRepo) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.list(func(models.Post) bool { return true }, skip, limit), nil
}

func (r *postRepo) list(match func(models.Post) bool, skip, limit int64) []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Post, 0, len(r.byID))
	for _, p := range r.byID {
		if match(p) {
			out = append(out, clonePost(p))
		}
	}

	// Newest first; ObjectIDs break ties since they grow with creation order
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})

	if skip > int64(len(out)) {
		return []models.Post{}
	}
	out = out[skip:]
	if limit > 0 && limit < int64(len(out)) {
		out = out[:limit]
	}
	return out
}

func (r *postRepo) DeletePost(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *postRepo) AddLike(ctx context.Context, postID string, like models.Like) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if p.HasLike(like.User) {
		return nil, repositories.ErrAlreadyLiked
	}
	if like.Date.IsZero() {
		like.Date = time.Now().Truncate(time.Millisecond)
	}
	p.Likes = append([]models.Like{like}, p.Likes...)
	r.byID[postID] = p
	return cloneLikes(p.Likes), nil
}

func (r *postRepo) RemoveLike(ctx context.Context, postID string, userID uint) ([]models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[postID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	for i, l := range p.Likes {
		if l.User == userID {
			likes := make([]models.Like, 0, len(p.Likes)-1)
			likes = append(likes, p.Likes[:i]...)
			likes = append(likes, p.Likes[i+1:]...)
			p.Likes = likes
			r.byID[postID] = p
			return cloneLikes(likes), nil
		}
	}
	return nil, repositories.ErrNotLiked
}

func clonePost(p models.Post) models.Post {
	p.Likes = cloneLikes(p.Likes)
	return p
}

func cloneLikes(likes []models.Like) []models.Like {
	out := make([]models.Like, len(likes))
	copy(out, likes)
	return out
}

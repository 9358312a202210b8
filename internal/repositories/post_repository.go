package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/anonto42/feedstore/backend/internal/models"
	"go.uber.org/zap"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.Post, error)
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, id string) (bool, error)
	AdjustLikesCount(ctx context.Context, postID string, delta int) error
	AdjustCommentsCount(ctx context.Context, postID string, delta int) error
}

// MemoryPostRepository implements PostRepository on top of DB
type MemoryPostRepository struct {
	db *DB
}

// NewMemoryPostRepository creates a new MemoryPostRepository
func NewMemoryPostRepository(db *DB) *MemoryPostRepository {
	return &MemoryPostRepository{db: db}
}

// CreatePost stores a new post with zeroed counters. The author is not
// resolved here; unresolvable authors are dropped at projection time.
func (r *MemoryPostRepository) CreatePost(ctx context.Context, authorID string, req models.CreatePostRequest) (*models.Post, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	post := models.Post{
		ID:        r.db.newID(),
		AuthorID:  authorID,
		Content:   req.Content,
		CreatedAt: r.db.now(),
	}
	if req.ImageURL != "" {
		imageURL := req.ImageURL
		post.ImageURL = &imageURL
	}
	r.db.posts[post.ID] = &postRow{post: post, seq: r.db.nextSeq()}

	r.db.logger.Debug("post created", zap.String("post_id", post.ID), zap.String("author_id", authorID))
	return &post, nil
}

// GetPostByID retrieves a post by ID
func (r *MemoryPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	post := row.post
	return &post, nil
}

// GetAllPosts returns every post, most recent first. Equal timestamps keep
// insertion order.
func (r *MemoryPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	rows := make([]postRow, 0, len(r.db.posts))
	for _, row := range r.db.posts {
		rows = append(rows, *row)
	}
	r.db.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.seq < b.seq
		}
		return a.post.CreatedAt.After(b.post.CreatedAt)
	})

	posts := make([]models.Post, len(rows))
	for i, row := range rows {
		posts[i] = row.post
	}
	return posts, nil
}

// UpdatePost merges the provided fields into an existing post. Counters are
// never touched on this path.
func (r *MemoryPostRepository) UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.Post, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	if req.Content != nil {
		row.post.Content = *req.Content
	}
	if req.ImageURL != nil {
		if *req.ImageURL == "" {
			row.post.ImageURL = nil
		} else {
			imageURL := *req.ImageURL
			row.post.ImageURL = &imageURL
		}
	}

	r.db.logger.Debug("post updated", zap.String("post_id", id))
	post := row.post
	return &post, nil
}

// DeletePost removes a post and reports whether it existed. Comments and
// likes referencing it are left in place.
func (r *MemoryPostRepository) DeletePost(ctx context.Context, id string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.posts[id]; !ok {
		return false, nil
	}
	delete(r.db.posts, id)

	r.db.logger.Debug("post deleted", zap.String("post_id", id))
	return true, nil
}

// AdjustLikesCount shifts the likes counter by delta, clamping at zero
func (r *MemoryPostRepository) AdjustLikesCount(ctx context.Context, postID string, delta int) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.adjustLikesLocked(postID, delta)
	return nil
}

// AdjustCommentsCount shifts the comments counter by delta, clamping at zero
func (r *MemoryPostRepository) AdjustCommentsCount(ctx context.Context, postID string, delta int) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.adjustCommentsLocked(postID, delta)
	return nil
}

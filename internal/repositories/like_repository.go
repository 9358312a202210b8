package repositories

import (
	"context"

	"github.com/anonto42/feedstore/backend/internal/models"
	"go.uber.org/zap"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, userID, postID string) (bool, error)
	HasUserLikedPost(ctx context.Context, userID, postID string) (bool, error)
}

// MemoryLikeRepository implements LikeRepository on top of DB
type MemoryLikeRepository struct {
	db *DB
}

// NewMemoryLikeRepository creates a new MemoryLikeRepository
func NewMemoryLikeRepository(db *DB) *MemoryLikeRepository {
	return &MemoryLikeRepository{db: db}
}

// ToggleLike flips the like state of (userID, postID) and adjusts the post's
// likes counter in the same critical section. It returns true when the pair
// is now liked. Unknown users or posts are accepted.
func (r *MemoryLikeRepository) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := likeKey{userID: userID, postID: postID}
	if _, ok := r.db.likes[key]; ok {
		delete(r.db.likes, key)
		r.db.adjustLikesLocked(postID, -1)
		r.db.logger.Debug("post unliked", zap.String("user_id", userID), zap.String("post_id", postID))
		return false, nil
	}

	r.db.likes[key] = models.Like{
		ID:        r.db.newID(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: r.db.now(),
	}
	r.db.adjustLikesLocked(postID, 1)
	r.db.logger.Debug("post liked", zap.String("user_id", userID), zap.String("post_id", postID))
	return true, nil
}

// HasUserLikedPost checks if a user currently likes a post
func (r *MemoryLikeRepository) HasUserLikedPost(ctx context.Context, userID, postID string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.likes[likeKey{userID: userID, postID: postID}]
	return ok, nil
}

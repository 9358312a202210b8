package repositories

import (
	"context"
	"sort"

	"github.com/anonto42/feedstore/backend/internal/models"
	"go.uber.org/zap"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, authorID string, req models.CreateCommentRequest) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id string) (bool, error)
}

// MemoryCommentRepository implements CommentRepository on top of DB
type MemoryCommentRepository struct {
	db *DB
}

// NewMemoryCommentRepository creates a new MemoryCommentRepository
func NewMemoryCommentRepository(db *DB) *MemoryCommentRepository {
	return &MemoryCommentRepository{db: db}
}

// CreateComment stores a comment and bumps the parent's comments counter
// under the same lock. The post is not required to exist.
func (r *MemoryCommentRepository) CreateComment(ctx context.Context, authorID string, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	comment := models.Comment{
		ID:        r.db.newID(),
		PostID:    req.PostID,
		AuthorID:  authorID,
		Content:   req.Content,
		CreatedAt: r.db.now(),
	}
	r.db.comments[comment.ID] = &commentRow{comment: comment, seq: r.db.nextSeq()}
	r.db.adjustCommentsLocked(req.PostID, 1)

	r.db.logger.Debug("comment created",
		zap.String("comment_id", comment.ID),
		zap.String("post_id", comment.PostID),
		zap.String("author_id", authorID),
	)
	return &comment, nil
}

// GetCommentsByPostID returns the comments of a post, oldest first
func (r *MemoryCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	var rows []commentRow
	for _, row := range r.db.comments {
		if row.comment.PostID == postID {
			rows = append(rows, *row)
		}
	}
	r.db.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.comment.CreatedAt.Equal(b.comment.CreatedAt) {
			return a.seq < b.seq
		}
		return a.comment.CreatedAt.Before(b.comment.CreatedAt)
	})

	comments := make([]models.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.comment
	}
	return comments, nil
}

// DeleteComment removes a comment and, only if it existed, decrements the
// parent's comments counter.
func (r *MemoryCommentRepository) DeleteComment(ctx context.Context, id string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.comments[id]
	if !ok {
		return false, nil
	}
	delete(r.db.comments, id)
	r.db.adjustCommentsLocked(row.comment.PostID, -1)

	r.db.logger.Debug("comment deleted", zap.String("comment_id", id), zap.String("post_id", row.comment.PostID))
	return true, nil
}

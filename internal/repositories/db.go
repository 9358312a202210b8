package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/anonto42/feedstore/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is wrapped by every lookup that addresses an unknown id.
var ErrNotFound = errors.New("not found")

type likeKey struct {
	userID string
	postID string
}

// Rows carry an insertion sequence so equal timestamps still sort stably.
type postRow struct {
	post models.Post
	seq  uint64
}

type commentRow struct {
	comment models.Comment
	seq     uint64
}

// DB holds every table of the feed store. A single RWMutex guards all of
// them so that a fact write and its counter adjustment are one unit.
type DB struct {
	mu       sync.RWMutex
	users    map[string]models.User
	posts    map[string]*postRow
	comments map[string]*commentRow
	likes    map[likeKey]models.Like
	seq      uint64

	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a DB
type Option func(*DB)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

// WithIDGenerator overrides the id source
func WithIDGenerator(newID func() string) Option {
	return func(db *DB) {
		db.newID = newID
	}
}

// WithLogger sets the logger used for mutation traces
func WithLogger(logger *zap.Logger) Option {
	return func(db *DB) {
		db.logger = logger
	}
}

// WithUser seeds a user with a fixed id. Used for the bootstrap account.
func WithUser(user models.User) Option {
	return func(db *DB) {
		if user.CreatedAt.IsZero() {
			user.CreatedAt = db.now()
		}
		db.users[user.ID] = user
	}
}

// NewDB creates an empty in-memory database. Options run in order, so
// WithClock must precede WithUser if the seed should use the custom clock.
func NewDB(opts ...Option) *DB {
	db := &DB{
		users:    make(map[string]models.User),
		posts:    make(map[string]*postRow),
		comments: make(map[string]*commentRow),
		likes:    make(map[likeKey]models.Like),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *DB) nextSeq() uint64 {
	db.seq++
	return db.seq
}

// adjustLikesLocked and adjustCommentsLocked require db.mu held for writing.
// Unknown posts are ignored; results clamp at zero.
func (db *DB) adjustLikesLocked(postID string, delta int) {
	row, ok := db.posts[postID]
	if !ok {
		return
	}
	row.post.LikesCount = clamp(row.post.LikesCount + delta)
}

func (db *DB) adjustCommentsLocked(postID string, delta int) {
	row, ok := db.posts[postID]
	if !ok {
		return
	}
	row.post.CommentsCount = clamp(row.post.CommentsCount + delta)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

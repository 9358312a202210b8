package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/anonto42/feedstore/backend/internal/models"
	"go.uber.org/zap"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// MemoryUserRepository implements UserRepository on top of DB
type MemoryUserRepository struct {
	db *DB
}

// NewMemoryUserRepository creates a new MemoryUserRepository
func NewMemoryUserRepository(db *DB) *MemoryUserRepository {
	return &MemoryUserRepository{db: db}
}

// CreateUser stores a new user under a fresh id. Username uniqueness is the
// caller's responsibility.
func (r *MemoryUserRepository) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	user := models.User{
		ID:        r.db.newID(),
		Username:  req.Username,
		Name:      req.Name,
		CreatedAt: r.db.now(),
	}
	if req.Avatar != "" {
		avatar := req.Avatar
		user.Avatar = &avatar
	}
	r.db.users[user.ID] = user

	r.db.logger.Debug("user created", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *MemoryUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	user, ok := r.db.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by exact, case-sensitive username
func (r *MemoryUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, user := range r.db.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// ListUsers returns all users, oldest first
func (r *MemoryUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	users := make([]models.User, 0, len(r.db.users))
	for _, user := range r.db.users {
		users = append(users, user)
	}
	r.db.mu.RUnlock()

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

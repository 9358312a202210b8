package models

import "time"

// User is an account that can author posts and comments.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"` // case-sensitive, not enforced unique
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserRequest defines the input for creating a user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,url"`
}

package models

import "time"

// Like records that a user likes a post. At most one exists per (UserID, PostID).
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PostID    string    `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

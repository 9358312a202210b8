package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	PostID  string `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CommentWithAuthor is a comment joined with its author
type CommentWithAuthor struct {
	Comment
	Author User `json:"author"`
}

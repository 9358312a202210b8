package models

import "time"

// Post represents a feed post. The three counters are maintained by the
// repositories and are never set by callers.
type Post struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"authorId"`
	Content       string    `json:"content"`
	ImageURL      *string   `json:"imageUrl"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	SharesCount   int       `json:"sharesCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for a partial post update.
// Nil fields are left untouched; an empty ImageURL clears the image.
type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty" validate:"omitnil,min=1,max=2000"`
	ImageURL *string `json:"imageUrl,omitempty" validate:"omitnil,url"`
}

// PostWithAuthor is a post joined with its author and the viewer's like flag
type PostWithAuthor struct {
	Post
	Author  User `json:"author"`
	IsLiked bool `json:"isLiked"`
}

// Package feed builds the author-joined, viewer-annotated views that the
// request layer renders. It only reads from the repositories.
package feed

import (
	"context"
	"errors"

	"github.com/anonto42/feedstore/backend/internal/models"
	"github.com/anonto42/feedstore/backend/internal/repositories"
)

// Projector joins posts and comments with their authors
type Projector struct {
	userRepository    repositories.UserRepository
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
}

// NewProjector creates a new Projector
func NewProjector(
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
) *Projector {
	return &Projector{
		userRepository:    userRepo,
		postRepository:    postRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
	}
}

// Posts returns every post with a resolvable author, most recent first,
// flagged with whether viewerID likes it.
func (p *Projector) Posts(ctx context.Context, viewerID string) ([]models.PostWithAuthor, error) {
	posts, err := p.postRepository.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]*models.User)
	enriched := make([]models.PostWithAuthor, 0, len(posts))
	for _, post := range posts {
		author, err := p.author(ctx, authors, post.AuthorID)
		if err != nil {
			return nil, err
		}
		if author == nil {
			continue
		}

		liked, err := p.likeRepository.HasUserLikedPost(ctx, viewerID, post.ID)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, models.PostWithAuthor{Post: post, Author: *author, IsLiked: liked})
	}
	return enriched, nil
}

// Post returns a single joined post. It wraps repositories.ErrNotFound when
// the post is missing or its author cannot be resolved.
func (p *Projector) Post(ctx context.Context, viewerID, postID string) (*models.PostWithAuthor, error) {
	post, err := p.postRepository.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	author, err := p.userRepository.GetUserByID(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	liked, err := p.likeRepository.HasUserLikedPost(ctx, viewerID, post.ID)
	if err != nil {
		return nil, err
	}
	return &models.PostWithAuthor{Post: *post, Author: *author, IsLiked: liked}, nil
}

// Comments returns the comments of a post, oldest first. Comments whose
// author is missing are left out.
func (p *Projector) Comments(ctx context.Context, postID string) ([]models.CommentWithAuthor, error) {
	comments, err := p.commentRepository.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	authors := make(map[string]*models.User)
	enriched := make([]models.CommentWithAuthor, 0, len(comments))
	for _, comment := range comments {
		author, err := p.author(ctx, authors, comment.AuthorID)
		if err != nil {
			return nil, err
		}
		if author == nil {
			continue
		}
		enriched = append(enriched, models.CommentWithAuthor{Comment: comment, Author: *author})
	}
	return enriched, nil
}

// author resolves a user through a per-call cache. A nil user with a nil
// error means the author does not exist.
func (p *Projector) author(ctx context.Context, cache map[string]*models.User, id string) (*models.User, error) {
	if user, ok := cache[id]; ok {
		return user, nil
	}
	user, err := p.userRepository.GetUserByID(ctx, id)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	cache[id] = user
	return user, nil
}

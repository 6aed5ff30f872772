// Package service holds the business rules on top of the stores: input is
// trimmed and validated here, storage goes through the repository
// interfaces, and every state change is logged.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakif/edumentor/internal/apperror"
	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

// PostService manages the video posts users publish.
type PostService struct {
	posts  repository.PostRepository
	logger *slog.Logger
}

func NewPostService(posts repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, logger: logger}
}

// Create trims and saves post. The store validates it and fills in ID and
// DateCreated.
func (s *PostService) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	post.Title = strings.TrimSpace(post.Title)
	post.Description = strings.TrimSpace(post.Description)
	post.VideoURL = strings.TrimSpace(post.VideoURL)

	if post.User.ID == 0 {
		return nil, apperror.ValidationFailed("user", "user is required")
	}

	if err := s.posts.Save(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("title", post.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.Int64("id", post.ID),
		slog.Int64("userID", post.User.ID),
		slog.String("title", post.Title),
	)
	return post, nil
}

// Get returns apperror.ErrNotFound when there is no post with id.
func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "post ID must be positive")
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NotFound("post", strconv.FormatInt(id, 10))
	}
	return post, nil
}

func (s *PostService) ListByCategory(ctx context.Context, categoryID int64) ([]model.Post, error) {
	return s.posts.FindByCategoryID(ctx, categoryID)
}

// Search matches term against post titles. A blank term lists every post.
func (s *PostService) Search(ctx context.Context, term string) ([]model.Post, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.posts.FindAll(ctx)
	}
	return s.posts.Search(ctx, term)
}

// Delete removes the post with id on behalf of actor. Authors may delete
// their own posts, admins any post.
func (s *PostService) Delete(ctx context.Context, id int64, actor *model.User) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, post.User.ID, "post"); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting post %d: %w", id, err)
	}

	s.logger.Info("post deleted",
		slog.Int64("id", id),
		slog.Int64("authorID", post.User.ID),
		slog.Int64("actorID", actor.ID),
		slog.Bool("moderated", actor.ID != post.User.ID),
	)
	return nil
}

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
	"github.com/sakif/edumentor/internal/validate"
)

// ReviewParams is the input of ReviewService.Create.
type ReviewParams struct {
	PostID        int64  `json:"postId"        validate:"required"`
	Rating        int    `json:"rating"        validate:"required,min=1,max=5"`
	ReviewMessage string `json:"reviewMessage" validate:"required"`
}

// ReviewService records ratings of posts.
type ReviewService struct {
	reviews repository.ReviewRepository
	posts   repository.PostRepository
	logger  *slog.Logger
}

func NewReviewService(reviews repository.ReviewRepository, posts repository.PostRepository, logger *slog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, posts: posts, logger: logger}
}

// Create saves author's review of an existing post.
func (s *ReviewService) Create(ctx context.Context, author *model.User, p ReviewParams) (*model.Review, error) {
	if author == nil || author.ID == 0 {
		return nil, apperror.Unauthorized("login required")
	}
	p.ReviewMessage = strings.TrimSpace(p.ReviewMessage)
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, p.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperror.NotFound("post", strconv.FormatInt(p.PostID, 10))
	}

	review := &model.Review{
		Rating:        p.Rating,
		ReviewMessage: p.ReviewMessage,
		User:          author.Summary(),
		Post:          post.Summary(),
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("reviewing post %d: %w", post.ID, err)
	}

	s.logger.Info("post reviewed",
		slog.Int64("postID", post.ID),
		slog.Int64("reviewID", review.ID),
		slog.Int("rating", review.Rating),
	)
	return review, nil
}

// ForPost lists the reviews of postID.
func (s *ReviewService) ForPost(ctx context.Context, postID int64) ([]model.Review, error) {
	return s.reviews.FindByPostID(ctx, postID)
}

package sqlstore

import (
	"context"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

var _ repository.ReviewRepository = (*ReviewStore)(nil)

const reviewBase = `SELECT reviews.review_id AS review_id, reviews.rating AS rating, reviews.review_message AS review_message,
	reviews.date_sent AS date_sent,
	reviews.user_id AS user_id, users.username AS username,
	reviews.post_id AS post_id, posts.title AS post_title
FROM reviews
LEFT JOIN users ON reviews.user_id = users.user_id
LEFT JOIN posts ON reviews.post_id = posts.post_id`

type ReviewStore struct {
	db   *DB
	base query
}

func mapReview(r Row) model.Review {
	return model.Review{
		ID:            r.Int64("review_id"),
		Rating:        r.Int("rating"),
		ReviewMessage: r.String("review_message"),
		DateSent:      r.Time("date_sent"),
		User: model.UserSummary{
			ID:       r.Int64("user_id"),
			Username: r.String("username"),
		},
		Post: model.PostSummary{
			ID:    r.Int64("post_id"),
			Title: r.String("post_title"),
		},
	}
}

// Save inserts review and sets its ID. Rating must be between 1 and 5.
func (s *ReviewStore) Save(ctx context.Context, review *model.Review) error {
	if err := s.db.check("reviews", "save", review); err != nil {
		return err
	}
	sent := s.db.timestamp(review.DateSent)

	id, err := s.db.insert(ctx, "reviews", "review_id",
		`INSERT INTO reviews (rating, user_id, post_id, review_message, date_sent)
		 VALUES (?, ?, ?, ?, ?)`,
		review.Rating,
		nullID(review.User.ID),
		nullID(review.Post.ID),
		review.ReviewMessage,
		sent,
	)
	if err != nil {
		return err
	}
	review.ID = id
	review.DateSent = sent
	return nil
}

func (s *ReviewStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "reviews", "review_id", id)
}

func (s *ReviewStore) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	return first(ctx, s.db, "reviews", "find_by_id", s.base.Where("reviews.review_id = ?", id), mapReview)
}

func (s *ReviewStore) FindAll(ctx context.Context) ([]model.Review, error) {
	return list(ctx, s.db, "reviews", "find_all", s.base.OrderBy("reviews.review_id"), mapReview)
}

func (s *ReviewStore) FindByUserID(ctx context.Context, userID int64) ([]model.Review, error) {
	q := s.base.Where("reviews.user_id = ?", userID).OrderBy("reviews.review_id")
	return list(ctx, s.db, "reviews", "find_by_user_id", q, mapReview)
}

func (s *ReviewStore) FindByPostID(ctx context.Context, postID int64) ([]model.Review, error) {
	q := s.base.Where("reviews.post_id = ?", postID).OrderBy("reviews.review_id")
	return list(ctx, s.db, "reviews", "find_by_post_id", q, mapReview)
}

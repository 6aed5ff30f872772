package sqlstore

import (
	"context"
	"time"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

var _ repository.PostRepository = (*PostStore)(nil)

const postBase = `SELECT posts.post_id AS post_id, posts.title AS title, posts.description AS description,
	posts.video_url AS video_url, posts.date_created AS date_created,
	posts.user_id AS user_id, users.username AS username,
	posts.category_id AS category_id, categories.category_name AS category_name
FROM posts
LEFT JOIN users ON posts.user_id = users.user_id
LEFT JOIN categories ON posts.category_id = categories.category_id`

type PostStore struct {
	db   *DB
	base query
}

func mapPost(r Row) model.Post {
	return model.Post{
		ID:          r.Int64("post_id"),
		Title:       r.String("title"),
		Description: r.String("description"),
		VideoURL:    r.String("video_url"),
		DateCreated: r.Time("date_created"),
		User: model.UserSummary{
			ID:       r.Int64("user_id"),
			Username: r.String("username"),
		},
		Category: model.Category{
			ID:   r.Int64("category_id"),
			Name: r.String("category_name"),
		},
	}
}

// Save inserts post and sets its ID. DateCreated is stored as a date; an
// unset one becomes today.
func (s *PostStore) Save(ctx context.Context, post *model.Post) error {
	if err := s.db.check("posts", "save", post); err != nil {
		return err
	}
	created := s.db.date(post.DateCreated)

	id, err := s.db.insert(ctx, "posts", "post_id",
		`INSERT INTO posts (user_id, title, description, video_url, date_created, category_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nullID(post.User.ID),
		post.Title,
		post.Description,
		post.VideoURL,
		created.Format(time.DateOnly),
		nullID(post.Category.ID),
	)
	if err != nil {
		return err
	}
	post.ID = id
	post.DateCreated = created
	return nil
}

func (s *PostStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "posts", "post_id", id)
}

func (s *PostStore) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	return first(ctx, s.db, "posts", "find_by_id", s.base.Where("posts.post_id = ?", id), mapPost)
}

func (s *PostStore) FindAll(ctx context.Context) ([]model.Post, error) {
	return list(ctx, s.db, "posts", "find_all", s.base.OrderBy("posts.post_id"), mapPost)
}

func (s *PostStore) FindByUserID(ctx context.Context, userID int64) ([]model.Post, error) {
	q := s.base.Where("posts.user_id = ?", userID).OrderBy("posts.post_id")
	return list(ctx, s.db, "posts", "find_by_user_id", q, mapPost)
}

func (s *PostStore) FindByCategoryID(ctx context.Context, categoryID int64) ([]model.Post, error) {
	q := s.base.Where("posts.category_id = ?", categoryID).OrderBy("posts.post_id")
	return list(ctx, s.db, "posts", "find_by_category_id", q, mapPost)
}

// FindByTitle returns the posts whose title contains title.
func (s *PostStore) FindByTitle(ctx context.Context, title string) ([]model.Post, error) {
	q := s.base.Where(like(s.db.dialect, "posts.title"), contains(title)).OrderBy("posts.post_id")
	return list(ctx, s.db, "posts", "find_by_title", q, mapPost)
}

func (s *PostStore) FindByDate(ctx context.Context, date time.Time) ([]model.Post, error) {
	q := s.base.Where("posts.date_created = ?", day(date).Format(time.DateOnly)).OrderBy("posts.post_id")
	return list(ctx, s.db, "posts", "find_by_date", q, mapPost)
}

func (s *PostStore) Search(ctx context.Context, term string) ([]model.Post, error) {
	q := s.base.Where(like(s.db.dialect, "posts.title"), contains(term)).OrderBy("posts.post_id")
	return list(ctx, s.db, "posts", "search", q, mapPost)
}

package sqlstore

import (
	"context"
	"time"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

var _ repository.QuestionRepository = (*QuestionStore)(nil)

const questionBase = `SELECT questions.question_id AS question_id, questions.title AS title, questions.details AS details,
	questions.image_url AS image_url, questions.date_created AS date_created,
	questions.user_id AS user_id, users.username AS username,
	questions.category_id AS category_id, categories.category_name AS category_name
FROM questions
LEFT JOIN users ON questions.user_id = users.user_id
LEFT JOIN categories ON questions.category_id = categories.category_id`

type QuestionStore struct {
	db   *DB
	base query
}

func mapQuestion(r Row) model.Question {
	return model.Question{
		ID:          r.Int64("question_id"),
		Title:       r.String("title"),
		Details:     r.String("details"),
		ImageURL:    r.String("image_url"),
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

func (s *QuestionStore) Save(ctx context.Context, question *model.Question) error {
	if err := s.db.check("questions", "save", question); err != nil {
		return err
	}
	created := s.db.date(question.DateCreated)

	id, err := s.db.insert(ctx, "questions", "question_id",
		`INSERT INTO questions (user_id, title, details, image_url, date_created, category_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nullID(question.User.ID),
		question.Title,
		question.Details,
		question.ImageURL,
		created.Format(time.DateOnly),
		nullID(question.Category.ID),
	)
	if err != nil {
		return err
	}
	question.ID = id
	question.DateCreated = created
	return nil
}

func (s *QuestionStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "questions", "question_id", id)
}

func (s *QuestionStore) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	return first(ctx, s.db, "questions", "find_by_id", s.base.Where("questions.question_id = ?", id), mapQuestion)
}

func (s *QuestionStore) FindAll(ctx context.Context) ([]model.Question, error) {
	return list(ctx, s.db, "questions", "find_all", s.base.OrderBy("questions.question_id"), mapQuestion)
}

func (s *QuestionStore) FindByUserID(ctx context.Context, userID int64) ([]model.Question, error) {
	q := s.base.Where("questions.user_id = ?", userID).OrderBy("questions.question_id")
	return list(ctx, s.db, "questions", "find_by_user_id", q, mapQuestion)
}

func (s *QuestionStore) FindByCategoryID(ctx context.Context, categoryID int64) ([]model.Question, error) {
	q := s.base.Where("questions.category_id = ?", categoryID).OrderBy("questions.question_id")
	return list(ctx, s.db, "questions", "find_by_category_id", q, mapQuestion)
}

// FindByTitle returns the questions whose title contains title.
func (s *QuestionStore) FindByTitle(ctx context.Context, title string) ([]model.Question, error) {
	q := s.base.Where(like(s.db.dialect, "questions.title"), contains(title)).OrderBy("questions.question_id")
	return list(ctx, s.db, "questions", "find_by_title", q, mapQuestion)
}

func (s *QuestionStore) FindByDate(ctx context.Context, date time.Time) ([]model.Question, error) {
	q := s.base.Where("questions.date_created = ?", day(date).Format(time.DateOnly)).OrderBy("questions.question_id")
	return list(ctx, s.db, "questions", "find_by_date", q, mapQuestion)
}

// Search matches term against title and details.
func (s *QuestionStore) Search(ctx context.Context, term string) ([]model.Question, error) {
	d := s.db.dialect
	pattern := contains(term)
	q := s.base.
		Where(like(d, "questions.title")+" OR "+like(d, "questions.details"), pattern, pattern).
		OrderBy("questions.question_id")
	return list(ctx, s.db, "questions", "search", q, mapQuestion)
}

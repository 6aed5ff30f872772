package sqlstore

import (
	"context"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

var _ repository.AnswerRepository = (*AnswerStore)(nil)

const answerBase = `SELECT answers.answer_id AS answer_id, answers.response AS response, answers.image_url AS image_url,
	answers.date_created AS date_created,
	answers.question_id AS question_id, questions.title AS question_title,
	answers.user_id AS user_id, users.username AS username
FROM answers
LEFT JOIN questions ON answers.question_id = questions.question_id
LEFT JOIN users ON answers.user_id = users.user_id`

type AnswerStore struct {
	db   *DB
	base query
}

func mapAnswer(r Row) model.Answer {
	return model.Answer{
		ID:          r.Int64("answer_id"),
		Response:    r.String("response"),
		ImageURL:    r.String("image_url"),
		DateCreated: r.Time("date_created"),
		Question: model.QuestionSummary{
			ID:    r.Int64("question_id"),
			Title: r.String("question_title"),
		},
		User: model.UserSummary{
			ID:       r.Int64("user_id"),
			Username: r.String("username"),
		},
	}
}

func (s *AnswerStore) Save(ctx context.Context, answer *model.Answer) error {
	if err := s.db.check("answers", "save", answer); err != nil {
		return err
	}
	created := s.db.timestamp(answer.DateCreated)

	id, err := s.db.insert(ctx, "answers", "answer_id",
		`INSERT INTO answers (question_id, user_id, response, image_url, date_created)
		 VALUES (?, ?, ?, ?, ?)`,
		nullID(answer.Question.ID),
		nullID(answer.User.ID),
		answer.Response,
		answer.ImageURL,
		created,
	)
	if err != nil {
		return err
	}
	answer.ID = id
	answer.DateCreated = created
	return nil
}

func (s *AnswerStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "answers", "answer_id", id)
}

func (s *AnswerStore) FindByID(ctx context.Context, id int64) (*model.Answer, error) {
	return first(ctx, s.db, "answers", "find_by_id", s.base.Where("answers.answer_id = ?", id), mapAnswer)
}

func (s *AnswerStore) FindAll(ctx context.Context) ([]model.Answer, error) {
	return list(ctx, s.db, "answers", "find_all", s.base.OrderBy("answers.answer_id"), mapAnswer)
}

func (s *AnswerStore) FindByQuestionID(ctx context.Context, questionID int64) ([]model.Answer, error) {
	q := s.base.Where("answers.question_id = ?", questionID).OrderBy("answers.answer_id")
	return list(ctx, s.db, "answers", "find_by_question_id", q, mapAnswer)
}

func (s *AnswerStore) FindByUserID(ctx context.Context, userID int64) ([]model.Answer, error) {
	q := s.base.Where("answers.user_id = ?", userID).OrderBy("answers.answer_id")
	return list(ctx, s.db, "answers", "find_by_user_id", q, mapAnswer)
}

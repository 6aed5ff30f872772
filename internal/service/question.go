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

// AnswerParams is the input of QuestionService.Answer.
type AnswerParams struct {
	QuestionID int64  `json:"questionId" validate:"required"`
	Response   string `json:"response"   validate:"required"`
	ImageURL   string `json:"imageUrl"`
}

// QuestionService manages questions and their answers.
type QuestionService struct {
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	logger    *slog.Logger
}

func NewQuestionService(questions repository.QuestionRepository, answers repository.AnswerRepository, logger *slog.Logger) *QuestionService {
	return &QuestionService{questions: questions, answers: answers, logger: logger}
}

// Ask trims and saves question on behalf of its author.
func (s *QuestionService) Ask(ctx context.Context, question *model.Question) (*model.Question, error) {
	question.Title = strings.TrimSpace(question.Title)
	question.Details = strings.TrimSpace(question.Details)
	question.ImageURL = strings.TrimSpace(question.ImageURL)

	if question.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if question.User.ID == 0 {
		return nil, apperror.ValidationFailed("user", "user is required")
	}

	if err := s.questions.Save(ctx, question); err != nil {
		return nil, fmt.Errorf("creating question: %w", err)
	}

	s.logger.Info("question asked",
		slog.Int64("id", question.ID),
		slog.Int64("userID", question.User.ID),
	)
	return question, nil
}

// Get returns apperror.ErrNotFound when there is no question with id.
func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "question ID must be positive")
	}
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apperror.NotFound("question", strconv.FormatInt(id, 10))
	}
	return question, nil
}

// Search matches term against titles and details. A blank term lists every
// question.
func (s *QuestionService) Search(ctx context.Context, term string) ([]model.Question, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.questions.FindAll(ctx)
	}
	return s.questions.Search(ctx, term)
}

// Answer records author's answer to an existing question.
func (s *QuestionService) Answer(ctx context.Context, author *model.User, p AnswerParams) (*model.Answer, error) {
	if author == nil || author.ID == 0 {
		return nil, apperror.Unauthorized("login required")
	}
	p.Response = strings.TrimSpace(p.Response)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	question, err := s.Get(ctx, p.QuestionID)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		Response: p.Response,
		ImageURL: p.ImageURL,
		Question: question.Summary(),
		User:     author.Summary(),
	}
	if err := s.answers.Save(ctx, answer); err != nil {
		return nil, fmt.Errorf("answering question %d: %w", question.ID, err)
	}

	s.logger.Info("question answered",
		slog.Int64("questionID", question.ID),
		slog.Int64("answerID", answer.ID),
		slog.Int64("userID", author.ID),
	)
	return answer, nil
}

// Answers lists the answers to questionID, oldest first.
func (s *QuestionService) Answers(ctx context.Context, questionID int64) ([]model.Answer, error) {
	return s.answers.FindByQuestionID(ctx, questionID)
}

// Delete removes the question with id on behalf of actor. Authors may
// delete their own questions, admins any question.
func (s *QuestionService) Delete(ctx context.Context, id int64, actor *model.User) error {
	question, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, question.User.ID, "question"); err != nil {
		return err
	}

	if err := s.questions.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting question %d: %w", id, err)
	}

	s.logger.Info("question deleted",
		slog.Int64("id", id),
		slog.Int64("authorID", question.User.ID),
		slog.Int64("actorID", actor.ID),
	)
	return nil
}

// Package repository declares the entity store interfaces consumed by the
// service layer. The SQL implementation lives in repository/sqlstore.
//
// Shared contract of every store:
//   - Save validates the entity, inserts it and sets its generated ID.
//   - Delete of an unknown ID is a no-op.
//   - FindBy* returning a single entity returns (nil, nil) when no row matches.
//   - Finders returning a slice never return nil; no rows gives an empty slice.
//   - Substring finders take the bare term; the store adds the wildcards.
//   - Storage failures match apperror.ErrStorage, validation failures
//     apperror.ErrValidation.
package repository

import (
	"context"
	"time"

	"github.com/sakif/edumentor/internal/model"
)

type RoleRepository interface {
	Save(ctx context.Context, role *model.Role) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Role, error)
	FindAll(ctx context.Context) ([]model.Role, error)
	FindByName(ctx context.Context, name string) (*model.Role, error)
}

type CategoryRepository interface {
	Save(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
}

type UserRepository interface {
	Save(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByRole(ctx context.Context, roleID int64) ([]model.User, error)
	AssignRole(ctx context.Context, userID, roleID int64) error
	// Search matches username, first name or last name.
	Search(ctx context.Context, term string) ([]model.User, error)
}

type PostRepository interface {
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Post, error)
	FindByCategoryID(ctx context.Context, categoryID int64) ([]model.Post, error)
	FindByTitle(ctx context.Context, title string) ([]model.Post, error)
	// FindByDate returns the posts created on the calendar day of date.
	FindByDate(ctx context.Context, date time.Time) ([]model.Post, error)
	Search(ctx context.Context, term string) ([]model.Post, error)
}

type QuestionRepository interface {
	Save(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Question, error)
	FindAll(ctx context.Context) ([]model.Question, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Question, error)
	FindByCategoryID(ctx context.Context, categoryID int64) ([]model.Question, error)
	FindByTitle(ctx context.Context, title string) ([]model.Question, error)
	FindByDate(ctx context.Context, date time.Time) ([]model.Question, error)
	// Search matches title or details.
	Search(ctx context.Context, term string) ([]model.Question, error)
}

type AnswerRepository interface {
	Save(ctx context.Context, answer *model.Answer) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Answer, error)
	FindAll(ctx context.Context) ([]model.Answer, error)
	FindByQuestionID(ctx context.Context, questionID int64) ([]model.Answer, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Answer, error)
}

type ReviewRepository interface {
	Save(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Review, error)
	FindAll(ctx context.Context) ([]model.Review, error)
	FindByUserID(ctx context.Context, userID int64) ([]model.Review, error)
	FindByPostID(ctx context.Context, postID int64) ([]model.Review, error)
}

type MessageRepository interface {
	Save(ctx context.Context, message *model.Message) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*model.Message, error)
	FindAll(ctx context.Context) ([]model.Message, error)
	// FindByUserID returns messages sent or received by userID, oldest first.
	FindByUserID(ctx context.Context, userID int64) ([]model.Message, error)
	// FindBetween returns the conversation between two users in both
	// directions, oldest first.
	FindBetween(ctx context.Context, userA, userB int64) ([]model.Message, error)
	CountByUserID(ctx context.Context, userID int64) (int, error)
	// Recent returns at most limit messages of userID, newest first.
	Recent(ctx context.Context, userID int64, limit int) ([]model.Message, error)
}

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

// UserService covers account lookups and account removal.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Get returns apperror.ErrNotFound when there is no user with id.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "user ID must be positive")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
	}
	return user, nil
}

func (s *UserService) Search(ctx context.Context, term string) ([]model.User, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.users.FindAll(ctx)
	}
	return s.users.Search(ctx, term)
}

// Delete removes the account with id. Users may close their own account;
// admins may remove any. Everything the account wrote goes with it through
// the schema's cascades.
func (s *UserService) Delete(ctx context.Context, id int64, actor *model.User) error {
	target, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(actor, target.ID, "user"); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}

	s.logger.Info("user deleted",
		slog.Int64("id", id),
		slog.String("username", target.Username),
		slog.Int64("actorID", actor.ID),
	)
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakif/edumentor/internal/apperror"
	"github.com/sakif/edumentor/internal/auth"
	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
	"github.com/sakif/edumentor/internal/validate"
)

const (
	// DefaultRoleName is the role given to every new account.
	DefaultRoleName = "user"

	// DefaultProfilePictureURL is shown until the user uploads a picture.
	DefaultProfilePictureURL = "https://th.bing.com/th/id/OIP.hGSCbXlcOjL_9mmzerqAbQHaHa?rs=1&pid=ImgDetMain"
)

// errBadCredentials is deliberately vague: it must not tell which of the
// two credentials was wrong.
const errBadCredentials = "invalid username or password"

// SignupParams is the input of Register.
type SignupParams struct {
	Username  string `json:"username"  validate:"required,min=4"`
	Email     string `json:"email"     validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Password  string `json:"password"  validate:"required,min=4,max=72"`
}

type credentials struct {
	Username string `json:"username" validate:"required,min=4"`
	Password string `json:"password" validate:"required,min=4"`
}

// AuthResult bundles the user and the token issued for it.
type AuthResult struct {
	User  *model.User
	Token string
}

// AuthService registers accounts and logs users in.
type AuthService struct {
	users     repository.UserRepository
	roles     repository.RoleRepository
	tokens    *auth.TokenIssuer
	passwords *auth.PasswordHasher
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	tokens *auth.TokenIssuer,
	passwords *auth.PasswordHasher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		roles:     roles,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates an account with the default role and profile picture.
// A taken username is reported as apperror.ErrConflict.
func (s *AuthService) Register(ctx context.Context, p SignupParams) (*model.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)

	if err := validate.Struct(p); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByUsername(ctx, p.Username)
	if err != nil {
		return nil, fmt.Errorf("service/auth: checking username: %w", err)
	}
	if existing != nil {
		return nil, &apperror.AppError{
			Err:     apperror.ErrConflict,
			Message: "username " + p.Username + " is already taken",
			Field:   "username",
		}
	}

	hash, err := s.passwords.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	user := &model.User{
		Username:          p.Username,
		PasswordHash:      hash,
		Email:             p.Email,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		ProfilePictureURL: DefaultProfilePictureURL,
	}

	role, err := s.roles.FindByName(ctx, DefaultRoleName)
	if err != nil {
		return nil, fmt.Errorf("service/auth: looking up default role: %w", err)
	}
	if role != nil {
		user.Role = *role
	} else {
		s.logger.Warn("default role missing, registering user without a role",
			slog.String("role", DefaultRoleName),
		)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: saving user %s: %w", p.Username, err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login checks the credentials and issues a token. Unknown users and wrong
// passwords both return apperror.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	c := credentials{Username: strings.TrimSpace(username), Password: password}
	if err := validate.Struct(c); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, c.Username)
	if err != nil {
		return nil, fmt.Errorf("service/auth: finding user %s: %w", c.Username, err)
	}
	if user == nil {
		s.logger.Info("login rejected", slog.String("username", c.Username), slog.String("reason", "unknown user"))
		return nil, apperror.Unauthorized(errBadCredentials)
	}

	if err := s.passwords.Verify(user.PasswordHash, c.Password); err != nil {
		if !errors.Is(err, auth.ErrMismatch) {
			s.logger.Error("stored password hash unusable",
				slog.Int64("userID", user.ID),
				slog.String("error", err.Error()),
			)
		}
		s.logger.Info("login rejected", slog.String("username", c.Username), slog.String("reason", "bad password"))
		return nil, apperror.Unauthorized(errBadCredentials)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken returns the claims of a token issued by Login.
func (s *AuthService) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperror.Unauthorized("token expired")
		}
		return nil, apperror.Unauthorized("invalid token")
	}
	return claims, nil
}

// CurrentUser resolves the user a token was issued to.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, apperror.Unauthorized("invalid token")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %d: %w", id, err)
	}
	if user == nil {
		return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
	}
	return user, nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/edumentor/internal/apperror"
	"github.com/sakif/edumentor/internal/auth"
)

func newTestAuthService(t *testing.T, users *fakeUserRepo) *AuthService {
	t.Helper()

	tokens, err := auth.NewTokenIssuer("test-secret-at-least-16-chars!!", time.Hour)
	require.NoError(t, err)

	roles := &fakeRoleRepo{}
	roles.roles = append(roles.roles, roleAdmin, roleUser)
	return NewAuthService(users, roles, tokens, auth.NewPasswordHasherWithCost(4), discardLogger())
}

func validSignup() SignupParams {
	return SignupParams{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Liddell",
		Password:  "wonderland",
	}
}

// =========================================================================
// Register TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(t, users)

	user, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, roleUser, user.Role)
	assert.Equal(t, DefaultProfilePictureURL, user.ProfilePictureURL)
	assert.NotEqual(t, "wonderland", user.PasswordHash)
	assert.NoError(t, auth.NewPasswordHasherWithCost(4).Verify(user.PasswordHash, "wonderland"))
}

func TestRegister_TrimsWhitespace(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	p := validSignup()
	p.Username = "  alice  "
	user, err := svc.Register(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*SignupParams)
		wantField string
		wantMsg   string
	}{
		{"missing username", func(p *SignupParams) { p.Username = "" }, "username", "username is required"},
		{"short username", func(p *SignupParams) { p.Username = "bob" }, "username", "username must be at least 4 characters"},
		{"bad email", func(p *SignupParams) { p.Email = "not-an-email" }, "email", "email must be a valid email"},
		{"missing first name", func(p *SignupParams) { p.FirstName = "   " }, "firstName", "firstName is required"},
		{"missing last name", func(p *SignupParams) { p.LastName = "" }, "lastName", "lastName is required"},
		{"missing password", func(p *SignupParams) { p.Password = "" }, "password", "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepo()
			svc := newTestAuthService(t, users)

			p := validSignup()
			tt.modify(&p)
			_, err := svc.Register(context.Background(), p)

			require.ErrorIs(t, err, apperror.ErrValidation)
			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Equal(t, tt.wantMsg, appErr.Message)
			assert.Empty(t, users.users, "nothing may be saved")
		})
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validSignup())
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestRegister_NoDefaultRole(t *testing.T) {
	tokens, _ := auth.NewTokenIssuer("test-secret-at-least-16-chars!!", time.Hour)
	svc := NewAuthService(newFakeUserRepo(), &fakeRoleRepo{}, tokens, auth.NewPasswordHasherWithCost(4), discardLogger())

	user, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)
	assert.Zero(t, user.Role.ID)
}

func TestRegister_StorageFailure(t *testing.T) {
	users := newFakeUserRepo()
	users.err = apperror.Storage("users.find_by_username", errors.New("connection reset"))
	svc := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), validSignup())
	assert.ErrorIs(t, err, apperror.ErrStorage)
}

// =========================================================================
// Login TESTS
// =========================================================================

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())
	registered, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, res.User.ID)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)
	assert.Equal(t, "user", claims.Role)
}

func TestLogin_Rejected(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())
	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"wrong password", "alice", "looking-glass", apperror.ErrUnauthorized},
		{"unknown user", "mallory", "wonderland", apperror.ErrUnauthorized},
		{"short username", "al", "wonderland", apperror.ErrValidation},
		{"short password", "alice", "abc", apperror.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(context.Background(), tt.username, tt.password)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_SameMessageForUnknownUserAndBadPassword(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())
	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "mallory", "wonderland")
	_, errWrong := svc.Login(context.Background(), "alice", "looking-glass")
	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

// =========================================================================
// TOKEN TESTS
// =========================================================================

func TestValidateToken_Invalid(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestCurrentUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(t, users)
	_, err := svc.Register(context.Background(), validSignup())
	require.NoError(t, err)
	res, err := svc.Login(context.Background(), "alice", "wonderland")
	require.NoError(t, err)

	user, err := svc.CurrentUser(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// the account is gone but the token is still valid
	delete(users.users, user.ID)
	_, err = svc.CurrentUser(context.Background(), res.Token)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

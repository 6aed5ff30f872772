package sqlstore

import (
	"context"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

// compile-time check that *UserStore implements repository.UserRepository
var _ repository.UserRepository = (*UserStore)(nil)

// userBase always joins roles, so a loaded User carries its full Role.
const userBase = `SELECT users.user_id AS user_id, users.username AS username, users.password AS password,
	users.email AS email, users.first_name AS first_name, users.last_name AS last_name,
	users.date_created AS date_created, users.profile_picture_url AS profile_picture_url, users.bio AS bio,
	users.role_id AS role_id, roles.role_name AS role_name
FROM users
LEFT JOIN roles ON users.role_id = roles.role_id`

type UserStore struct {
	db   *DB
	base query
}

func mapUser(r Row) model.User {
	return model.User{
		ID:                r.Int64("user_id"),
		Username:          r.String("username"),
		PasswordHash:      r.String("password"),
		Email:             r.String("email"),
		FirstName:         r.String("first_name"),
		LastName:          r.String("last_name"),
		DateCreated:       r.Time("date_created"),
		ProfilePictureURL: r.String("profile_picture_url"),
		Bio:               r.String("bio"),
		Role: model.Role{
			ID:   r.Int64("role_id"),
			Name: r.String("role_name"),
		},
	}
}

// Save inserts user and sets its ID. An unset DateCreated is set to now.
func (s *UserStore) Save(ctx context.Context, user *model.User) error {
	if err := s.db.check("users", "save", user); err != nil {
		return err
	}
	created := s.db.timestamp(user.DateCreated)

	id, err := s.db.insert(ctx, "users", "user_id",
		`INSERT INTO users (username, password, email, first_name, last_name, date_created, profile_picture_url, bio, role_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		created,
		user.ProfilePictureURL,
		user.Bio,
		nullID(user.Role.ID),
	)
	if err != nil {
		return err
	}
	user.ID = id
	user.DateCreated = created
	return nil
}

// Update rewrites every column of the row with user's ID except
// date_created. It returns apperror.ErrNotFound when no such row exists.
func (s *UserStore) Update(ctx context.Context, user *model.User) error {
	if err := s.db.check("users", "update", user); err != nil {
		return err
	}
	n, err := s.db.exec(ctx, "users", "update",
		`UPDATE users SET username = ?, password = ?, email = ?, first_name = ?, last_name = ?,
		 profile_picture_url = ?, bio = ?, role_id = ?
		 WHERE user_id = ?`,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ProfilePictureURL,
		user.Bio,
		nullID(user.Role.ID),
		user.ID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("users", user.ID)
	}
	return nil
}

// AssignRole points the user at roleID. It returns apperror.ErrNotFound
// when the user does not exist.
func (s *UserStore) AssignRole(ctx context.Context, userID, roleID int64) error {
	n, err := s.db.exec(ctx, "users", "assign_role",
		`UPDATE users SET role_id = ? WHERE user_id = ?`, nullID(roleID), userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("users", userID)
	}
	return nil
}

func (s *UserStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "users", "user_id", id)
}

func (s *UserStore) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return first(ctx, s.db, "users", "find_by_id", s.base.Where("users.user_id = ?", id), mapUser)
}

func (s *UserStore) FindAll(ctx context.Context) ([]model.User, error) {
	return list(ctx, s.db, "users", "find_all", s.base.OrderBy("users.user_id"), mapUser)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return first(ctx, s.db, "users", "find_by_username", s.base.Where("users.username = ?", username), mapUser)
}

func (s *UserStore) FindByRole(ctx context.Context, roleID int64) ([]model.User, error) {
	q := s.base.Where("users.role_id = ?", roleID).OrderBy("users.user_id")
	return list(ctx, s.db, "users", "find_by_role", q, mapUser)
}

// Search matches term against username, first name and last name.
func (s *UserStore) Search(ctx context.Context, term string) ([]model.User, error) {
	d := s.db.dialect
	pattern := contains(term)
	q := s.base.
		Where(like(d, "users.username")+" OR "+like(d, "users.first_name")+" OR "+like(d, "users.last_name"),
			pattern, pattern, pattern).
		OrderBy("users.user_id")
	return list(ctx, s.db, "users", "search", q, mapUser)
}

package sqlstore

import (
	"context"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

var _ repository.RoleRepository = (*RoleStore)(nil)

const roleBase = `SELECT roles.role_id AS role_id, roles.role_name AS role_name FROM roles`

type RoleStore struct {
	db   *DB
	base query
}

func mapRole(r Row) model.Role {
	return model.Role{
		ID:   r.Int64("role_id"),
		Name: r.String("role_name"),
	}
}

func (s *RoleStore) Save(ctx context.Context, role *model.Role) error {
	if err := s.db.check("roles", "save", role); err != nil {
		return err
	}
	id, err := s.db.insert(ctx, "roles", "role_id",
		`INSERT INTO roles (role_name) VALUES (?)`, role.Name)
	if err != nil {
		return err
	}
	role.ID = id
	return nil
}

func (s *RoleStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "roles", "role_id", id)
}

func (s *RoleStore) FindByID(ctx context.Context, id int64) (*model.Role, error) {
	return first(ctx, s.db, "roles", "find_by_id", s.base.Where("roles.role_id = ?", id), mapRole)
}

func (s *RoleStore) FindAll(ctx context.Context) ([]model.Role, error) {
	return list(ctx, s.db, "roles", "find_all", s.base.OrderBy("roles.role_id"), mapRole)
}

func (s *RoleStore) FindByName(ctx context.Context, name string) (*model.Role, error) {
	return first(ctx, s.db, "roles", "find_by_name", s.base.Where("roles.role_name = ?", name), mapRole)
}

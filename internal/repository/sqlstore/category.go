package sqlstore

import (
	"context"

	"github.com/sakif/edumentor/internal/model"
	"github.com/sakif/edumentor/internal/repository"
)

var _ repository.CategoryRepository = (*CategoryStore)(nil)

const categoryBase = `SELECT categories.category_id AS category_id, categories.category_name AS category_name FROM categories`

type CategoryStore struct {
	db   *DB
	base query
}

func mapCategory(r Row) model.Category {
	return model.Category{
		ID:   r.Int64("category_id"),
		Name: r.String("category_name"),
	}
}

func (s *CategoryStore) Save(ctx context.Context, category *model.Category) error {
	if err := s.db.check("categories", "save", category); err != nil {
		return err
	}
	id, err := s.db.insert(ctx, "categories", "category_id",
		`INSERT INTO categories (category_name) VALUES (?)`, category.Name)
	if err != nil {
		return err
	}
	category.ID = id
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	return s.db.remove(ctx, "categories", "category_id", id)
}

func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	return first(ctx, s.db, "categories", "find_by_id", s.base.Where("categories.category_id = ?", id), mapCategory)
}

func (s *CategoryStore) FindAll(ctx context.Context) ([]model.Category, error) {
	return list(ctx, s.db, "categories", "find_all", s.base.OrderBy("categories.category_id"), mapCategory)
}

func (s *CategoryStore) FindByName(ctx context.Context, name string) (*model.Category, error) {
	return first(ctx, s.db, "categories", "find_by_name", s.base.Where("categories.category_name = ?", name), mapCategory)
}

package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error)
	InsertCategory(ctx context.Context, type_ string) (sqlcgen.Category, error)
}

// CategoryRepository wraps sqlc queries for category access.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) List(ctx context.Context) ([]catalog.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCategory(row))
	}
	return out, nil
}

func (r *CategoryRepository) Get(ctx context.Context, categoryID int) (catalog.Category, error) {
	id, ok := toID(categoryID)
	if !ok {
		return catalog.Category{}, catalog.ErrStoreNotFound
	}
	row, err := r.store.GetCategory(ctx, id)
	if err != nil {
		return catalog.Category{}, translate(err)
	}
	return toCategory(row), nil
}

func (r *CategoryRepository) Insert(ctx context.Context, c catalog.NewCategory) (catalog.Category, error) {
	row, err := r.store.InsertCategory(ctx, c.Type)
	if err != nil {
		return catalog.Category{}, err
	}
	return toCategory(row), nil
}

func toCategory(row sqlcgen.Category) catalog.Category {
	return catalog.Category{ID: int(row.ID), Type: row.Type}
}

package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

// CatalogStore combines both repositories behind the catalog.Store contract.
type CatalogStore struct {
	categories *CategoryRepository
	questions  *QuestionRepository
}

var _ catalog.Store = (*CatalogStore)(nil)

// NewCatalogStore builds a store from any type exposing the generated
// category and question queries, usually *sqlcgen.Queries.
func NewCatalogStore(queries interface {
	categoryStore
	questionStore
}) *CatalogStore {
	return &CatalogStore{
		categories: NewCategoryRepository(queries),
		questions:  NewQuestionRepository(queries),
	}
}

func (s *CatalogStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogStore) GetCategory(ctx context.Context, id int) (catalog.Category, error) {
	return s.categories.Get(ctx, id)
}

func (s *CatalogStore) InsertCategory(ctx context.Context, c catalog.NewCategory) (catalog.Category, error) {
	return s.categories.Insert(ctx, c)
}

func (s *CatalogStore) ListQuestions(ctx context.Context) ([]catalog.Question, error) {
	return s.questions.List(ctx)
}

func (s *CatalogStore) FindQuestionsByCategory(ctx context.Context, categoryID int) ([]catalog.Question, error) {
	return s.questions.ListByCategory(ctx, categoryID)
}

func (s *CatalogStore) SearchQuestions(ctx context.Context, term string) ([]catalog.Question, error) {
	return s.questions.Search(ctx, term)
}

func (s *CatalogStore) GetQuestion(ctx context.Context, id int) (catalog.Question, error) {
	return s.questions.Get(ctx, id)
}

func (s *CatalogStore) InsertQuestion(ctx context.Context, q catalog.NewQuestion) (catalog.Question, error) {
	return s.questions.Insert(ctx, q)
}

func (s *CatalogStore) DeleteQuestion(ctx context.Context, id int) (bool, error) {
	return s.questions.Delete(ctx, id)
}

package catalog

import "context"

// Store is the catalog persistence boundary. Listings are ordered by
// ascending id. Lookups return ErrStoreNotFound when no row matches.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int) (Category, error)
	InsertCategory(ctx context.Context, c NewCategory) (Category, error)

	ListQuestions(ctx context.Context) ([]Question, error)
	FindQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
	GetQuestion(ctx context.Context, id int) (Question, error)
	InsertQuestion(ctx context.Context, q NewQuestion) (Question, error)
	// DeleteQuestion reports false when no question has the id.
	DeleteQuestion(ctx context.Context, id int) (bool, error)
}

package repository

import (
	"context"
	"errors"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]sqlcgen.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error)
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
}

// QuestionRepository wraps sqlc queries for question access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]catalog.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	return toQuestions(rows), nil
}

// ListByCategory returns a category's questions ordered by id. Ids that
// cannot exist in the table yield an empty result.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]catalog.Question, error) {
	id, ok := toID(categoryID)
	if !ok {
		return []catalog.Question{}, nil
	}
	rows, err := r.store.ListQuestionsByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toQuestions(rows), nil
}

// Search returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]catalog.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, term)
	if err != nil {
		return nil, err
	}
	return toQuestions(rows), nil
}

func (r *QuestionRepository) Get(ctx context.Context, questionID int) (catalog.Question, error) {
	id, ok := toID(questionID)
	if !ok {
		return catalog.Question{}, catalog.ErrStoreNotFound
	}
	row, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		return catalog.Question{}, translate(err)
	}
	return toQuestion(row), nil
}

// Insert stores a question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, q catalog.NewQuestion) (catalog.Question, error) {
	category, ok := toID(q.Category)
	if !ok {
		return catalog.Question{}, errors.New("category id out of range")
	}
	difficulty, ok := toID(q.Difficulty)
	if !ok {
		return catalog.Question{}, errors.New("difficulty out of range")
	}
	row, err := r.store.InsertQuestion(ctx, sqlcgen.InsertQuestionParams{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   category,
		Difficulty: difficulty,
	})
	if err != nil {
		return catalog.Question{}, err
	}
	return toQuestion(row), nil
}

// Delete removes a question and reports whether a row was affected.
func (r *QuestionRepository) Delete(ctx context.Context, questionID int) (bool, error) {
	id, ok := toID(questionID)
	if !ok {
		return false, nil
	}
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func toQuestion(row sqlcgen.Question) catalog.Question {
	return catalog.Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

func toQuestions(rows []sqlcgen.Question) []catalog.Question {
	out := make([]catalog.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

// toID narrows an id to the SERIAL column range.
func toID(id int) (int32, bool) {
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, false
	}
	return int32(id), true
}

func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.ErrStoreNotFound
	}
	return err
}

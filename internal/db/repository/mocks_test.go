package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type mockQueries struct {
	mock.Mock
}

func (m *mockQueries) ListCategories(ctx context.Context) ([]sqlcgen.Category, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]sqlcgen.Category)
	return rows, args.Error(1)
}

func (m *mockQueries) GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlcgen.Category), args.Error(1)
}

func (m *mockQueries) InsertCategory(ctx context.Context, type_ string) (sqlcgen.Category, error) {
	args := m.Called(ctx, type_)
	return args.Get(0).(sqlcgen.Category), args.Error(1)
}

func (m *mockQueries) ListQuestions(ctx context.Context) ([]sqlcgen.Question, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]sqlcgen.Question)
	return rows, args.Error(1)
}

func (m *mockQueries) ListQuestionsByCategory(ctx context.Context, category int32) ([]sqlcgen.Question, error) {
	args := m.Called(ctx, category)
	rows, _ := args.Get(0).([]sqlcgen.Question)
	return rows, args.Error(1)
}

func (m *mockQueries) SearchQuestions(ctx context.Context, term string) ([]sqlcgen.Question, error) {
	args := m.Called(ctx, term)
	rows, _ := args.Get(0).([]sqlcgen.Question)
	return rows, args.Error(1)
}

func (m *mockQueries) GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(sqlcgen.Question), args.Error(1)
}

func (m *mockQueries) InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(sqlcgen.Question), args.Error(1)
}

func (m *mockQueries) DeleteQuestion(ctx context.Context, id int32) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

package importer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

type fakeCatalog struct {
	categories map[int]string
	questions  []catalog.QuestionInput
	nextCat    int
	insertErr  error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{categories: map[int]string{1: "Science", 2: "History"}, nextCat: 3}
}

func (f *fakeCatalog) CategoryIndex(context.Context) (map[int]string, error) {
	out := make(map[int]string, len(f.categories))
	for k, v := range f.categories {
		out[k] = v
	}
	return out, nil
}

func (f *fakeCatalog) AddCategory(_ context.Context, in catalog.CategoryInput) (catalog.Category, error) {
	if err := in.Validate(); err != nil {
		return catalog.Category{}, err
	}
	id := f.nextCat
	f.nextCat++
	f.categories[id] = in.Type
	return catalog.Category{ID: id, Type: in.Type}, nil
}

func (f *fakeCatalog) AddQuestion(_ context.Context, in catalog.QuestionInput) (catalog.Question, error) {
	if f.insertErr != nil {
		return catalog.Question{}, f.insertErr
	}
	if err := in.Validate(); err != nil {
		return catalog.Question{}, err
	}
	f.questions = append(f.questions, in)
	nq := in.NewQuestion()
	return catalog.Question{
		ID:         len(f.questions),
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   nq.Category,
		Difficulty: nq.Difficulty,
	}, nil
}

type staticSource struct {
	items []Item
	err   error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Fetch(context.Context, int) ([]Item, error) { return s.items, s.err }

func TestDifficultyScore(t *testing.T) {
	assert.Equal(t, 1, DifficultyScore("easy"))
	assert.Equal(t, 3, DifficultyScore("medium"))
	assert.Equal(t, 5, DifficultyScore(" HARD "))
	assert.Equal(t, 3, DifficultyScore(""))
}

func TestRunCreatesMissingCategories(t *testing.T) {
	cat := newFakeCatalog()
	src := staticSource{items: []Item{
		{Category: "science", Question: "What is H2O?", Answer: "Water", Difficulty: 1},
		{Category: "Mythology", Question: "Who is the Norse god of thunder?", Answer: "Thor", Difficulty: 3},
		{Category: "Mythology", Question: "Who carried the world on his shoulders?", Answer: "Atlas", Difficulty: 5},
	}}

	report, err := New(cat, zerolog.Nop()).Run(context.Background(), src, 3)
	require.NoError(t, err)

	assert.Equal(t, Report{Source: "static", Fetched: 3, Inserted: 3, CategoriesCreated: 1}, report)
	require.Len(t, cat.questions, 3)
	assert.Equal(t, catalog.FlexInt(1), cat.questions[0].Category)
	assert.Equal(t, catalog.FlexInt(3), cat.questions[1].Category)
	assert.Equal(t, catalog.FlexInt(3), cat.questions[2].Category)
	assert.Equal(t, "Mythology", cat.categories[3])
}

func TestRunSkipsRejectedItems(t *testing.T) {
	cat := newFakeCatalog()
	src := staticSource{items: []Item{
		{Category: "History", Question: "   ", Answer: "Nobody", Difficulty: 3},
		{Category: "", Question: "Orphan?", Answer: "Yes", Difficulty: 3},
		{Category: "History", Question: "Who was the first US president?", Answer: "George Washington", Difficulty: 1},
	}}

	report, err := New(cat, zerolog.Nop()).Run(context.Background(), src, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 0, report.CategoriesCreated)
}

func TestRunStopsOnInfrastructureError(t *testing.T) {
	cat := newFakeCatalog()
	cat.insertErr = errors.New("pool closed")
	src := staticSource{items: []Item{{Category: "Science", Question: "Q", Answer: "A", Difficulty: 3}}}

	_, err := New(cat, zerolog.Nop()).Run(context.Background(), src, 1)
	assert.ErrorContains(t, err, "pool closed")
}

func TestRunPropagatesFetchError(t *testing.T) {
	_, err := New(newFakeCatalog(), zerolog.Nop()).Run(context.Background(), staticSource{err: errors.New("timeout")}, 5)
	assert.ErrorContains(t, err, "fetch from static")

	_, err = New(newFakeCatalog(), zerolog.Nop()).Run(context.Background(), staticSource{}, 0)
	assert.Error(t, err)
}

func TestOpenTDBClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("amount"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"category":"Entertainment: Film","type":"multiple","difficulty":"hard","question":"Who directed &quot;Jaws&quot;?","correct_answer":"Steven Spielberg","incorrect_answers":["A","B","C"]},
			{"category":"Science &amp; Nature","type":"boolean","difficulty":"easy","question":"The sun is a star.","correct_answer":"True","incorrect_answers":["False"]}
		]}`))
	}))
	defer srv.Close()

	items, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, Item{Category: "Entertainment: Film", Question: `Who directed "Jaws"?`, Answer: "Steven Spielberg", Difficulty: 5}, items[0])
	assert.Equal(t, "Science & Nature", items[1].Category)
	assert.Equal(t, 1, items[1].Difficulty)
}

func TestOpenTDBClientResponseCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":1,"results":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 2)
	assert.ErrorContains(t, err, "response code 1")
}

func TestTriviaAPIClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/questions", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`[{"category":"film_and_tv","question":{"text":"Which film features Rick Blaine?"},"difficulty":"medium","correctAnswer":"Casablanca","incorrectAnswers":["X"]}]`))
	}))
	defer srv.Close()

	items, err := NewTriviaAPIClient(srv.URL, "secret", srv.Client()).Fetch(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, Item{Category: "Film And Tv", Question: "Which film features Rick Blaine?", Answer: "Casablanca", Difficulty: 3}, items[0])
}

func TestTriviaAPIClientNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewTriviaAPIClient(srv.URL, "", srv.Client()).Fetch(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"))
}

package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// memoryStore is an ordered in-memory Store used across package tests.
type memoryStore struct {
	mu         sync.Mutex
	categories []Category
	questions  []Question
	nextCat    int
	nextQ      int

	failInsert bool
	failReads  bool
	listCalls  int
}

var errStoreDown = errors.New("store down")

func newMemoryStore() *memoryStore {
	return &memoryStore{nextCat: 1, nextQ: 1}
}

// fixtureStore seeds six categories and questions, two of which contain
// "title" in varying case.
func fixtureStore() *memoryStore {
	s := newMemoryStore()
	for _, t := range []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"} {
		s.addCategory(t)
	}
	s.addQuestion("What is the heaviest organ in the human body?", "The Liver", 1, 4)
	s.addQuestion("Who discovered penicillin?", "Alexander Fleming", 1, 3)
	s.addQuestion("What movie earned Tom Hanks his third straight Oscar nomination?", "Apollo 13", 5, 4)
	s.addQuestion("Whose autobiography has the TITLE 'I Know Why the Caged Bird Sings'?", "Maya Angelou", 4, 2)
	s.addQuestion("What was the title of the 1990 fantasy directed by Tim Burton?", "Edward Scissorhands", 5, 3)
	s.addQuestion("Which country won the first ever soccer World Cup in 1930?", "Uruguay", 6, 4)
	s.addQuestion("What is the largest lake in Africa?", "Lake Victoria", 3, 2)
	return s
}

func (s *memoryStore) addCategory(t string) Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Category{ID: s.nextCat, Type: t}
	s.nextCat++
	s.categories = append(s.categories, c)
	return c
}

func (s *memoryStore) addQuestion(question, answer string, category, difficulty int) Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := Question{ID: s.nextQ, Question: question, Answer: answer, Category: category, Difficulty: difficulty}
	s.nextQ++
	s.questions = append(s.questions, q)
	return q
}

func (s *memoryStore) ListCategories(_ context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return nil, errStoreDown
	}
	return append([]Category(nil), s.categories...), nil
}

func (s *memoryStore) GetCategory(_ context.Context, id int) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failReads {
		return Category{}, errStoreDown
	}
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrStoreNotFound
}

func (s *memoryStore) InsertCategory(ctx context.Context, c NewCategory) (Category, error) {
	if s.failInsert {
		return Category{}, errStoreDown
	}
	return s.addCategory(c.Type), nil
}

func (s *memoryStore) ListQuestions(_ context.Context) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.failReads {
		return nil, errStoreDown
	}
	out := append([]Question(nil), s.questions...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) FindQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	all, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	var out []Question
	for _, q := range all {
		if q.Category == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	all, err := s.ListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	var out []Question
	for _, q := range all {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) GetQuestion(_ context.Context, id int) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, ErrStoreNotFound
}

func (s *memoryStore) InsertQuestion(_ context.Context, q NewQuestion) (Question, error) {
	if s.failInsert {
		return Question{}, errStoreDown
	}
	return s.addQuestion(q.Question, q.Answer, q.Category, q.Difficulty), nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// memoryCache is a CategoryCache stub that counts hits.
type memoryCache struct {
	mu          sync.Mutex
	categories  []Category
	hits        int
	invalidated int
}

func (c *memoryCache) Get(_ context.Context) ([]Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.categories != nil {
		c.hits++
	}
	return c.categories, nil
}

func (c *memoryCache) Set(_ context.Context, categories []Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if categories == nil {
		categories = []Category{}
	}
	c.categories = categories
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = nil
	c.invalidated++
	return nil
}

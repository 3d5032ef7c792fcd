package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Service answers catalog queries and quiz draws on top of a Store.
type Service struct {
	store  Store
	cache  CategoryCache
	pick   Picker
	logger zerolog.Logger
}

type ServiceOptions struct {
	// Picker overrides the uniform random source used by NextQuestion.
	Picker Picker
}

// NewService wires the query engine. cache may be nil.
func NewService(store Store, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pick:   opts.Picker,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// ListQuestions returns one page of every question in id order.
func (s *Service) ListQuestions(ctx context.Context, page int) (Page[Question], error) {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return Page[Question]{}, fmt.Errorf("list questions: %w", err)
	}
	items := Paginate(all, page, QuestionsPerPage)
	if len(items) == 0 {
		return Page[Question]{}, notFound("page %d is empty (%d questions)", page, len(all))
	}
	return Page[Question]{Items: items, Total: len(all)}, nil
}

// SearchQuestions matches term case-insensitively as a substring of the
// question text. Zero matches is a valid empty page, never NotFound.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (Page[Question], error) {
	if strings.TrimSpace(term) == "" {
		return Page[Question]{}, unprocessable("search term is blank")
	}
	matches, err := s.store.SearchQuestions(ctx, term)
	if err != nil {
		return Page[Question]{}, fmt.Errorf("search questions: %w", err)
	}
	return Page[Question]{
		Items: Paginate(matches, page, QuestionsPerPage),
		Total: len(matches),
	}, nil
}

// ListQuestionsByCategory returns one page of a category's questions.
// An unknown or empty category is Unprocessable; an empty page of a
// nonempty category is NotFound.
func (s *Service) ListQuestionsByCategory(ctx context.Context, categoryID, page int) (Page[Question], Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return Page[Question]{}, Category{}, unprocessable("category %d does not exist", categoryID)
		}
		return Page[Question]{}, Category{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}

	matches, err := s.store.FindQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return Page[Question]{}, Category{}, fmt.Errorf("list category %d questions: %w", categoryID, err)
	}
	if len(matches) == 0 {
		return Page[Question]{}, category, unprocessable("category %d has no questions", categoryID)
	}

	items := Paginate(matches, page, QuestionsPerPage)
	if len(items) == 0 {
		return Page[Question]{}, category, notFound("page %d of category %d is empty", page, categoryID)
	}
	return Page[Question]{Items: items, Total: len(matches)}, category, nil
}

// GetQuestion looks up a single question.
func (s *Service) GetQuestion(ctx context.Context, id int) (Question, error) {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			return Question{}, notFound("question %d does not exist", id)
		}
		return Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return q, nil
}

// CreateQuestion validates and inserts a question, then re-reads the full
// listing so the returned page reflects the write.
func (s *Service) CreateQuestion(ctx context.Context, in QuestionInput, page int) (QuestionMutation, error) {
	created, err := s.AddQuestion(ctx, in)
	if err != nil {
		return QuestionMutation{}, err
	}

	listing, err := s.relistQuestions(ctx, page)
	if err != nil {
		return QuestionMutation{}, err
	}
	return QuestionMutation{ID: created.ID, Listing: listing}, nil
}

// AddQuestion validates and inserts a question without re-reading the
// listing. Bulk loaders use it directly.
func (s *Service) AddQuestion(ctx context.Context, in QuestionInput) (Question, error) {
	if err := in.Validate(); err != nil {
		return Question{}, err
	}
	created, err := s.store.InsertQuestion(ctx, in.NewQuestion())
	if err != nil {
		s.logger.Error().Err(err).Msg("insert question failed")
		return Question{}, unprocessable("insert question: %v", err)
	}
	s.logger.Info().Int("question_id", created.ID).Int("category", created.Category).Msg("question created")
	return created, nil
}

// DeleteQuestion removes a question by id. An unknown id is Unprocessable
// and leaves the catalog unchanged.
func (s *Service) DeleteQuestion(ctx context.Context, id, page int) (QuestionMutation, error) {
	deleted, err := s.store.DeleteQuestion(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("question_id", id).Msg("delete question failed")
		return QuestionMutation{}, unprocessable("delete question %d: %v", id, err)
	}
	if !deleted {
		return QuestionMutation{}, unprocessable("question %d does not exist", id)
	}
	s.logger.Info().Int("question_id", id).Msg("question deleted")

	listing, err := s.relistQuestions(ctx, page)
	if err != nil {
		return QuestionMutation{}, err
	}
	return QuestionMutation{ID: id, Listing: listing}, nil
}

// relistQuestions reads the post-write state. An empty page here is not an
// error: the write itself succeeded.
func (s *Service) relistQuestions(ctx context.Context, page int) (Page[Question], error) {
	all, err := s.store.ListQuestions(ctx)
	if err != nil {
		return Page[Question]{}, fmt.Errorf("relist questions: %w", err)
	}
	return Page[Question]{Items: Paginate(all, page, QuestionsPerPage), Total: len(all)}, nil
}

// ListCategories returns one page of categories in id order.
func (s *Service) ListCategories(ctx context.Context, page int) (Page[Category], error) {
	all, err := s.categories(ctx)
	if err != nil {
		return Page[Category]{}, err
	}
	items := Paginate(all, page, CategoriesPerPage)
	if len(items) == 0 {
		return Page[Category]{}, notFound("page %d is empty (%d categories)", page, len(all))
	}
	return Page[Category]{Items: items, Total: len(all)}, nil
}

// CategoryIndex maps category id to its type for listing payloads.
func (s *Service) CategoryIndex(ctx context.Context) (map[int]string, error) {
	all, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int]string, len(all))
	for _, c := range all {
		index[c.ID] = c.Type
	}
	return index, nil
}

// CreateCategory validates and inserts a category, drops the cached
// listing and returns the re-read category page.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput, page int) (CategoryMutation, error) {
	created, err := s.AddCategory(ctx, in)
	if err != nil {
		return CategoryMutation{}, err
	}

	all, err := s.categories(ctx)
	if err != nil {
		return CategoryMutation{}, err
	}
	return CategoryMutation{
		ID:      created.ID,
		Listing: Page[Category]{Items: Paginate(all, page, CategoriesPerPage), Total: len(all)},
	}, nil
}

// AddCategory validates and inserts a category and drops the cached
// listing.
func (s *Service) AddCategory(ctx context.Context, in CategoryInput) (Category, error) {
	if err := in.Validate(); err != nil {
		return Category{}, err
	}
	created, err := s.store.InsertCategory(ctx, NewCategory{Type: in.Type})
	if err != nil {
		s.logger.Error().Err(err).Msg("insert category failed")
		return Category{}, unprocessable("insert category: %v", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("category cache invalidation failed")
		}
	}
	s.logger.Info().Int("category_id", created.ID).Str("type", created.Type).Msg("category created")
	return created, nil
}

func (s *Service) categories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	all, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, all); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return all, nil
}

// NextQuestion draws one question the caller has not seen yet.
//
// An unknown category, or a pool with no questions at all, is Unprocessable
// and the returned Selection has CandidateCount 0. A valid pool that the
// exclusion set covers entirely is a normal end of quiz: no error,
// Exhausted set.
func (s *Service) NextQuestion(ctx context.Context, req QuizRequest) (Selection, error) {
	var (
		candidates []Question
		err        error
	)
	if req.AllCategories() {
		candidates, err = s.store.ListQuestions(ctx)
		if err != nil {
			return Selection{}, fmt.Errorf("list quiz candidates: %w", err)
		}
	} else {
		categoryID := req.CategoryID()
		if categoryID < 1 {
			return Selection{}, unprocessable("invalid quiz category %d", categoryID)
		}
		if _, err := s.store.GetCategory(ctx, categoryID); err != nil {
			if errors.Is(err, ErrStoreNotFound) {
				return Selection{}, unprocessable("quiz category %d does not exist", categoryID)
			}
			return Selection{}, fmt.Errorf("get quiz category %d: %w", categoryID, err)
		}
		candidates, err = s.store.FindQuestionsByCategory(ctx, categoryID)
		if err != nil {
			return Selection{}, fmt.Errorf("list quiz candidates for category %d: %w", categoryID, err)
		}
	}

	sel := Select(candidates, req.PreviousQuestions, s.pick)
	if sel.CandidateCount == 0 {
		return sel, unprocessable("quiz pool is empty")
	}
	return sel, nil
}

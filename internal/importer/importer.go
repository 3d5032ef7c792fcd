package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
)

// Catalog is the write surface the importer needs. *catalog.Service
// satisfies it, so every insert passes the same validation as the API.
type Catalog interface {
	CategoryIndex(ctx context.Context) (map[int]string, error)
	AddCategory(ctx context.Context, in catalog.CategoryInput) (catalog.Category, error)
	AddQuestion(ctx context.Context, in catalog.QuestionInput) (catalog.Question, error)
}

var _ Catalog = (*catalog.Service)(nil)

// Report summarizes one import run.
type Report struct {
	Source            string
	Fetched           int
	Inserted          int
	Skipped           int
	CategoriesCreated int
}

// Importer copies upstream questions into the catalog.
type Importer struct {
	catalog Catalog
	logger  zerolog.Logger
}

func New(c Catalog, logger zerolog.Logger) *Importer {
	return &Importer{
		catalog: c,
		logger:  logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches amount questions from src and inserts them, creating
// categories by name as needed. Items the catalog rejects are skipped.
func (im *Importer) Run(ctx context.Context, src Source, amount int) (Report, error) {
	report := Report{Source: src.Name()}
	if amount < 1 {
		return report, fmt.Errorf("amount must be positive, got %d", amount)
	}

	items, err := src.Fetch(ctx, amount)
	if err != nil {
		return report, fmt.Errorf("fetch from %s: %w", src.Name(), err)
	}
	report.Fetched = len(items)

	index, err := im.catalog.CategoryIndex(ctx)
	if err != nil {
		return report, fmt.Errorf("load categories: %w", err)
	}
	byName := make(map[string]int, len(index))
	for id, name := range index {
		byName[strings.ToLower(name)] = id
	}

	for _, item := range items {
		categoryID, created, err := im.resolveCategory(ctx, byName, item.Category)
		if err != nil {
			if isRejected(err) {
				im.logger.Warn().Err(err).Str("category", item.Category).Msg("skipping item with invalid category")
				report.Skipped++
				continue
			}
			return report, err
		}
		if created {
			report.CategoriesCreated++
		}

		_, err = im.catalog.AddQuestion(ctx, catalog.QuestionInput{
			Question:   item.Question,
			Answer:     item.Answer,
			Category:   catalog.FlexInt(categoryID),
			Difficulty: catalog.FlexInt(item.Difficulty),
		})
		if err != nil {
			if isRejected(err) {
				im.logger.Warn().Err(err).Str("question", item.Question).Msg("skipping rejected question")
				report.Skipped++
				continue
			}
			return report, fmt.Errorf("insert question: %w", err)
		}
		report.Inserted++
	}

	im.logger.Info().
		Str("source", report.Source).
		Int("fetched", report.Fetched).
		Int("inserted", report.Inserted).
		Int("skipped", report.Skipped).
		Int("categories_created", report.CategoriesCreated).
		Msg("import finished")
	return report, nil
}

func (im *Importer) resolveCategory(ctx context.Context, byName map[string]int, name string) (int, bool, error) {
	key := strings.ToLower(name)
	if id, ok := byName[key]; ok {
		return id, false, nil
	}
	result, err := im.catalog.AddCategory(ctx, catalog.CategoryInput{Type: name})
	if err != nil {
		return 0, false, err
	}
	byName[key] = result.ID
	im.logger.Info().Int("category_id", result.ID).Str("type", name).Msg("category created")
	return result.ID, true, nil
}

func isRejected(err error) bool {
	return errors.Is(err, catalog.ErrUnprocessable)
}

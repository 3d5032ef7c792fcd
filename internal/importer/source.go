package importer

import (
	"context"
	"html"
	"strings"
)

// Item is one upstream question normalized for the catalog.
type Item struct {
	Category   string
	Question   string
	Answer     string
	Difficulty int
}

// Source fetches up to amount questions from an upstream trivia provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context, amount int) ([]Item, error)
}

// DifficultyScore maps upstream labels onto the 1..5 catalog scale.
func DifficultyScore(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}

func newItem(category, question, answer, difficulty string) Item {
	return Item{
		Category:   strings.TrimSpace(html.UnescapeString(category)),
		Question:   strings.TrimSpace(html.UnescapeString(question)),
		Answer:     strings.TrimSpace(html.UnescapeString(answer)),
		Difficulty: DifficultyScore(difficulty),
	}
}

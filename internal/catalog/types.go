package catalog

// Page sizes are fixed per entity and not configurable per request.
const (
	QuestionsPerPage  = 10
	CategoriesPerPage = 8
)

// Category groups questions by topic.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is a single trivia entry as stored in the catalog.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// NewQuestion carries validated fields for an insert; the store assigns the id.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// NewCategory carries validated fields for a category insert.
type NewCategory struct {
	Type string
}

// Page is one window of an ordered listing. Total is the size of the
// listing before pagination.
type Page[T any] struct {
	Items []T
	Total int
}

// QuestionMutation reports an insert or delete together with a fresh
// listing read after the write.
type QuestionMutation struct {
	ID      int
	Listing Page[Question]
}

// CategoryMutation reports a category insert and the re-read category listing.
type CategoryMutation struct {
	ID      int
	Listing Page[Category]
}

package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank rejects empty and whitespace-only strings.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// FlexInt decodes a JSON integer or a string holding one. Clients send
// category ids both ways.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*n = FlexInt(v)
	return nil
}

// QuestionInput is the create-question payload.
type QuestionInput struct {
	Question   string  `json:"question" validate:"notblank"`
	Answer     string  `json:"answer" validate:"notblank"`
	Category   FlexInt `json:"category" validate:"gte=1"`
	Difficulty FlexInt `json:"difficulty" validate:"gte=1,lte=5"`
}

// Validate reports any shape problem as a single Unprocessable error.
func (in QuestionInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return unprocessable("invalid question: %v", err)
	}
	return nil
}

// NewQuestion converts a validated input into store fields.
func (in QuestionInput) NewQuestion() NewQuestion {
	return NewQuestion{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   int(in.Category),
		Difficulty: int(in.Difficulty),
	}
}

// CategoryInput is the create-category payload.
type CategoryInput struct {
	Type string `json:"type" validate:"notblank"`
}

func (in CategoryInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return unprocessable("invalid category: %v", err)
	}
	return nil
}

// SearchRequest carries the search term under either key clients send.
type SearchRequest struct {
	SearchTerm *string `json:"searchTerm"`
	Search     *string `json:"search"`
}

// Term returns the search term, preferring searchTerm. Nil means neither
// key was present.
func (r SearchRequest) Term() *string {
	if r.SearchTerm != nil {
		return r.SearchTerm
	}
	return r.Search
}

// QuizCategory selects the candidate pool. Id 0 or type "all" means every
// category.
type QuizCategory struct {
	ID   FlexInt `json:"id"`
	Type string  `json:"type"`
}

// QuizRequest asks for the next unseen question. PreviousQuestions is the
// caller's exclusion set and grows by one id per call.
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// AllCategories reports whether the request draws from the whole catalog.
func (r QuizRequest) AllCategories() bool {
	if r.QuizCategory == nil {
		return true
	}
	return r.QuizCategory.ID == 0 || strings.EqualFold(strings.TrimSpace(r.QuizCategory.Type), "all")
}

// CategoryID is the requested category; only meaningful when AllCategories is false.
func (r QuizRequest) CategoryID() int {
	if r.QuizCategory == nil {
		return 0
	}
	return int(r.QuizCategory.ID)
}

// ParseID parses a path id. Anything but a positive integer is a BadRequest.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, badRequest("invalid id %q", raw)
	}
	return id, nil
}

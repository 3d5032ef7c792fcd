package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntDecoding(t *testing.T) {
	cases := []struct {
		raw     string
		want    FlexInt
		wantErr bool
	}{
		{`3`, 3, false},
		{`"4"`, 4, false},
		{`" 5 "`, 5, false},
		{`null`, 0, false},
		{`"abc"`, 0, true},
		{`2.5`, 0, true},
		{`true`, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var n FlexInt
			err := json.Unmarshal([]byte(tc.raw), &n)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestQuestionInputValidate(t *testing.T) {
	valid := QuestionInput{Question: "What?", Answer: "That", Category: 2, Difficulty: 3}
	assert.NoError(t, valid.Validate())

	cases := map[string]func(in *QuestionInput){
		"missing question":    func(in *QuestionInput) { in.Question = "" },
		"blank answer":        func(in *QuestionInput) { in.Answer = "   " },
		"missing category":    func(in *QuestionInput) { in.Category = 0 },
		"difficulty too low":  func(in *QuestionInput) { in.Difficulty = 0 },
		"difficulty too high": func(in *QuestionInput) { in.Difficulty = 6 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.Equal(t, KindUnprocessable, KindOf(err))
		})
	}
}

func TestQuestionInputFromJSON(t *testing.T) {
	var in QuestionInput
	require.NoError(t, json.Unmarshal([]byte(`{"question":"Q","answer":"A","category":"3","difficulty":2}`), &in))
	assert.NoError(t, in.Validate())
	assert.Equal(t, NewQuestion{Question: "Q", Answer: "A", Category: 3, Difficulty: 2}, in.NewQuestion())
}

func TestCategoryInputValidate(t *testing.T) {
	assert.NoError(t, CategoryInput{Type: "Music"}.Validate())
	assert.Equal(t, KindUnprocessable, KindOf(CategoryInput{Type: " "}.Validate()))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, raw := range []string{"", "abc", "1.5", "0", "-4"} {
		_, err := ParseID(raw)
		assert.Equal(t, KindBadRequest, KindOf(err), "raw=%q", raw)
	}
}

func TestQuizRequestCategory(t *testing.T) {
	assert.True(t, QuizRequest{}.AllCategories())
	assert.True(t, QuizRequest{QuizCategory: &QuizCategory{ID: 0, Type: "click"}}.AllCategories())
	assert.True(t, QuizRequest{QuizCategory: &QuizCategory{ID: 3, Type: "ALL"}}.AllCategories())

	req := QuizRequest{QuizCategory: &QuizCategory{ID: 3, Type: "Geography"}}
	assert.False(t, req.AllCategories())
	assert.Equal(t, 3, req.CategoryID())
}

func TestErrorKinds(t *testing.T) {
	err := notFound("page %d", 9)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnprocessable)
	assert.Equal(t, 404, KindNotFound.Status())
	assert.Equal(t, 422, KindUnprocessable.Status())
	assert.Equal(t, 400, KindBadRequest.Status())
	assert.Equal(t, 405, KindMethodNotAllowed.Status())
	assert.Equal(t, "resource not found", KindNotFound.Message())
	assert.Equal(t, "resource not found: page 9", err.Error())
	assert.Zero(t, KindOf(errStoreDown))
}

package questionbank_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bosserz/ged-assessment/internal/questionbank"
	"github.com/bosserz/ged-assessment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonQuestions = `[
  {"id": "q1", "question": "Choose the correct verb.", "options": ["go", "goes"], "answer": "goes", "tags": ["grammar"]},
  {"id": "q2", "question": "Pick the synonym of rapid.", "options": ["slow", "quick"], "answer": "quick", "tags": ["vocabulary", "reading"]}
]`

const yamlQuestions = `
- id: q1
  question: Choose the correct verb.
  options: [go, goes]
  answer: goes
  tags: [grammar]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFileSource(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		source := questionbank.NewFileSource(writeFile(t, "questions.json", jsonQuestions))

		questions, err := source.Questions(context.Background())
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, models.Question{
			ID:       "q2",
			Question: "Pick the synonym of rapid.",
			Options:  []string{"slow", "quick"},
			Answer:   "quick",
			Tags:     []string{"vocabulary", "reading"},
		}, questions[1])
	})

	t.Run("yaml", func(t *testing.T) {
		source := questionbank.NewFileSource(writeFile(t, "questions.yml", yamlQuestions))

		questions, err := source.Questions(context.Background())
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, []string{"go", "goes"}, questions[0].Options)
		assert.Equal(t, []string{"grammar"}, questions[0].Tags)
	})

	t.Run("empty list", func(t *testing.T) {
		source := questionbank.NewFileSource(writeFile(t, "questions.json", "[]"))

		questions, err := source.Questions(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, questions)
		assert.Empty(t, questions)
	})

	t.Run("missing file", func(t *testing.T) {
		source := questionbank.NewFileSource(filepath.Join(t.TempDir(), "nope.json"))

		_, err := source.Questions(context.Background())
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		source := questionbank.NewFileSource(writeFile(t, "questions.json", "{not json"))

		_, err := source.Questions(context.Background())
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := models.Question{ID: "q1", Options: []string{"A", "B"}, Answer: "A", Tags: []string{"grammar"}}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, questionbank.Validate([]models.Question{valid}))
	})

	t.Run("empty set", func(t *testing.T) {
		require.NoError(t, questionbank.Validate(nil))
	})

	t.Run("duplicate id", func(t *testing.T) {
		err := questionbank.Validate([]models.Question{valid, valid})
		require.ErrorIs(t, err, questionbank.ErrDuplicateID)
	})

	t.Run("answer not an option", func(t *testing.T) {
		q := valid
		q.Answer = "C"

		err := questionbank.Validate([]models.Question{q})
		require.ErrorIs(t, err, questionbank.ErrAnswerNotAnOption)
	})

	t.Run("collects every problem", func(t *testing.T) {
		err := questionbank.Validate([]models.Question{{}})
		require.ErrorIs(t, err, questionbank.ErrEmptyID)
		require.ErrorIs(t, err, questionbank.ErrNoOptions)
		require.ErrorIs(t, err, questionbank.ErrNoTags)
	})
}

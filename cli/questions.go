package cli

import (
	"context"

	"github.com/bosserz/ged-assessment/internal/questionbank"
	"github.com/bosserz/ged-assessment/models"
	"github.com/samber/lo"
)

// ValidateQuestionsResult summarizes a valid question file.
type ValidateQuestionsResult struct {
	Questions int
	Tags      []string
}

// ValidateQuestions loads a question file and checks every question.
// It does not need storage.
func ValidateQuestions(ctx context.Context, path string) (*ValidateQuestionsResult, error) {
	questions, err := questionbank.NewFileSource(path).Questions(ctx)
	if err != nil {
		return nil, err
	}

	if err := questionbank.Validate(questions); err != nil {
		return nil, err
	}

	tags := lo.Uniq(lo.FlatMap(questions, func(q models.Question, _ int) []string {
		return q.Tags
	}))

	return &ValidateQuestionsResult{Questions: len(questions), Tags: tags}, nil
}

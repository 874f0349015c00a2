// Package scoring turns submitted answers into a TestResult.
package scoring

import (
	"slices"

	"github.com/bosserz/ged-assessment/models"
	"github.com/samber/lo"
)

// Answers maps a question ID to the option the student selected.
type Answers map[string]string

// Answer returns the selected option for questionID, or models.NotAnswered.
func (a Answers) Answer(questionID string) string {
	if answer, ok := a[questionID]; ok && answer != "" {
		return answer
	}

	return models.NotAnswered
}

// Score grades answers against questions.
//
// Answers are compared by exact string equality. Every tag of a question is
// counted once per question, and the tags whose correctness ratio is strictly
// below models.WeakSkillThreshold are reported as weak skills in the order
// they first appear in the question set.
func Score(student models.Student, questions []models.Question, answers Answers) models.TestResult {
	result := models.TestResult{
		Name:       student.Name,
		Email:      student.Email,
		Total:      len(questions),
		TagStats:   make(map[string]models.TagStat),
		WeakSkills: []string{},
		Feedback:   make([]models.Feedback, 0, len(questions)),
	}

	var tagOrder []string

	for _, q := range questions {
		userAnswer := answers.Answer(q.ID)
		isCorrect := userAnswer == q.Answer

		if isCorrect {
			result.Score++
		}

		for _, tag := range q.Tags {
			stat, seen := result.TagStats[tag]
			if !seen {
				tagOrder = append(tagOrder, tag)
			}

			stat.Total++
			if isCorrect {
				stat.Correct++
			}
			result.TagStats[tag] = stat
		}

		result.Feedback = append(result.Feedback, models.Feedback{
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.Answer,
			IsCorrect:     isCorrect,
			Tags:          append([]string{}, q.Tags...),
		})
	}

	result.WeakSkills = lo.Filter(tagOrder, func(tag string, _ int) bool {
		return result.TagStats[tag].Weak()
	})

	return result
}

// Tags returns the tags of result in the order they first appear in its
// feedback, falling back to sorted order for tags only present in TagStats.
func Tags(result models.TestResult) []string {
	var tags []string
	for _, f := range result.Feedback {
		tags = append(tags, f.Tags...)
	}
	tags = lo.Uniq(tags)

	rest := lo.Without(lo.Keys(result.TagStats), tags...)
	slices.Sort(rest)

	return append(lo.Filter(tags, func(tag string, _ int) bool {
		_, ok := result.TagStats[tag]
		return ok
	}), rest...)
}

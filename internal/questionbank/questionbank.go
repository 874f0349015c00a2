// Package questionbank loads the question set served to students.
package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bosserz/ged-assessment/models"
	"gopkg.in/yaml.v3"
)

// Source provides the current question set.
type Source interface {
	Questions(ctx context.Context) ([]models.Question, error)
}

// FileSource reads the question set from a JSON or YAML file on every call,
// so edits to the file are served without a restart.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Questions(ctx context.Context) ([]models.Question, error) {
	_, span := tracer.Start(ctx, "FileSource.Questions")
	defer span.End()

	content, err := os.ReadFile(s.path)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read question file: %w", err)
	}

	questions, err := Parse(s.path, content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return questions, nil
}

// Parse decodes a question set by file extension: .yaml and .yml are YAML,
// .xlsx is a spreadsheet, everything else is JSON.
func Parse(filename string, content []byte) ([]models.Question, error) {
	var questions []models.Question

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParseXLSX(content)
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &questions); err != nil {
			return nil, fmt.Errorf("unmarshal yaml questions: %w", err)
		}
	default:
		if err := json.Unmarshal(content, &questions); err != nil {
			return nil, fmt.Errorf("unmarshal json questions: %w", err)
		}
	}

	if questions == nil {
		questions = []models.Question{}
	}

	return questions, nil
}

var (
	ErrEmptyID           = errors.New("question id is empty")
	ErrDuplicateID       = errors.New("duplicate question id")
	ErrNoOptions         = errors.New("question has no options")
	ErrAnswerNotAnOption = errors.New("answer is not one of the options")
	ErrNoTags            = errors.New("question has no tags")
)

// Validate checks that every question can be answered and scored.
func Validate(questions []models.Question) error {
	var errs []error
	seen := make(map[string]bool, len(questions))

	for i, q := range questions {
		where := fmt.Sprintf("question %d (%q)", i+1, q.ID)

		if q.ID == "" {
			errs = append(errs, fmt.Errorf("%s: %w", where, ErrEmptyID))
		} else if seen[q.ID] {
			errs = append(errs, fmt.Errorf("%s: %w", where, ErrDuplicateID))
		}
		seen[q.ID] = true

		if len(q.Options) == 0 {
			errs = append(errs, fmt.Errorf("%s: %w", where, ErrNoOptions))
		} else if !slices.Contains(q.Options, q.Answer) {
			errs = append(errs, fmt.Errorf("%s: %w", where, ErrAnswerNotAnOption))
		}

		if len(q.Tags) == 0 {
			errs = append(errs, fmt.Errorf("%s: %w", where, ErrNoTags))
		}
	}

	return errors.Join(errs...)
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/bosserz/ged-assessment/models"
)

const (
	submissionsPrefix = "submissions/"
	recordPrefix      = "submission_"

	contentTypeJSON = "application/json"
	contentTypePDF  = "application/pdf"

	// timestampLayout mirrors an ISO-8601 timestamp with microseconds.
	timestampLayout = "2006-01-02T15:04:05.000000"
)

// ErrInvalidFilename is returned for names that are not a plain file name.
var ErrInvalidFilename = errors.New("invalid filename")

// SubmissionRepository stores submission records and their PDF reports.
type SubmissionRepository struct {
	store Store
	now   func() time.Time
}

func NewSubmissionRepository(store Store) *SubmissionRepository {
	return &SubmissionRepository{store: store, now: time.Now}
}

// Timestamp returns the current time in the record timestamp format.
func (r *SubmissionRepository) Timestamp() string {
	return r.now().Format(timestampLayout)
}

// SaveSubmission stores the record and returns its filename.
// A missing timestamp is filled in.
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, submission *models.Submission) (string, error) {
	if submission.Timestamp == "" {
		submission.Timestamp = r.Timestamp()
	}

	body, err := json.MarshalIndent(submission, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal submission: %w", err)
	}

	filename := RecordFilename(submission.Timestamp)
	if err := r.store.Put(ctx, submissionsPrefix+filename, contentTypeJSON, body); err != nil {
		return "", err
	}

	return filename, nil
}

// SaveReport stores a PDF report under its plain filename.
func (r *SubmissionRepository) SaveReport(ctx context.Context, filename string, pdf []byte) error {
	if err := ValidateFilename(filename); err != nil {
		return err
	}

	return r.store.Put(ctx, submissionsPrefix+filename, contentTypePDF, pdf)
}

// Submissions lists every stored record, oldest first.
func (r *SubmissionRepository) Submissions(ctx context.Context) ([]models.SubmissionSummary, error) {
	keys, err := r.store.List(ctx, submissionsPrefix+recordPrefix)
	if err != nil {
		return nil, err
	}

	summaries := []models.SubmissionSummary{}
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}

		filename := path.Base(key)
		submission, err := r.Submission(ctx, filename)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", filename, err)
		}

		summaries = append(summaries, models.SubmissionSummary{
			Name:     submission.Name,
			Email:    submission.Email,
			Filename: filename,
			PDFLink:  strings.TrimSuffix(filename, ".json") + ".pdf",
		})
	}

	return summaries, nil
}

// Submission loads one record by filename.
func (r *SubmissionRepository) Submission(ctx context.Context, filename string) (models.Submission, error) {
	if err := ValidateFilename(filename); err != nil {
		return models.Submission{}, err
	}

	obj, err := r.store.Get(ctx, submissionsPrefix+filename)
	if err != nil {
		return models.Submission{}, err
	}

	var submission models.Submission
	if err := json.Unmarshal(obj.Body, &submission); err != nil {
		return models.Submission{}, fmt.Errorf("unmarshal submission %s: %w", filename, err)
	}

	return submission, nil
}

// Report loads a stored PDF by filename.
func (r *SubmissionRepository) Report(ctx context.Context, filename string) ([]byte, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}

	obj, err := r.store.Get(ctx, submissionsPrefix+filename)
	if err != nil {
		return nil, err
	}

	return obj.Body, nil
}

// Count returns the number of stored submission records.
func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	keys, err := r.store.List(ctx, submissionsPrefix+recordPrefix)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, key := range keys {
		if strings.HasSuffix(key, ".json") {
			count++
		}
	}

	return count, nil
}

// RecordFilename is the stored name of a record taken at timestamp.
func RecordFilename(timestamp string) string {
	return recordPrefix + strings.ReplaceAll(timestamp, ":", "-") + ".json"
}

// ValidateFilename accepts only a non-empty base name without separators.
func ValidateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}

	return nil
}

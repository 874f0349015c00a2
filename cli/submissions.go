package cli

import (
	"context"
	"fmt"

	"github.com/bosserz/ged-assessment/models"
)

// ListSubmissions lists every stored submission.
func (c *Context) ListSubmissions(ctx context.Context) ([]models.SubmissionSummary, error) {
	return c.submissions.Submissions(ctx)
}

// ShowResult loads one stored submission.
func (c *Context) ShowResult(ctx context.Context, filename string) (models.Submission, error) {
	submission, err := c.submissions.Submission(ctx, filename)
	if err != nil {
		return models.Submission{}, fmt.Errorf("load submission %s: %w", filename, err)
	}

	return submission, nil
}

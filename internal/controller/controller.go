// Package controller composes the question loader, the timer, the scorer and
// the report exporter into the flow of one test attempt.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bosserz/ged-assessment/internal/report"
	"github.com/bosserz/ged-assessment/internal/scoring"
	"github.com/bosserz/ged-assessment/internal/session"
	"github.com/bosserz/ged-assessment/models"
)

var (
	ErrAlreadySubmitted = errors.New("test already submitted")
	ErrNoResult         = errors.New("test has not been scored yet")
)

// Backend is the remote side of a test attempt.
type Backend interface {
	FetchQuestions(ctx context.Context) ([]models.Question, error)
	SubmitResult(ctx context.Context, result models.TestResult, reason models.SubmitReason) error
	UploadReport(ctx context.Context, student models.Student, filename string, pdf []byte) error
}

type Controller struct {
	backend   Backend
	duration  time.Duration
	outputDir string
}

// New creates a Controller giving every attempt duration to finish and
// saving reports into outputDir.
func New(backend Backend, duration time.Duration, outputDir string) *Controller {
	return &Controller{
		backend:   backend,
		duration:  duration,
		outputDir: outputDir,
	}
}

// Start validates the identity, creates the session and starts its clock.
// onExpire is called once when the clock runs out.
func (c *Controller) Start(name, email string, onExpire func()) (*session.Session, error) {
	student, err := models.NewStudent(name, email)
	if err != nil {
		return nil, err
	}

	sess := session.New(student, c.duration, onExpire)
	if err := sess.Timer.Start(); err != nil {
		return nil, fmt.Errorf("start timer: %w", err)
	}

	slog.Info("test started", "email", student.Email, "duration", c.duration)
	return sess, nil
}

// LoadQuestions fetches the question set into sess.
func (c *Controller) LoadQuestions(ctx context.Context, sess *session.Session) ([]models.Question, error) {
	questions, err := c.backend.FetchQuestions(ctx)
	if err != nil {
		slog.Error("failed to load questions", "error", err)
		return nil, err
	}

	sess.SetQuestions(questions)
	slog.Debug("questions loaded", "count", len(questions))

	return questions, nil
}

// Submit scores answers and posts the result.
//
// Only the first submission of a session is accepted. When posting fails the
// scored result is still returned alongside the error, so it can be shown.
func (c *Controller) Submit(ctx context.Context, sess *session.Session, answers scoring.Answers, reason models.SubmitReason) (models.TestResult, error) {
	if !sess.TrySubmit(reason) {
		return models.TestResult{}, ErrAlreadySubmitted
	}

	result := scoring.Score(sess.Student, sess.Questions(), answers)
	sess.SetResult(result)

	slog.Info("test submitted",
		"email", result.Email,
		"reason", reason,
		"score", result.Score,
		"total", result.Total,
		"weak_skills", result.WeakSkills,
	)

	if err := c.backend.SubmitResult(ctx, result, reason); err != nil {
		slog.Error("failed to post result", "error", err)
		return result, err
	}

	return result, nil
}

// Export writes the PDF report of the scored session into the output
// directory and uploads it. It returns the path of the saved file, which is
// set even when the upload fails.
func (c *Controller) Export(ctx context.Context, sess *session.Session) (string, error) {
	result, ok := sess.Result()
	if !ok {
		return "", ErrNoResult
	}

	pdf, err := report.Export(result)
	if err != nil {
		return "", err
	}

	filename := report.Filename(sess.Student)
	path := filepath.Join(c.outputDir, filename)

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	slog.Info("report saved", "path", path, "size", len(pdf))

	if err := c.backend.UploadReport(ctx, sess.Student, filename, pdf); err != nil {
		slog.Error("failed to upload report", "error", err)
		return path, err
	}

	return path, nil
}

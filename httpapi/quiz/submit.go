package quizservice

import (
	"log/slog"
	"net/http"

	"github.com/bosserz/ged-assessment/internal/httputils"
	"github.com/bosserz/ged-assessment/internal/metrics"
	"github.com/bosserz/ged-assessment/models"
	"github.com/gin-gonic/gin"
)

// submitRequest is a scored TestResult plus what triggered the submission.
type submitRequest struct {
	models.TestResult

	Reason models.SubmitReason `json:"reason"`
}

// Submit stores a scored result.
// POST /submit
func (s *QuizService) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if detail := validateResult(req.TestResult, req.Reason); detail != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid result",
			"detail": detail,
		})
		return
	}

	submission := models.Submission{
		TestResult: req.TestResult,
		Reason:     req.Reason,
		Timestamp:  s.submissions.Timestamp(),
		Client:     httputils.GetClient(c.Request.Context()),
	}

	filename, err := s.submissions.SaveSubmission(c.Request.Context(), &submission)
	if err != nil {
		slog.Error("failed to save submission", "email", submission.Email, "error", err)

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to save submission",
			"detail": err.Error(),
		})
		return
	}

	slog.Info("submission saved",
		"filename", filename,
		"email", submission.Email,
		"score", submission.Score,
		"total", submission.Total,
		"reason", submission.Reason,
	)

	metrics.RecordSubmission(submission)
	s.tracker.TestSubmitted(submission)

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"submitted": submission,
	})
}

func validateResult(result models.TestResult, reason models.SubmitReason) string {
	switch {
	case result.Name == "":
		return "name is required"
	case result.Email == "":
		return "email is required"
	case result.Total < 0 || result.Score < 0:
		return "score and total must not be negative"
	case result.Score > result.Total:
		return "score must not exceed total"
	}

	switch reason {
	case "", models.SubmitReasonManual, models.SubmitReasonTimeout:
		return ""
	default:
		return "reason must be manual or timeout"
	}
}

package quizservice

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetQuestions returns the current question set.
// GET /questions
func (s *QuizService) GetQuestions(c *gin.Context) {
	questions, err := s.questions.Questions(c.Request.Context())
	if err != nil {
		slog.Error("failed to load questions", "error", err)

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to load questions",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, questions)
}

package tui

import (
	"time"

	"github.com/bosserz/ged-assessment/models"
)

type tickMsg time.Time

type questionsLoadedMsg struct {
	questions []models.Question
	err       error
}

type submittedMsg struct {
	result models.TestResult
	err    error
}

type exportedMsg struct {
	path string
	err  error
}

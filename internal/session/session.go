// Package session holds the state of one student taking the test.
package session

import (
	"sync"
	"time"

	"github.com/bosserz/ged-assessment/internal/timer"
	"github.com/bosserz/ged-assessment/models"
)

// Session is the context passed between the loader, the timer, the scorer
// and the exporter for one attempt.
//
// Whichever submission comes first, the student's or the timer's, is the
// one that counts: TrySubmit returns true only once.
type Session struct {
	Student models.Student
	Timer   *timer.Countdown

	mu        sync.Mutex
	questions []models.Question
	submitted bool
	reason    models.SubmitReason
	result    *models.TestResult
}

// New creates a session whose timer calls onExpire when time runs out.
func New(student models.Student, duration time.Duration, onExpire func()) *Session {
	return &Session{
		Student: student,
		Timer:   timer.New(duration, onExpire),
	}
}

func (s *Session) SetQuestions(questions []models.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.questions = questions
}

func (s *Session) Questions() []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.questions
}

// TrySubmit claims the single submission of the session.
func (s *Session) TrySubmit(reason models.SubmitReason) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return false
	}

	s.submitted = true
	s.reason = reason
	return true
}

// Submitted returns whether the session was submitted, and why.
func (s *Session) Submitted() (bool, models.SubmitReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.submitted, s.reason
}

func (s *Session) SetResult(result models.TestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = &result
}

// Result returns the scored result, if the session has one yet.
func (s *Session) Result() (models.TestResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return models.TestResult{}, false
	}

	return *s.result, true
}

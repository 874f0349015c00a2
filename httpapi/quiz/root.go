// quizservice serves the question set and accepts results and reports.
package quizservice

import (
	"github.com/bosserz/ged-assessment/httpapi"
	"github.com/bosserz/ged-assessment/internal/analytics"
	"github.com/bosserz/ged-assessment/internal/questionbank"
	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/gin-gonic/gin"
)

// MaxReportSize bounds the body of an uploaded report.
const MaxReportSize = 10 << 20

type QuizService struct {
	questions   questionbank.Source
	submissions *storage.SubmissionRepository
	tracker     *analytics.Tracker
}

func NewQuizService(questions questionbank.Source, submissions *storage.SubmissionRepository, tracker *analytics.Tracker) *QuizService {
	return &QuizService{
		questions:   questions,
		submissions: submissions,
		tracker:     tracker,
	}
}

func (s *QuizService) Register(router gin.IRouter) {
	router.GET("/questions", s.GetQuestions)
	router.POST("/submit", s.Submit)
	router.POST("/upload-report", s.UploadReport)
}

var _ httpapi.Service = (*QuizService)(nil)

// adminservice lets staff browse stored submissions and download reports.
// It has no authentication of its own; mount it only on trusted networks.
package adminservice

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bosserz/ged-assessment/httpapi"
	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/gin-gonic/gin"
)

type AdminService struct {
	submissions *storage.SubmissionRepository
}

func NewAdminService(submissions *storage.SubmissionRepository) *AdminService {
	return &AdminService{submissions: submissions}
}

func (s *AdminService) Register(router gin.IRouter) {
	admin := router.Group("/admin")

	admin.GET("/submissions", s.ListSubmissions)
	admin.GET("/result/*filename", s.GetResult)
	admin.GET("/download/*filename", s.DownloadReport)
}

// ListSubmissions returns a summary of every stored submission.
// GET /admin/submissions
func (s *AdminService) ListSubmissions(c *gin.Context) {
	summaries, err := s.submissions.Submissions(c.Request.Context())
	if err != nil {
		slog.Error("failed to list submissions", "error", err)

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to list submissions",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetResult returns one stored submission record.
// GET /admin/result/*filename
func (s *AdminService) GetResult(c *gin.Context) {
	filename := strings.TrimPrefix(c.Param("filename"), "/")

	submission, err := s.submissions.Submission(c.Request.Context(), filename)
	if err != nil {
		respondStorageError(c, filename, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// DownloadReport sends a stored PDF report as an attachment.
// GET /admin/download/*filename
func (s *AdminService) DownloadReport(c *gin.Context) {
	filename := strings.TrimPrefix(c.Param("filename"), "/")

	pdf, err := s.submissions.Report(c.Request.Context(), filename)
	if err != nil {
		respondStorageError(c, filename, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(filename, `"`, "")+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func respondStorageError(c *gin.Context, filename string, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidFilename):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid filename",
			"detail": err.Error(),
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Not found",
			"detail": filename,
		})
	default:
		slog.Error("failed to read object", "filename", filename, "error", err)

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to read object",
			"detail": err.Error(),
		})
	}
}

var _ httpapi.Service = (*AdminService)(nil)

package quizservice

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bosserz/ged-assessment/internal/metrics"
	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/gin-gonic/gin"
)

// UploadReport stores a PDF report sent as multipart form data.
// The "filename" field overrides the name of the "file" part.
// POST /upload-report
func (s *QuizService) UploadReport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxReportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Missing report file",
			"detail": err.Error(),
		})
		return
	}

	filename := c.PostForm("filename")
	if filename == "" {
		filename = fileHeader.Filename
	}

	if err := storage.ValidateFilename(filename); err != nil || !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid filename",
			"detail": "filename must be a plain .pdf file name",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Unreadable report file",
			"detail": err.Error(),
		})
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close uploaded file", "error", err)
		}
	}()

	pdf, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Unreadable report file",
			"detail": err.Error(),
		})
		return
	}

	if err := s.submissions.SaveReport(c.Request.Context(), filename, pdf); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrInvalidFilename) {
			status = http.StatusBadRequest
		}

		slog.Error("failed to save report", "filename", filename, "error", err)
		c.JSON(status, gin.H{
			"error":  "Failed to save report",
			"detail": err.Error(),
		})
		return
	}

	slog.Info("report uploaded",
		"filename", filename,
		"student_name", c.PostForm("student_name"),
		"student_email", c.PostForm("student_email"),
	)
	metrics.RecordReportUploaded()

	c.String(http.StatusOK, "Uploaded")
}

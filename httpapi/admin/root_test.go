package adminservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/bosserz/ged-assessment/internal/testhelper"
	"github.com/bosserz/ged-assessment/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestAdminService(t *testing.T) (*gin.Engine, *storage.SubmissionRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := storage.NewSubmissionRepository(testhelper.NewSQLiteStore(t))

	router := gin.New()
	NewAdminService(repo).Register(router)

	return router, repo
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestAdminService(t *testing.T) {
	router, repo := setupTestAdminService(t)
	ctx := context.Background()

	submission := &models.Submission{
		TestResult: models.TestResult{Name: "Jane Doe", Email: "jane@example.com", Score: 2, Total: 3},
		Reason:     models.SubmitReasonManual,
		Timestamp:  "2024-05-01T12:00:00.000000",
	}
	filename, err := repo.SaveSubmission(ctx, submission)
	require.NoError(t, err)
	require.NoError(t, repo.SaveReport(ctx, "GED_Result_Jane Doe.pdf", []byte("%PDF-1.3")))

	t.Run("list submissions", func(t *testing.T) {
		rr := get(router, "/admin/submissions")
		require.Equal(t, http.StatusOK, rr.Code)

		var summaries []models.SubmissionSummary
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summaries))
		assert.Equal(t, []models.SubmissionSummary{{
			Name:     "Jane Doe",
			Email:    "jane@example.com",
			Filename: "submission_2024-05-01T12-00-00.000000.json",
			PDFLink:  "submission_2024-05-01T12-00-00.000000.pdf",
		}}, summaries)
	})

	t.Run("get result", func(t *testing.T) {
		rr := get(router, "/admin/result/"+filename)
		require.Equal(t, http.StatusOK, rr.Code)

		var got models.Submission
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, 2, got.Score)
		assert.Equal(t, models.SubmitReasonManual, got.Reason)
	})

	t.Run("get missing result", func(t *testing.T) {
		rr := get(router, "/admin/result/submission_nope.json")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("nested path is rejected", func(t *testing.T) {
		rr := get(router, "/admin/result/a/b.json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("download report", func(t *testing.T) {
		rr := get(router, "/admin/download/GED_Result_Jane%20Doe.pdf")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="GED_Result_Jane Doe.pdf"`)
		assert.Equal(t, "%PDF-1.3", rr.Body.String())
	})

	t.Run("download missing report", func(t *testing.T) {
		rr := get(router, "/admin/download/nope.pdf")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

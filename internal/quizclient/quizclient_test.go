package quizclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bosserz/ged-assessment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var student = models.Student{Name: "Jane Doe", Email: "jane@example.com"}

func TestClient_FetchQuestions(t *testing.T) {
	t.Run("decodes the question set", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/questions", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"q1","question":"Pick one","options":["A","B"],"answer":"B","tags":["grammar"]}]`))
		}))
		defer srv.Close()

		questions, err := New(srv.URL+"/", time.Second).FetchQuestions(context.Background())
		require.NoError(t, err)

		require.Len(t, questions, 1)
		assert.Equal(t, models.Question{
			ID:       "q1",
			Question: "Pick one",
			Options:  []string{"A", "B"},
			Answer:   "B",
			Tags:     []string{"grammar"},
		}, questions[0])
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "question bank unavailable", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).FetchQuestions(context.Background())
		require.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "question bank unavailable")
	})

	t.Run("bad json is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).FetchQuestions(context.Background())
		assert.ErrorContains(t, err, "decode questions")
	})

	t.Run("honours the context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(srv.URL, time.Second).FetchQuestions(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_SubmitResult(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	result := models.TestResult{
		Name:       student.Name,
		Email:      student.Email,
		Score:      1,
		Total:      2,
		TagStats:   map[string]models.TagStat{"grammar": {Correct: 1, Total: 2}},
		WeakSkills: []string{"grammar"},
		Feedback:   []models.Feedback{},
	}

	err := New(srv.URL, time.Second).SubmitResult(context.Background(), result, models.SubmitReasonTimeout)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", received["name"])
	assert.Equal(t, "jane@example.com", received["email"])
	assert.EqualValues(t, 1, received["score"])
	assert.EqualValues(t, 2, received["total"])
	assert.Equal(t, "timeout", received["reason"])
	assert.Equal(t, map[string]any{"grammar": map[string]any{"correct": float64(1), "total": float64(2)}}, received["tagStats"])
	assert.Equal(t, []any{"grammar"}, received["weakSkills"])
}

func TestClient_UploadReport(t *testing.T) {
	pdf := []byte("%PDF-1.3 fake")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-report", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Jane Doe", r.FormValue("student_name"))
		assert.Equal(t, "jane@example.com", r.FormValue("student_email"))
		assert.Equal(t, "GED_Result_Jane_Doe.pdf", r.FormValue("filename"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "GED_Result_Jane_Doe.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, pdf, content)

		_, _ = w.Write([]byte("Uploaded"))
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).UploadReport(context.Background(), student, "GED_Result_Jane_Doe.pdf", pdf)
	require.NoError(t, err)
}

func TestClient_UploadReport_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).UploadReport(context.Background(), student, "report.pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

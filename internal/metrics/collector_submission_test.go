package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/bosserz/ged-assessment/internal/storage"
	"github.com/bosserz/ged-assessment/internal/testhelper"
	"github.com/bosserz/ged-assessment/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCounter implements SubmissionCounter for testing
type failingCounter struct{}

func (failingCounter) Count(context.Context) (int, error) {
	return 0, errors.New("storage unavailable")
}

func TestSubmissionCollector_Collect(t *testing.T) {
	repo := storage.NewSubmissionRepository(testhelper.NewSQLiteStore(t))
	ctx := context.Background()

	for i, ts := range []string{"2024-05-01T10:00:00.000000", "2024-05-01T11:00:00.000000", "2024-05-01T12:00:00.000000"} {
		_, err := repo.SaveSubmission(ctx, &models.Submission{
			TestResult: models.TestResult{Name: "Student", Email: "s@example.com", Total: i},
			Timestamp:  ts,
		})
		require.NoError(t, err)
	}

	// reports must not be counted
	require.NoError(t, repo.SaveReport(ctx, "GED_Result_Student.pdf", []byte("%PDF")))

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewSubmissionCollector(repo))

	metrics, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, metrics, 1)

	metric := metrics[0]
	assert.Equal(t, "ged_stored_submissions", *metric.Name)
	assert.Equal(t, "Number of submission records in storage", *metric.Help)
	require.Len(t, metric.Metric, 1)
	assert.Equal(t, 3.0, *metric.Metric[0].Gauge.Value)
}

func TestSubmissionCollector_Collect_EmptyStore(t *testing.T) {
	repo := storage.NewSubmissionRepository(testhelper.NewSQLiteStore(t))

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewSubmissionCollector(repo))

	metrics, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	assert.Equal(t, 0.0, *metrics[0].Metric[0].Gauge.Value)
}

func TestSubmissionCollector_Collect_Error(t *testing.T) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewSubmissionCollector(failingCounter{}))

	_, err := registry.Gather()
	require.Error(t, err)
}

func TestSubmissionCollector_Describe(t *testing.T) {
	collector := NewSubmissionCollector(failingCounter{})

	ch := make(chan *prometheus.Desc, 1)
	collector.Describe(ch)
	close(ch)

	desc := <-ch
	require.NotNil(t, desc)
	assert.Contains(t, desc.String(), "ged_stored_submissions")
}

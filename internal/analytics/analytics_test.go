package analytics

import (
	"sync"
	"testing"

	"github.com/bosserz/ged-assessment/internal/workers"
	"github.com/bosserz/ged-assessment/models"
	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPostHog implements posthog.Client for testing
type mockPostHog struct {
	posthog.Client

	mu       sync.Mutex
	messages []posthog.Message
}

func (m *mockPostHog) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
	return nil
}

func TestTracker_TestSubmitted(t *testing.T) {
	client := &mockPostHog{}
	tracker := &Tracker{client: client, worker: workers.NewWorker()}

	tracker.TestSubmitted(models.Submission{
		TestResult: models.TestResult{Email: "jane@example.com", Score: 3, Total: 5, WeakSkills: []string{"grammar"}},
		Reason:     models.SubmitReasonTimeout,
	})
	tracker.worker.Wait()

	require.Len(t, client.messages, 1)
	capture, ok := client.messages[0].(posthog.Capture)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", capture.DistinctId)
	assert.Equal(t, EventTestSubmitted, capture.Event)
	assert.Equal(t, 3, capture.Properties["score"])
	assert.Equal(t, "timeout", capture.Properties["reason"])
}

func TestTracker_Disabled(t *testing.T) {
	var nilTracker *Tracker
	assert.NotPanics(t, func() {
		nilTracker.TestSubmitted(models.Submission{})
		NewTracker(nil).TestSubmitted(models.Submission{})
	})
}

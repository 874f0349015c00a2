// Package analytics reports product events to PostHog.
package analytics

import (
	"log/slog"
	"time"

	"github.com/bosserz/ged-assessment/internal/workers"
	"github.com/bosserz/ged-assessment/models"
	"github.com/posthog/posthog-go"
)

const EventTestSubmitted = "test_submitted"

// Tracker records analytics events. A nil posthog client disables it.
type Tracker struct {
	client posthog.Client
	worker *workers.Worker
}

func NewTracker(client posthog.Client) *Tracker {
	return &Tracker{client: client, worker: workers.Global}
}

// TestSubmitted enqueues a test_submitted event in the background.
func (t *Tracker) TestSubmitted(submission models.Submission) {
	if t == nil || t.client == nil {
		return
	}

	properties := posthog.NewProperties().
		Set("score", submission.Score).
		Set("total", submission.Total).
		Set("reason", string(submission.Reason)).
		Set("weakSkills", submission.WeakSkills)

	capture := posthog.Capture{
		DistinctId: submission.Email,
		Event:      EventTestSubmitted,
		Timestamp:  time.Now(),
		Properties: properties,
	}

	t.worker.Go(func() {
		slog.Debug("sending event to PostHog", "event_type", EventTestSubmitted, "email", submission.Email)

		if err := t.client.Enqueue(capture); err != nil {
			slog.Error("failed to enqueue analytics event", "event_type", EventTestSubmitted, "error", err)
		}
	})
}

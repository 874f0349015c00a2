package metrics

import (
	"github.com/bosserz/ged-assessment/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionTotal tracks accepted submissions by reason (manual or timeout)
	SubmissionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ged_submission_total",
			Help: "Total number of accepted submissions by reason (manual or timeout)",
		},
		[]string{"reason"},
	)

	// ScoreRatio tracks the distribution of score / total
	ScoreRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ged_score_ratio",
			Help:    "Distribution of score divided by total questions",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	// WeakSkillTotal tracks how often each tag is reported as a weak skill
	WeakSkillTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ged_weak_skill_total",
			Help: "Total number of times a tag was reported as a weak skill",
		},
		[]string{"tag"},
	)

	// ReportUploadedTotal tracks the total number of uploaded PDF reports
	ReportUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ged_report_uploaded_total",
			Help: "Total number of uploaded PDF reports",
		},
	)
)

// RecordSubmission records an accepted submission.
func RecordSubmission(submission models.Submission) {
	reason := string(submission.Reason)
	if reason == "" {
		reason = "unknown"
	}
	SubmissionTotal.WithLabelValues(reason).Inc()

	if submission.Total > 0 {
		ScoreRatio.Observe(float64(submission.Score) / float64(submission.Total))
	}

	for _, tag := range submission.WeakSkills {
		WeakSkillTotal.WithLabelValues(tag).Inc()
	}
}

// RecordReportUploaded records a report upload
func RecordReportUploaded() {
	ReportUploadedTotal.Inc()
}

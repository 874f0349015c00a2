package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	otelcodes "go.opentelemetry.io/otel/codes"
)

var gedStoredSubmissionsDesc = prometheus.NewDesc(
	"ged_stored_submissions",
	"Number of submission records in storage",
	nil,
	nil,
)

// SubmissionCounter counts stored submission records.
type SubmissionCounter interface {
	Count(ctx context.Context) (int, error)
}

type SubmissionCollector struct {
	counter SubmissionCounter
}

func NewSubmissionCollector(counter SubmissionCounter) *SubmissionCollector {
	return &SubmissionCollector{counter: counter}
}

func (c *SubmissionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- gedStoredSubmissionsDesc
}

func (c *SubmissionCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), ScrapeTimeout)
	defer cancel()

	ctx, span := tracer.Start(ctx, "SubmissionCollector.Collect")
	defer span.End()

	count, err := c.counter.Count(ctx)
	if err != nil {
		span.SetStatus(otelcodes.Error, "Failed to collect submissions")
		span.RecordError(err)

		ch <- prometheus.NewInvalidMetric(gedStoredSubmissionsDesc, err)
		return
	}

	span.SetStatus(otelcodes.Ok, "Submissions collected successfully")

	ch <- prometheus.MustNewConstMetric(gedStoredSubmissionsDesc, prometheus.GaugeValue, float64(count))
}

var _ prometheus.Collector = (*SubmissionCollector)(nil)

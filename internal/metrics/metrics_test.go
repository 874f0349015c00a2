package metrics

import (
	"testing"

	"github.com/bosserz/ged-assessment/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSubmission(t *testing.T) {
	timeoutBefore := testutil.ToFloat64(SubmissionTotal.WithLabelValues("timeout"))
	grammarBefore := testutil.ToFloat64(WeakSkillTotal.WithLabelValues("metrics-test-grammar"))

	RecordSubmission(models.Submission{
		TestResult: models.TestResult{Score: 1, Total: 4, WeakSkills: []string{"metrics-test-grammar"}},
		Reason:     models.SubmitReasonTimeout,
	})

	assert.Equal(t, timeoutBefore+1, testutil.ToFloat64(SubmissionTotal.WithLabelValues("timeout")))
	assert.Equal(t, grammarBefore+1, testutil.ToFloat64(WeakSkillTotal.WithLabelValues("metrics-test-grammar")))
}

func TestRecordReportUploaded(t *testing.T) {
	before := testutil.ToFloat64(ReportUploadedTotal)
	RecordReportUploaded()
	assert.Equal(t, before+1, testutil.ToFloat64(ReportUploadedTotal))
}

package models

// NotAnswered is recorded as the user answer of a question left blank.
const NotAnswered = "Not answered"

// WeakSkillThreshold is the correctness ratio under which a tag is a weak skill.
const WeakSkillThreshold = 0.6

type TagStat struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Ratio returns correct/total, or 0 when the tag was never seen.
func (s TagStat) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Correct) / float64(s.Total)
}

// Weak reports whether the ratio is strictly below WeakSkillThreshold.
func (s TagStat) Weak() bool {
	return s.Ratio() < WeakSkillThreshold
}

// Feedback is the outcome of a single question.
type Feedback struct {
	Question      string   `json:"question"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer string   `json:"correctAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	Tags          []string `json:"tags"`
}

// TestResult is the scored outcome of one submission.
//
// The student is flattened into the "name" and "email" fields on the wire.
type TestResult struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Score      int                `json:"score"`
	Total      int                `json:"total"`
	TagStats   map[string]TagStat `json:"tagStats"`
	WeakSkills []string           `json:"weakSkills"`
	Feedback   []Feedback         `json:"feedback"`
}

// Student returns the identity the result was recorded for.
func (r TestResult) Student() Student {
	return Student{Name: r.Name, Email: r.Email}
}

// SubmitReason tells whether the student or the timer submitted the test.
type SubmitReason string

const (
	SubmitReasonManual  SubmitReason = "manual"
	SubmitReasonTimeout SubmitReason = "timeout"
)

// Submission is a TestResult as stored by the backend.
type Submission struct {
	TestResult

	Reason    SubmitReason `json:"reason,omitempty"`
	Timestamp string       `json:"timestamp"`
	Client    string       `json:"client,omitempty"`
}

// SubmissionSummary is a row of the admin listing.
type SubmissionSummary struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Filename string `json:"filename"`
	PDFLink  string `json:"pdf_link"`
}

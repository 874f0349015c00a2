// Package report lays out a TestResult as a PDF report.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bosserz/ged-assessment/internal/scoring"
	"github.com/bosserz/ged-assessment/models"
	"github.com/jung-kurt/gofpdf"
)

// Page geometry, in millimetres on A4.
const (
	marginLeft     = 10.0
	skillIndent    = 12.0
	topY           = 10.0
	pageBreakY     = 280.0
	headerLeading  = 10.0
	feedbackLead   = 8.0
	blockSeparator = 4.0
	fontSize       = 12.0
	fontFamily     = "Helvetica"
)

const Title = "GED English Test Result"

// Line is a single line of text placed on a page.
type Line struct {
	X, Y float64
	Text string
	Bold bool
}

// Page is the ordered lines of one PDF page.
type Page struct {
	Lines []Line
}

// Layout places the lines of the report on pages.
//
// The header and the skill list are written on the first page. Each question
// takes four lines; a new page is started whenever the cursor has passed
// pageBreakY before writing a line.
func Layout(result models.TestResult) []Page {
	pages := []Page{{}}
	y := topY

	put := func(x float64, text string, bold bool) {
		last := &pages[len(pages)-1]
		last.Lines = append(last.Lines, Line{X: x, Y: y, Text: text, Bold: bold})
	}
	header := func(x float64, text string) {
		y += headerLeading
		put(x, text, false)
	}

	header(marginLeft, Title)
	header(marginLeft, "Name: "+result.Name)
	header(marginLeft, "Email: "+result.Email)
	header(marginLeft, fmt.Sprintf("Total Score: %d / %d", result.Score, result.Total))
	header(marginLeft, "Skills Needing Improvement: "+WeakSkillsText(result.WeakSkills))
	header(marginLeft, "Score by Skill:")
	for _, tag := range scoring.Tags(result) {
		stat := result.TagStats[tag]
		header(skillIndent, fmt.Sprintf("- %s: %d/%d", tag, stat.Correct, stat.Total))
	}

	y += headerLeading
	put(marginLeft, "Question Breakdown:", true)

	for i, f := range result.Feedback {
		for _, text := range feedbackBlock(i, f) {
			if y > pageBreakY {
				pages = append(pages, Page{})
				y = topY
			}

			y += feedbackLead
			put(marginLeft, text, false)
		}

		y += blockSeparator
	}

	return pages
}

func feedbackBlock(i int, f models.Feedback) []string {
	verdict := "(Incorrect)"
	if f.IsCorrect {
		verdict = "(Correct)"
	}

	return []string{
		fmt.Sprintf("Q%d: %s", i+1, f.Question),
		fmt.Sprintf("Your answer: %s %s", f.UserAnswer, verdict),
		"Correct answer: " + f.CorrectAnswer,
		"Skills: " + strings.Join(f.Tags, ", "),
	}
}

// WeakSkillsText joins weak skills for display, or "None".
func WeakSkillsText(weakSkills []string) string {
	if len(weakSkills) == 0 {
		return "None"
	}

	return strings.Join(weakSkills, ", ")
}

// Export renders result into an A4 PDF document.
func Export(result models.TestResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetAuthor(result.Name, true)

	// the core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range Layout(result) {
		pdf.AddPage()

		for _, line := range page.Lines {
			style := ""
			if line.Bold {
				style = "B"
			}

			pdf.SetFont(fontFamily, style, fontSize)
			pdf.Text(line.X, line.Y, tr(line.Text))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename is the name a student's report is saved and uploaded under.
//
// The first space of the name becomes an underscore; path separators are
// never kept.
func Filename(student models.Student) string {
	name := strings.Replace(student.Name, " ", "_", 1)
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)

	return "GED_Result_" + name + ".pdf"
}

// Package render formats a TestResult for the terminal.
//
// Everything here is a pure function of its input.
package render

import (
	"fmt"
	"strings"

	"github.com/bosserz/ged-assessment/internal/scoring"
	"github.com/bosserz/ged-assessment/models"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle   = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	answerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Summary renders the identity, the score and the per-skill statistics.
func Summary(result models.TestResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Name:"), result.Name)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Email:"), result.Email)
	fmt.Fprintf(&b, "%s %d / %d\n", labelStyle.Render("Total Score:"), result.Score, result.Total)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Skills Needing Improvement:"), weakSkills(result.WeakSkills))
	fmt.Fprintf(&b, "%s\n", labelStyle.Render("Score by Skill:"))

	for _, tag := range scoring.Tags(result) {
		stat := result.TagStats[tag]
		fmt.Fprintf(&b, "  • %s: %d/%d\n", tag, stat.Correct, stat.Total)
	}

	return b.String()
}

func weakSkills(tags []string) string {
	if len(tags) == 0 {
		return "None 🎉"
	}

	return strings.Join(tags, ", ")
}

// Feedback renders the per-question breakdown.
func Feedback(result models.TestResult) string {
	var b strings.Builder

	for i, f := range result.Feedback {
		answer := wrongStyle.Render(f.UserAnswer)
		if f.IsCorrect {
			answer = correctStyle.Render(f.UserAnswer)
		}

		fmt.Fprintf(&b, "%s\n", labelStyle.Render(fmt.Sprintf("Q%d: %s", i+1, f.Question)))
		fmt.Fprintf(&b, "Your answer: %s\n", answer)
		fmt.Fprintf(&b, "Correct answer: %s\n", answerStyle.Render(f.CorrectAnswer))
		fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render("Skills: "+strings.Join(f.Tags, ", ")))
	}

	return b.String()
}

package live

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizdeck/internal/quiz"
)

// renderBody renders the grading summary and every question. It also returns
// the first line of each question so the viewport can follow the cursor.
func renderBody(screen *Screen, cursor, width int, noColor bool) (string, []int) {
	if message := screen.LoadError(); message != "" {
		return stylize(message, noColor, lipgloss.Color("196")), nil
	}
	var lines []string
	if screen.result != nil {
		lines = append(lines, renderGrading(*screen.result, noColor)...)
		lines = append(lines, "")
	}
	offsets := make([]int, 0, len(screen.views))
	for _, view := range screen.views {
		offsets = append(offsets, len(lines))
		lines = append(lines, renderQuestion(view, view.Index == cursor, width, noColor)...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), offsets
}

// renderGrading renders the score line and the review of missed questions.
func renderGrading(result quiz.GradingResult, noColor bool) []string {
	color := lipgloss.Color("196")
	if result.Passed {
		color = lipgloss.Color("42")
	}
	lines := []string{stylize(formatScore(result)+"  "+result.Message(), noColor, color)}
	if len(result.Missed) == 0 {
		return lines
	}
	lines = append(lines, stylize("Review:", noColor, lipgloss.Color("252")))
	for _, miss := range result.Missed {
		lines = append(lines,
			"  "+formatNumber(miss.Index)+" "+formatPrompt(miss.Prompt),
			"     Your answer:    "+miss.UserAnswerText,
			"     Correct answer: "+miss.CorrectAnswerText,
		)
	}
	return lines
}

// renderQuestion renders one question card.
func renderQuestion(view quiz.QuestionView, focused bool, width int, noColor bool) []string {
	marker := "  "
	if focused {
		marker = "> "
	}
	prompt := marker + fmtInt(view.Number) + ". " + view.Prompt
	if width > 0 {
		prompt = lipgloss.NewStyle().Width(width).Render(prompt)
	}
	if focused {
		prompt = stylize(prompt, noColor, lipgloss.Color("33"))
	}
	lines := []string{prompt}
	for _, option := range view.Options {
		lines = append(lines, renderOption(option, view.Outcome, noColor))
	}
	if view.Outcome != nil {
		if feedback := view.Outcome.Feedback(); feedback != "" {
			lines = append(lines, "    "+stylize(feedback, noColor, lipgloss.Color("196")))
		}
	}
	return lines
}

// renderOption renders a radio-style option line with grading highlights.
func renderOption(option quiz.OptionView, outcome *quiz.Outcome, noColor bool) string {
	box := "( )"
	if option.Selected {
		box = "(•)"
	}
	line := "    " + box + " " + string(option.Label) + ". " + option.Text
	if outcome == nil {
		return line
	}
	switch {
	case option.Correct:
		return stylize(line+markSuffix(noColor, " ✓"), noColor, lipgloss.Color("42"))
	case option.Selected:
		return stylize(line+markSuffix(noColor, " ✗"), noColor, lipgloss.Color("196"))
	default:
		return line
	}
}

// markSuffix keeps correctness visible when colors are disabled.
func markSuffix(noColor bool, mark string) string {
	if noColor {
		return mark
	}
	return ""
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

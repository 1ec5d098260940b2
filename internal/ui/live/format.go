package live

import (
	"strconv"
	"strings"

	"quizdeck/internal/quiz"
)

// formatNumber formats a zero-based question index as Q01, Q02, ...
func formatNumber(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatPrompt flattens and truncates a prompt for the review list.
func formatPrompt(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 80
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatScore renders the score line.
func formatScore(result quiz.GradingResult) string {
	return "Score: " + fmtInt(result.ScorePercent) + "% (" + fmtInt(result.Correct) + "/" + fmtInt(result.Total) + ")"
}

package quiz

import (
	"fmt"

	"quizdeck/internal/question"
)

// NoAnswerText is shown in the review for unanswered questions.
const NoAnswerText = "No Answer Selected"

// DefaultPassThreshold is the score at or above which a result counts as passed.
const DefaultPassThreshold = 80

// Result messages shown next to the score.
const (
	PassMessage = "Great job! You passed."
	FailMessage = "Keep studying and try again."
)

// OutcomeStatus is the grading outcome for a single question.
type OutcomeStatus string

const (
	OutcomeCorrect    OutcomeStatus = "correct"
	OutcomeIncorrect  OutcomeStatus = "incorrect"
	OutcomeUnanswered OutcomeStatus = "unanswered"
)

// Outcome is the graded state of one question.
type Outcome struct {
	Status       OutcomeStatus
	Correct      bool
	UserLabel    question.Label
	CorrectLabel question.Label
}

// Feedback returns the per-question note shown after grading.
func (o Outcome) Feedback() string {
	switch o.Status {
	case OutcomeIncorrect:
		return fmt.Sprintf("Incorrect. The correct answer is %s.", o.CorrectLabel)
	case OutcomeUnanswered:
		return fmt.Sprintf("You didn't answer this question. Correct answer: %s", o.CorrectLabel)
	default:
		return ""
	}
}

// Miss is one entry of the review list.
type Miss struct {
	Index             int
	Prompt            string
	UserAnswerText    string
	CorrectAnswerText string
}

// GradingResult is produced by Submit.
type GradingResult struct {
	ScorePercent int
	Correct      int
	Total        int
	Passed       bool
	Outcomes     []Outcome
	Missed       []Miss
}

// Message returns the pass or fail message for the score.
func (r GradingResult) Message() string {
	if r.Passed {
		return PassMessage
	}
	return FailMessage
}

// grade evaluates selections against the questions in order.
func grade(questions []question.Record, selections []question.Label, passThreshold int) GradingResult {
	result := GradingResult{
		Total:    len(questions),
		Outcomes: make([]Outcome, len(questions)),
		Missed:   []Miss{},
	}
	for i, record := range questions {
		selected := selections[i]
		outcome := Outcome{UserLabel: selected, CorrectLabel: record.Answer}
		switch {
		case selected == "":
			outcome.Status = OutcomeUnanswered
		case selected == record.Answer:
			outcome.Status = OutcomeCorrect
			outcome.Correct = true
			result.Correct++
		default:
			outcome.Status = OutcomeIncorrect
		}
		result.Outcomes[i] = outcome
		if outcome.Correct {
			continue
		}
		userText := NoAnswerText
		if selected != "" {
			userText = record.AnswerText(selected)
		}
		result.Missed = append(result.Missed, Miss{
			Index:             i,
			Prompt:            record.Prompt,
			UserAnswerText:    userText,
			CorrectAnswerText: record.AnswerText(record.Answer),
		})
	}
	result.ScorePercent = scorePercent(result.Correct, result.Total)
	result.Passed = result.Total > 0 && result.ScorePercent >= passThreshold
	return result
}

// scorePercent rounds 100*correct/total half-up. An empty set scores zero.
func scorePercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

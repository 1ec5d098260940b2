package question

import "strings"

// Label identifies a choice within a question.
type Label string

// Choice labels in display order.
const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels lists every supported choice label in display order.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// ParseLabel normalizes raw text into a known label.
func ParseLabel(value string) (Label, bool) {
	label := Label(strings.ToUpper(strings.TrimSpace(value)))
	for _, known := range Labels {
		if label == known {
			return label, true
		}
	}
	return "", false
}

// Record is one parsed quiz item.
type Record struct {
	ID      int
	Prompt  string
	Options map[Label]string
	Answer  Label
}

// Choice is a non-empty option of a record.
type Choice struct {
	Label Label
	Text  string
}

// Choices returns the options that exist for the record, in label order.
func (r Record) Choices() []Choice {
	choices := make([]Choice, 0, len(Labels))
	for _, label := range Labels {
		if text := r.Options[label]; text != "" {
			choices = append(choices, Choice{Label: label, Text: text})
		}
	}
	return choices
}

// HasOption reports whether the label names an existing choice.
func (r Record) HasOption(label Label) bool {
	return r.Options[label] != ""
}

// AnswerText renders a label and its option text for review output.
func (r Record) AnswerText(label Label) string {
	text := r.Options[label]
	if text == "" {
		return string(label)
	}
	return string(label) + ". " + text
}

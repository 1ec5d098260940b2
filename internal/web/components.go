package web

import "quizdeck/internal/quiz"

//go:generate templ generate

// pageData is everything the quiz page template needs.
type pageData struct {
	Title     string
	Revision  string
	Phase     quiz.Phase
	Views     []quiz.QuestionView
	Result    *quiz.GradingResult
	LoadError string
	Flash     string
}

// optionClass marks graded options as correct or wrongly chosen.
func optionClass(option quiz.OptionView, graded bool) string {
	switch {
	case graded && option.Correct:
		return "option correct"
	case graded && option.Selected:
		return "option wrong"
	}
	return "option"
}

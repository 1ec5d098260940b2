package quiz

import "quizdeck/internal/question"

// OptionView is one selectable choice of a question.
type OptionView struct {
	Label    question.Label
	Text     string
	Selected bool
	// Correct is set only after grading, on the option holding the answer.
	Correct bool
}

// QuestionView is what a presenter needs to draw a question.
type QuestionView struct {
	Index   int
	Number  int
	Prompt  string
	Options []OptionView
	Outcome *Outcome
}

// Presenter draws the quiz. Every call fully replaces what was drawn before.
type Presenter interface {
	RenderQuestions(views []QuestionView)
	ShowGrading(result GradingResult)
	ShowLoadError(message string)
}

// BuildViews derives question views from the session state.
func BuildViews(s *Session) []QuestionView {
	if s == nil {
		return nil
	}
	result, graded := s.Result()
	views := make([]QuestionView, 0, s.Len())
	for i, record := range s.questions {
		selected := s.Selection(i)
		view := QuestionView{
			Index:  i,
			Number: i + 1,
			Prompt: record.Prompt,
		}
		for _, choice := range record.Choices() {
			view.Options = append(view.Options, OptionView{
				Label:    choice.Label,
				Text:     choice.Text,
				Selected: choice.Label == selected,
				Correct:  graded && choice.Label == record.Answer,
			})
		}
		if graded {
			outcome := result.Outcomes[i]
			view.Outcome = &outcome
		}
		views = append(views, view)
	}
	return views
}

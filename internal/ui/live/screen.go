package live

import "quizdeck/internal/quiz"

// Screen is the presenter behind the live UI. It keeps only the most recent
// drawing instructions; the Bubble Tea model reads them in View.
type Screen struct {
	views     []quiz.QuestionView
	result    *quiz.GradingResult
	loadError string
}

// NewScreen returns an empty screen.
func NewScreen() *Screen {
	return &Screen{}
}

// RenderQuestions replaces the question list and hides any previous grading.
func (s *Screen) RenderQuestions(views []quiz.QuestionView) {
	s.views = append([]quiz.QuestionView(nil), views...)
	s.result = nil
	s.loadError = ""
}

// ShowGrading stores the result shown above the questions.
func (s *Screen) ShowGrading(result quiz.GradingResult) {
	s.result = &result
}

// ShowLoadError replaces the whole screen with a load failure message.
func (s *Screen) ShowLoadError(message string) {
	s.views = nil
	s.result = nil
	s.loadError = message
}

// LoadError returns the current load failure message, if any.
func (s *Screen) LoadError() string {
	return s.loadError
}

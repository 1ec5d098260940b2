package web

import "quizdeck/internal/quiz"

// Page is the presenter behind the HTML and JSON surfaces. It keeps only the
// last drawn state; each request renders from it.
type Page struct {
	views     []quiz.QuestionView
	result    *quiz.GradingResult
	loadError string
}

// NewPage returns an empty page.
func NewPage() *Page {
	return &Page{}
}

// RenderQuestions replaces the question list and clears any grading.
func (p *Page) RenderQuestions(views []quiz.QuestionView) {
	p.views = views
	p.result = nil
	p.loadError = ""
}

// ShowGrading replaces the grading panel.
func (p *Page) ShowGrading(result quiz.GradingResult) {
	p.result = &result
}

// ShowLoadError replaces the page content with a load failure.
func (p *Page) ShowLoadError(message string) {
	p.views = nil
	p.result = nil
	p.loadError = message
}

// LoadError returns the load failure message, if any.
func (p *Page) LoadError() string {
	return p.loadError
}

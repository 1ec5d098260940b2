package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"quizdeck/internal/question"
	"quizdeck/internal/source"
)

// Loader fetches and parses the question source.
type Loader interface {
	Load(ctx context.Context) (question.Set, error)
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	Logger        logrus.FieldLogger
	Source        Source
	PassThreshold int
}

// Controller owns the single session and forwards adapter callbacks to it.
type Controller struct {
	presenter Presenter
	session   *Session
	log       logrus.FieldLogger
	opts      []SessionOption
}

// NewController builds a controller that draws through presenter.
func NewController(presenter Presenter, opts ControllerOptions) *Controller {
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Controller{
		presenter: presenter,
		log:       log,
		opts: []SessionOption{
			WithSource(opts.Source),
			WithPassThreshold(opts.PassThreshold),
		},
	}
}

// Load fetches the question set and starts the session. On failure the
// presenter shows a load error and no session exists.
func (c *Controller) Load(ctx context.Context, loader Loader) error {
	set, err := loader.Load(ctx)
	if err != nil {
		c.session = nil
		c.log.WithError(err).Error("failed to load questions")
		c.presenter.ShowLoadError(LoadErrorMessage(err))
		return err
	}
	for _, skipped := range set.Report.Skipped {
		c.log.WithFields(logrus.Fields{
			"line":   skipped.Line,
			"reason": skipped.Reason,
		}).Debug(skipped.Detail)
	}
	return c.Start(set.Records)
}

// Start shuffles records into a new session and renders it.
func (c *Controller) Start(records []question.Record) error {
	if len(records) == 0 {
		c.session = nil
		c.log.Error("question set is empty")
		c.presenter.ShowLoadError(LoadErrorMessage(source.ErrEmptyQuestionSet))
		return source.ErrEmptyQuestionSet
	}
	session := NewSession(c.opts...)
	ordered := append([]question.Record(nil), records...)
	Shuffle(ordered, session.source)
	session.Initialize(ordered)
	c.session = session
	c.logger("start").WithField("questions", session.Len()).Info("session started")
	c.render()
	return nil
}

// OnSelect records a selection for the question at index.
func (c *Controller) OnSelect(index int, label question.Label) error {
	if c.session == nil {
		return ErrNoSession
	}
	if err := c.session.RecordSelection(index, label); err != nil {
		c.reject("select", err)
		return err
	}
	c.logger("select").WithFields(logrus.Fields{"index": index, "label": label}).Debug("selection recorded")
	c.render()
	return nil
}

// OnClear removes the selection for the question at index.
func (c *Controller) OnClear(index int) error {
	if c.session == nil {
		return ErrNoSession
	}
	if err := c.session.ClearSelection(index); err != nil {
		c.reject("clear", err)
		return err
	}
	c.logger("clear").WithField("index", index).Debug("selection cleared")
	c.render()
	return nil
}

// OnSubmit grades the session and shows the result.
func (c *Controller) OnSubmit() (GradingResult, error) {
	if c.session == nil {
		return GradingResult{}, ErrNoSession
	}
	result, err := c.session.Submit()
	if err != nil {
		c.reject("submit", err)
		return GradingResult{}, err
	}
	c.logger("submit").WithFields(logrus.Fields{
		"score":   result.ScorePercent,
		"correct": result.Correct,
		"total":   result.Total,
		"missed":  len(result.Missed),
	}).Info("session graded")
	c.render()
	c.presenter.ShowGrading(result)
	return result, nil
}

// OnRetry clears selections and keeps the question order.
func (c *Controller) OnRetry() error {
	if c.session == nil {
		return ErrNoSession
	}
	if err := c.session.Retry(); err != nil {
		c.reject("retry", err)
		return err
	}
	c.logger("retry").Info("session reset")
	c.render()
	return nil
}

// OnReshuffle reorders the questions and discards any grading.
func (c *Controller) OnReshuffle() error {
	if c.session == nil {
		return ErrNoSession
	}
	if err := c.session.Reshuffle(); err != nil {
		c.reject("reshuffle", err)
		return err
	}
	c.logger("reshuffle").Info("questions reshuffled")
	c.render()
	return nil
}

// CheckRevision verifies a caller's view of the question order is current.
func (c *Controller) CheckRevision(revision string) error {
	if c.session == nil {
		return ErrNoSession
	}
	if err := c.session.CheckRevision(revision); err != nil {
		c.reject("revision", err)
		return err
	}
	return nil
}

// Session returns the current session, or nil before a successful load.
func (c *Controller) Session() *Session {
	return c.session
}

// Views returns the current question views.
func (c *Controller) Views() []QuestionView {
	return BuildViews(c.session)
}

// LoadErrorMessage turns a load failure into the text shown to the user.
func LoadErrorMessage(err error) string {
	if errors.Is(err, source.ErrEmptyQuestionSet) {
		return "No usable questions were found. Check that the question file has a header row and rows of: question, A, B, C, D, answer."
	}
	return fmt.Sprintf("Error loading questions: %v", err)
}

func (c *Controller) render() {
	c.presenter.RenderQuestions(BuildViews(c.session))
}

func (c *Controller) logger(op string) logrus.FieldLogger {
	fields := logrus.Fields{"op": op}
	if c.session != nil {
		fields["session"] = c.session.ID()
		fields["phase"] = c.session.Phase().String()
	}
	return c.log.WithFields(fields)
}

func (c *Controller) reject(op string, err error) {
	c.logger(op).WithError(err).Warn("operation rejected")
}

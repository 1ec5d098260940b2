package quiz

import (
	"github.com/google/uuid"

	"quizdeck/internal/question"
)

// Phase is the session lifecycle state.
type Phase int

const (
	// PhaseActive accepts selections.
	PhaseActive Phase = iota
	// PhaseGraded exposes a grading result; selections are frozen.
	PhaseGraded
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseGraded:
		return "graded"
	default:
		return "unknown"
	}
}

// Session holds the question order, the user's selections and the phase.
// It is not safe for concurrent use; adapters serialize calls.
type Session struct {
	id            string
	revision      string
	questions     []question.Record
	selections    []question.Label
	phase         Phase
	result        *GradingResult
	source        Source
	passThreshold int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSource sets the random source used by Reshuffle.
func WithSource(src Source) SessionOption {
	return func(s *Session) {
		s.source = src
	}
}

// WithPassThreshold sets the score needed to pass.
func WithPassThreshold(threshold int) SessionOption {
	return func(s *Session) {
		if threshold > 0 && threshold <= 100 {
			s.passThreshold = threshold
		}
	}
}

// NewSession returns an empty, active session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		id:            uuid.NewString(),
		passThreshold: DefaultPassThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Initialize(nil)
	return s
}

// Initialize takes the already shuffled questions and starts a fresh attempt.
func (s *Session) Initialize(questions []question.Record) {
	s.questions = append([]question.Record(nil), questions...)
	s.reset()
	s.revision = uuid.NewString()
}

// RecordSelection sets the chosen label for a question, replacing any earlier pick.
func (s *Session) RecordSelection(index int, label question.Label) error {
	const op = "record selection"
	if s.phase != PhaseActive {
		return phaseError(op, s.phase)
	}
	if err := s.checkIndex(op, index); err != nil {
		return err
	}
	if !s.questions[index].HasOption(label) {
		return argumentError(op, "question %d has no option %q", index+1, label)
	}
	s.selections[index] = label
	return nil
}

// ClearSelection marks a question as unanswered again.
func (s *Session) ClearSelection(index int) error {
	const op = "clear selection"
	if s.phase != PhaseActive {
		return phaseError(op, s.phase)
	}
	if err := s.checkIndex(op, index); err != nil {
		return err
	}
	s.selections[index] = ""
	return nil
}

// Submit grades the current selections and moves to PhaseGraded.
func (s *Session) Submit() (GradingResult, error) {
	if s.phase != PhaseActive {
		return GradingResult{}, phaseError("submit", s.phase)
	}
	result := grade(s.questions, s.selections, s.passThreshold)
	s.result = &result
	s.phase = PhaseGraded
	return result, nil
}

// Retry clears selections and keeps the question order. Calling it while
// active is a harmless reset.
func (s *Session) Retry() error {
	s.reset()
	return nil
}

// Reshuffle permutes the questions and starts a fresh attempt from any phase.
func (s *Session) Reshuffle() error {
	Shuffle(s.questions, s.source)
	s.reset()
	s.revision = uuid.NewString()
	return nil
}

// CheckRevision rejects callers that refer to a question order other than the current one.
func (s *Session) CheckRevision(revision string) error {
	if revision != s.revision {
		return &OperationError{Op: "check revision", Kind: KindStale, Reason: "question order has changed"}
	}
	return nil
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Revision changes whenever the question order does.
func (s *Session) Revision() string { return s.revision }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Len returns the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Questions returns a copy of the current question order.
func (s *Session) Questions() []question.Record {
	return append([]question.Record(nil), s.questions...)
}

// Selection returns the label chosen for a question, or "" when unanswered.
func (s *Session) Selection(index int) question.Label {
	if index < 0 || index >= len(s.selections) {
		return ""
	}
	return s.selections[index]
}

// Answered counts questions with a selection.
func (s *Session) Answered() int {
	count := 0
	for _, label := range s.selections {
		if label != "" {
			count++
		}
	}
	return count
}

// Result returns the grading result while graded.
func (s *Session) Result() (GradingResult, bool) {
	if s.phase != PhaseGraded || s.result == nil {
		return GradingResult{}, false
	}
	return *s.result, true
}

func (s *Session) reset() {
	s.selections = make([]question.Label, len(s.questions))
	s.phase = PhaseActive
	s.result = nil
}

func (s *Session) checkIndex(op string, index int) error {
	if index < 0 || index >= len(s.questions) {
		return argumentError(op, "question index %d out of range [0, %d)", index, len(s.questions))
	}
	return nil
}

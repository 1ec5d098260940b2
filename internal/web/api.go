package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"quizdeck/internal/question"
	"quizdeck/internal/quiz"
)

type eventRequest struct {
	Revision string `json:"revision"`
	Index    *int   `json:"index,omitempty"`
	Label    string `json:"label,omitempty"`
}

type optionState struct {
	Label    string `json:"label"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Correct  bool   `json:"correct,omitempty"`
}

type outcomeState struct {
	Status       string `json:"status"`
	UserLabel    string `json:"user_label,omitempty"`
	CorrectLabel string `json:"correct_label"`
	Feedback     string `json:"feedback,omitempty"`
}

type questionState struct {
	Index   int           `json:"index"`
	Number  int           `json:"number"`
	Prompt  string        `json:"prompt"`
	Options []optionState `json:"options"`
	Outcome *outcomeState `json:"outcome,omitempty"`
}

type missState struct {
	Index         int    `json:"index"`
	Prompt        string `json:"prompt"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}

type resultState struct {
	ScorePercent int         `json:"score_percent"`
	Correct      int         `json:"correct"`
	Total        int         `json:"total"`
	Passed       bool        `json:"passed"`
	Message      string      `json:"message"`
	Missed       []missState `json:"missed"`
}

type quizState struct {
	Revision  string          `json:"revision"`
	Phase     string          `json:"phase"`
	Questions []questionState `json:"questions"`
	Result    *resultState    `json:"result,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) apiQuiz(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller.Session() == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: s.page.loadError})
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *server) apiSelect(w http.ResponseWriter, r *http.Request) {
	s.apiEvent(w, r, func(req eventRequest) error {
		if req.Index == nil {
			return errMissingIndex
		}
		label, ok := question.ParseLabel(req.Label)
		if !ok {
			return &quiz.OperationError{Op: "select", Kind: quiz.KindArgument, Reason: "unknown label " + strconv.Quote(req.Label)}
		}
		return s.controller.OnSelect(*req.Index, label)
	})
}

func (s *server) apiClear(w http.ResponseWriter, r *http.Request) {
	s.apiEvent(w, r, func(req eventRequest) error {
		if req.Index == nil {
			return errMissingIndex
		}
		return s.controller.OnClear(*req.Index)
	})
}

func (s *server) apiSubmit(w http.ResponseWriter, r *http.Request) {
	s.apiEvent(w, r, func(eventRequest) error {
		_, err := s.controller.OnSubmit()
		return err
	})
}

func (s *server) apiRetry(w http.ResponseWriter, r *http.Request) {
	s.apiEvent(w, r, func(eventRequest) error { return s.controller.OnRetry() })
}

func (s *server) apiReshuffle(w http.ResponseWriter, r *http.Request) {
	s.apiEvent(w, r, func(eventRequest) error { return s.controller.OnReshuffle() })
}

var errMissingIndex = &quiz.OperationError{Op: "decode request", Kind: quiz.KindArgument, Reason: "index is required"}

// apiEvent decodes the request, checks the revision and applies apply under the lock.
func (s *server) apiEvent(w http.ResponseWriter, r *http.Request, apply func(eventRequest) error) {
	var req eventRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.controller.CheckRevision(req.Revision)
	if err == nil {
		err = apply(req)
	}
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

// state converts the presented page into its JSON form. Callers hold s.mu.
func (s *server) state() quizState {
	session := s.controller.Session()
	state := quizState{
		Revision:  session.Revision(),
		Phase:     session.Phase().String(),
		Questions: make([]questionState, 0, len(s.page.views)),
	}
	for _, view := range s.page.views {
		q := questionState{Index: view.Index, Number: view.Number, Prompt: view.Prompt}
		for _, option := range view.Options {
			q.Options = append(q.Options, optionState{
				Label:    string(option.Label),
				Text:     option.Text,
				Selected: option.Selected,
				Correct:  option.Correct,
			})
		}
		if view.Outcome != nil {
			q.Outcome = &outcomeState{
				Status:       string(view.Outcome.Status),
				UserLabel:    string(view.Outcome.UserLabel),
				CorrectLabel: string(view.Outcome.CorrectLabel),
				Feedback:     view.Outcome.Feedback(),
			}
		}
		state.Questions = append(state.Questions, q)
	}
	if result := s.page.result; result != nil {
		rs := &resultState{
			ScorePercent: result.ScorePercent,
			Correct:      result.Correct,
			Total:        result.Total,
			Passed:       result.Passed,
			Message:      result.Message(),
			Missed:       make([]missState, 0, len(result.Missed)),
		}
		for _, miss := range result.Missed {
			rs.Missed = append(rs.Missed, missState{
				Index:         miss.Index,
				Prompt:        miss.Prompt,
				UserAnswer:    miss.UserAnswerText,
				CorrectAnswer: miss.CorrectAnswerText,
			})
		}
		state.Result = rs
	}
	return state
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

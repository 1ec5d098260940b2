package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"quizdeck/internal/question"
	"quizdeck/internal/quiz"
	"quizdeck/internal/testutil"
)

type fixture struct {
	handler    http.Handler
	controller *quiz.Controller
	page       *Page
	logs       *bytes.Buffer
}

func newFixture(t *testing.T, records []question.Record) fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	page := NewPage()
	controller := quiz.NewController(page, quiz.ControllerOptions{Source: quiz.NewSeededSource(7)})
	_ = controller.Start(records)
	handler, err := NewHandler(controller, page, Config{
		Title:       "Practice",
		CORSOrigins: []string{"http://localhost:3000"},
		Logger:      testutil.Logger(logs),
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return fixture{handler: handler, controller: controller, page: page, logs: logs}
}

func (f fixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
	resp := httptest.NewRecorder()
	f.handler.ServeHTTP(resp, req)
	return resp
}

func (f fixture) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "http://example.com"+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	f.handler.ServeHTTP(resp, req)
	return resp
}

func (f fixture) revision() string {
	return f.controller.Session().Revision()
}

// TestIndexRendersQuestions verifies the page lists every question as a radio group.
func TestIndexRendersQuestions(t *testing.T) {
	f := newFixture(t, testutil.Records(3))
	resp := f.get("/")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{"<title>Practice</title>", `name="q0"`, `name="q2"`, `value="` + f.revision() + `"`, "Question 1", "Question 3", "B. B text"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
	if strings.Contains(body, "Score:") {
		t.Fatalf("unexpected score before grading")
	}
}

// TestIndexEscapesContent verifies question text is HTML-escaped.
func TestIndexEscapesContent(t *testing.T) {
	f := newFixture(t, []question.Record{testutil.Record(1, "Is 1 <b>less</b> than 2?", question.LabelA, question.LabelA, question.LabelB)})
	body := f.get("/").Body.String()
	if strings.Contains(body, "<b>less</b>") || !strings.Contains(body, "&lt;b&gt;less&lt;/b&gt;") {
		t.Fatalf("expected escaped prompt in page")
	}
}

// TestIndexIsIdempotent verifies repeated renders of the same state are identical.
func TestIndexIsIdempotent(t *testing.T) {
	f := newFixture(t, testutil.Records(4))
	first := f.get("/").Body.String()
	second := f.get("/").Body.String()
	if first != second {
		t.Fatalf("page output changed between renders")
	}
}

// TestSubmitFormGrades verifies the form selections are applied and graded.
func TestSubmitFormGrades(t *testing.T) {
	f := newFixture(t, testutil.Records(3))
	resp := f.postForm("/submit", url.Values{"revision": {f.revision()}, "q0": {"a"}, "q1": {"A"}})
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", resp.Code, resp.Body.String())
	}
	if f.controller.Session().Phase() != quiz.PhaseGraded {
		t.Fatalf("expected graded session")
	}
	body := f.get("/").Body.String()
	for _, want := range []string{"Score: 67% (2/3)", quiz.FailMessage, "Review", "Your answer: " + quiz.NoAnswerText, "Correct answer: A. A text"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in graded page", want)
		}
	}
	if strings.Contains(body, `<button type="submit">Submit</button>`) {
		t.Fatalf("submit button must be hidden while graded")
	}
}

// TestSubmitFormStaleRevision verifies an outdated page cannot grade the session.
func TestSubmitFormStaleRevision(t *testing.T) {
	f := newFixture(t, testutil.Records(2))
	stale := f.revision()
	if err := f.controller.OnReshuffle(); err != nil {
		t.Fatalf("reshuffle: %v", err)
	}
	resp := f.postForm("/submit", url.Values{"revision": {stale}, "q0": {"a"}})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "The questions changed") {
		t.Fatalf("expected stale notice in page")
	}
	session := f.controller.Session()
	if session.Phase() != quiz.PhaseActive || session.Answered() != 0 {
		t.Fatalf("stale submission changed the session")
	}
}

// TestSubmitFormBadLabel verifies an unknown option is rejected without partial updates.
func TestSubmitFormBadLabel(t *testing.T) {
	f := newFixture(t, testutil.Records(2))
	resp := f.postForm("/submit", url.Values{"revision": {f.revision()}, "q0": {"a"}, "q1": {"z"}})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if f.controller.Session().Answered() != 0 {
		t.Fatalf("expected no selections after a rejected form")
	}
}

// TestSubmitFormWhileGraded verifies a second submission is a conflict.
func TestSubmitFormWhileGraded(t *testing.T) {
	f := newFixture(t, testutil.Records(1))
	form := url.Values{"revision": {f.revision()}, "q0": {"a"}}
	if resp := f.postForm("/submit", form); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", resp.Code)
	}
	resp := f.postForm("/submit", form)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "not allowed while graded") {
		t.Fatalf("expected phase error in page")
	}
}

// TestRetryAndReshuffleForms verifies both actions reset the quiz and redirect.
func TestRetryAndReshuffleForms(t *testing.T) {
	f := newFixture(t, testutil.Records(3))
	revision := f.revision()
	_ = f.postForm("/submit", url.Values{"revision": {revision}, "q0": {"b"}})

	if resp := f.postForm("/retry", url.Values{"revision": {revision}}); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected retry redirect, got %d", resp.Code)
	}
	if f.controller.Session().Phase() != quiz.PhaseActive || f.revision() != revision {
		t.Fatalf("retry must reactivate and keep the order")
	}
	if resp := f.postForm("/reshuffle", url.Values{"revision": {revision}}); resp.Code != http.StatusSeeOther {
		t.Fatalf("expected reshuffle redirect, got %d", resp.Code)
	}
	if f.revision() == revision {
		t.Fatalf("expected a new revision after reshuffle")
	}
	if resp := f.postForm("/retry", url.Values{"revision": {revision}}); resp.Code != http.StatusConflict {
		t.Fatalf("expected stale retry to conflict, got %d", resp.Code)
	}
}

// TestIndexShowsLoadError verifies an empty question set renders the load message.
func TestIndexShowsLoadError(t *testing.T) {
	f := newFixture(t, nil)
	if !strings.Contains(f.page.LoadError(), "No usable questions") {
		t.Fatalf("expected page to hold the load error, got %q", f.page.LoadError())
	}
	resp := f.get("/")
	if !strings.Contains(resp.Body.String(), "No usable questions") {
		t.Fatalf("expected load error, got %s", resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), `action="/submit"`) {
		t.Fatalf("expected no quiz form without a session")
	}
	if resp := f.postForm("/submit", url.Values{}); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a session, got %d", resp.Code)
	}
}

// TestRenderQuestionsClearsLoadError verifies a later render replaces the load failure.
func TestRenderQuestionsClearsLoadError(t *testing.T) {
	page := NewPage()
	page.ShowLoadError("fetch failed")
	if page.LoadError() != "fetch failed" {
		t.Fatalf("expected load error, got %q", page.LoadError())
	}
	page.RenderQuestions(nil)
	if page.LoadError() != "" {
		t.Fatalf("expected load error to be cleared, got %q", page.LoadError())
	}
}

// TestRequestsAreLogged verifies the request logger writes through logrus.
func TestRequestsAreLogged(t *testing.T) {
	f := newFixture(t, testutil.Records(1))
	_ = f.get("/")
	logs := f.logs.String()
	if !strings.Contains(logs, "msg=request") || !strings.Contains(logs, "path=/") || !strings.Contains(logs, "status=200") {
		t.Fatalf("expected request log line, got %q", logs)
	}
}

// TestNewHandlerRequiresController verifies missing collaborators are rejected.
func TestNewHandlerRequiresController(t *testing.T) {
	if _, err := NewHandler(nil, NewPage(), Config{}); err == nil {
		t.Fatalf("expected error for nil controller")
	}
	controller := quiz.NewController(NewPage(), quiz.ControllerOptions{})
	if _, err := NewHandler(controller, nil, Config{}); err == nil {
		t.Fatalf("expected error for nil page")
	}
}

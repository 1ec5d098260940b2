package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"quizdeck/internal/question"
	"quizdeck/internal/quiz"
)

// DefaultTitle is the page heading when none is configured.
const DefaultTitle = "quizdeck"

// server serializes requests against the single controller and page.
type server struct {
	mu         sync.Mutex
	controller *quiz.Controller
	page       *Page
	title      string
	log        logrus.FieldLogger
}

// NewHandler builds the router for the quiz page and the JSON API.
func NewHandler(controller *quiz.Controller, page *Page, cfg Config) (http.Handler, error) {
	if controller == nil {
		return nil, errors.New("web: controller is required")
	}
	if page == nil {
		return nil, errors.New("web: page is required")
	}
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	title := cfg.Title
	if title == "" {
		title = DefaultTitle
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := &server{controller: controller, page: page, title: title, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(log), middleware.Recoverer)

	r.Get("/", s.index)
	r.Post("/submit", s.submitForm)
	r.Post("/retry", s.retryForm)
	r.Post("/reshuffle", s.reshuffleForm)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
		api.Get("/quiz", s.apiQuiz)
		api.Post("/select", s.apiSelect)
		api.Post("/clear", s.apiClear)
		api.Post("/submit", s.apiSubmit)
		api.Post("/retry", s.apiRetry)
		api.Post("/reshuffle", s.apiReshuffle)
	})
	return r, nil
}

// index renders the quiz page from the last presented state.
func (s *server) index(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writePage(w, r, http.StatusOK, "")
}

// submitForm applies the radio selections of the form, then grades.
func (s *server) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writePage(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.controller.CheckRevision(r.PostForm.Get("revision")); err != nil {
		s.writePage(w, r, statusFor(err), errorMessage(err))
		return
	}
	labels, err := formSelections(s.controller.Session(), r)
	if err != nil {
		s.writePage(w, r, statusFor(err), errorMessage(err))
		return
	}
	for index, label := range labels {
		if label == "" {
			err = s.controller.OnClear(index)
		} else {
			err = s.controller.OnSelect(index, label)
		}
		if err != nil {
			s.writePage(w, r, statusFor(err), errorMessage(err))
			return
		}
	}
	if _, err := s.controller.OnSubmit(); err != nil {
		s.writePage(w, r, statusFor(err), errorMessage(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// retryForm clears the answers and redirects to the page.
func (s *server) retryForm(w http.ResponseWriter, r *http.Request) {
	s.formAction(w, r, s.controller.OnRetry)
}

// reshuffleForm reorders the questions and redirects to the page.
func (s *server) reshuffleForm(w http.ResponseWriter, r *http.Request) {
	s.formAction(w, r, s.controller.OnReshuffle)
}

func (s *server) formAction(w http.ResponseWriter, r *http.Request, action func() error) {
	_ = r.ParseForm()
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.controller.CheckRevision(r.PostForm.Get("revision"))
	if err == nil {
		err = action()
	}
	if err != nil {
		s.writePage(w, r, statusFor(err), errorMessage(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// writePage renders the page. Callers hold s.mu.
func (s *server) writePage(w http.ResponseWriter, r *http.Request, status int, flash string) {
	data := pageData{
		Title:     s.title,
		Views:     s.page.views,
		Result:    s.page.result,
		LoadError: s.page.LoadError(),
		Flash:     flash,
	}
	if session := s.controller.Session(); session != nil {
		data.Revision = session.Revision()
		data.Phase = session.Phase()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := quizPage(data).Render(r.Context(), w); err != nil {
		s.log.WithError(err).Error("failed to render page")
	}
}

// formSelections reads q<index> for every question. Labels are checked
// before any selection changes so a bad form leaves the session untouched.
func formSelections(session *quiz.Session, r *http.Request) ([]question.Label, error) {
	if session == nil {
		return nil, quiz.ErrNoSession
	}
	questions := session.Questions()
	labels := make([]question.Label, len(questions))
	for i, record := range questions {
		raw := r.PostForm.Get("q" + strconv.Itoa(i))
		if raw == "" {
			continue
		}
		label, ok := question.ParseLabel(raw)
		if !ok || !record.HasOption(label) {
			return nil, &quiz.OperationError{
				Op:     "submit form",
				Kind:   quiz.KindArgument,
				Reason: "question " + strconv.Itoa(i+1) + " has no option " + strconv.Quote(raw),
			}
		}
		labels[i] = label
	}
	return labels, nil
}

// statusFor maps a rejected operation to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, quiz.ErrNoSession) {
		return http.StatusServiceUnavailable
	}
	var opErr *quiz.OperationError
	if errors.As(err, &opErr) {
		if opErr.Kind == quiz.KindArgument {
			return http.StatusBadRequest
		}
		return http.StatusConflict
	}
	if errors.Is(err, quiz.ErrInvalidOperation) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	var opErr *quiz.OperationError
	if errors.As(err, &opErr) && opErr.Kind == quiz.KindStale {
		return "The questions changed since this page was loaded. Please review and try again."
	}
	return err.Error()
}

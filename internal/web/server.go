package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"quizdeck/internal/quiz"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

// Config captures the settings for serving the quiz over HTTP.
type Config struct {
	Addr        string
	Title       string
	CORSOrigins []string
	Logger      logrus.FieldLogger
}

// Serve starts an HTTP server for the quiz and blocks until ctx is done or
// the listener fails.
func Serve(ctx context.Context, controller *quiz.Controller, page *Page, cfg Config) error {
	if ctx == nil {
		return errors.New("web: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("web: addr is required")
	}
	handler, err := NewHandler(controller, page, cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	if cfg.Logger != nil {
		cfg.Logger.WithField("addr", cfg.Addr).Info("serving quiz")
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}

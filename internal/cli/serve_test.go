package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizdeck/internal/quiz"
	"quizdeck/internal/web"
)

// TestServeCommandRequiresSource verifies serve fails when no source is configured.
func TestServeCommandRequiresSource(t *testing.T) {
	_, configPath := writeQuestions(t, twoQuestions)
	cmd := findCommand("serve")
	if cmd == nil {
		t.Fatalf("serve command not found")
	}
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{"--config", configPath}, &stdout, &stderr)
	if exitCode != ExitUsage {
		t.Fatalf("expected usage exit, got %d", exitCode)
	}
}

// TestServeCommandPassesConfig ensures serve forwards the loaded quiz and settings to the server.
func TestServeCommandPassesConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "questions.csv"), []byte(twoQuestions), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	configPath := filepath.Join(dir, ".quizdeck.yml")
	content := "version: 1\nsource: questions.csv\nserve:\n  cors_origins: [\"http://localhost:3000\"]\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var gotConfig web.Config
	var gotQuestions int
	origServe := serveQuiz
	serveQuiz = func(_ context.Context, controller *quiz.Controller, _ *web.Page, cfg web.Config) error {
		gotConfig = cfg
		gotQuestions = controller.Session().Len()
		return nil
	}
	t.Cleanup(func() { serveQuiz = origServe })

	var stdout, stderr bytes.Buffer
	exitCode := Run([]string{"serve", "--config", configPath, "--addr", "127.0.0.1:5050"}, &stdout, &stderr)
	if exitCode != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", exitCode, stderr.String())
	}
	if gotConfig.Addr != "127.0.0.1:5050" {
		t.Fatalf("unexpected addr: %s", gotConfig.Addr)
	}
	if len(gotConfig.CORSOrigins) != 1 || gotConfig.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", gotConfig.CORSOrigins)
	}
	if gotQuestions != 2 {
		t.Fatalf("expected 2 loaded questions, got %d", gotQuestions)
	}
	if !strings.Contains(stdout.String(), "Serving quiz at http://127.0.0.1:5050") {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

// TestServeCommandUsesEnvAddr verifies QUIZDECK_ADDR overrides the file value.
func TestServeCommandUsesEnvAddr(t *testing.T) {
	questions, configPath := writeQuestions(t, twoQuestions)
	t.Setenv("QUIZDECK_ADDR", "127.0.0.1:6060")

	var gotAddr string
	origServe := serveQuiz
	serveQuiz = func(_ context.Context, _ *quiz.Controller, _ *web.Page, cfg web.Config) error {
		gotAddr = cfg.Addr
		return nil
	}
	t.Cleanup(func() { serveQuiz = origServe })

	var stdout, stderr bytes.Buffer
	if code := Run([]string{"serve", "--config", configPath, "--source", questions}, &stdout, &stderr); code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if gotAddr != "127.0.0.1:6060" {
		t.Fatalf("expected env addr, got %q", gotAddr)
	}
}

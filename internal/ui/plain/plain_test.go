package plain

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"quizdeck/internal/quiz"
	"quizdeck/internal/testutil"
)

func startController(t *testing.T, out *bytes.Buffer, n int) *quiz.Controller {
	t.Helper()
	controller := quiz.NewController(NewPrinter(out), quiz.ControllerOptions{Source: quiz.NewSeededSource(5)})
	if err := controller.Start(testutil.Records(n)); err != nil {
		t.Fatalf("start: %v", err)
	}
	return controller
}

// TestRunGradesScript verifies a scripted session answers, submits and quits.
func TestRunGradesScript(t *testing.T) {
	var out bytes.Buffer
	controller := startController(t, &out, 2)
	script := "1 a\n2 c\nsubmit\nquit\n"
	if err := Run(context.Background(), controller, strings.NewReader(script), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Score: 50% (1/2)", quiz.FailMessage, "Review:", "Your answer:    C. C text", "Correct answer: A. A text", "Incorrect. The correct answer is A."} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

// TestRunReportsErrorsAndContinues verifies rejected commands do not end the loop.
func TestRunReportsErrorsAndContinues(t *testing.T) {
	var out bytes.Buffer
	controller := startController(t, &out, 1)
	script := "9 a\n1 z\nbogus\nsubmit\n1 a\nretry\n1 a\nsubmit\n"
	if err := Run(context.Background(), controller, strings.NewReader(script), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"out of range", `unknown option "z"`, "unrecognized command", "not allowed while graded", "Score: 100% (1/1)", quiz.PassMessage} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

// TestShowGradingHidesEmptyReview verifies a perfect score prints no review section.
func TestShowGradingHidesEmptyReview(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out).ShowGrading(quiz.GradingResult{ScorePercent: 100, Correct: 1, Total: 1, Passed: true, Missed: []quiz.Miss{}})
	if strings.Contains(out.String(), "Review:") {
		t.Fatalf("expected no review section, got %q", out.String())
	}
}

// TestRenderQuestionsIsPureReplace verifies identical views print identical blocks.
func TestRenderQuestionsIsPureReplace(t *testing.T) {
	var discard bytes.Buffer
	controller := startController(t, &discard, 3)
	var first, second bytes.Buffer
	NewPrinter(&first).RenderQuestions(controller.Views())
	NewPrinter(&second).RenderQuestions(controller.Views())
	if first.String() != second.String() {
		t.Fatalf("render output differs")
	}
}

// TestRunStopsOnCancelledContext verifies cancellation ends the loop.
func TestRunStopsOnCancelledContext(t *testing.T) {
	var out bytes.Buffer
	controller := startController(t, &out, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Run(ctx, controller, strings.NewReader("1 a\n"), &out); err == nil {
		t.Fatalf("expected context error")
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"

	"quizdeck/internal/question"
)

// TestCheckReportsSkippedRows verifies skipped rows are listed with line and reason.
func TestCheckReportsSkippedRows(t *testing.T) {
	questions, configPath := writeQuestions(t, twoQuestions+"Only prompt,a\nBad answer,x,y,,,D\n")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"check", "--config", configPath, "--source", questions}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"2 questions accepted, 2 rows skipped (4 data rows, header has 6 columns)",
		"line 3: " + string(question.SkipTooFewFields),
		"line 4: " + string(question.SkipInvalidAnswer),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
}

// TestCheckNormalizeWritesCSV verifies --normalize emits parseable CSV on stdout.
func TestCheckNormalizeWritesCSV(t *testing.T) {
	questions, configPath := writeQuestions(t, twoQuestions+"broken\n")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"check", "--config", configPath, "--source", questions, "--normalize"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	set := question.Parse(stdout.String())
	if len(set.Records) != 2 || set.Report.SkippedCount() != 0 {
		t.Fatalf("expected 2 clean records, got %d (skipped %d)", len(set.Records), set.Report.SkippedCount())
	}
	if !strings.Contains(stderr.String(), "questions accepted") {
		t.Fatalf("expected report on stderr, got %q", stderr.String())
	}
}

// TestCheckFailsOnEmptySet verifies a file with no usable rows fails.
func TestCheckFailsOnEmptySet(t *testing.T) {
	questions, configPath := writeQuestions(t, "question,A,B,C,D,answer\n")
	var stdout, stderr bytes.Buffer
	code := Run([]string{"check", "--config", configPath, "--source", questions}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit error, got %d", code)
	}
	if !strings.Contains(stderr.String(), "No usable questions") {
		t.Fatalf("expected empty set message, got %q", stderr.String())
	}
}

package testutil

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"

	"quizdeck/internal/question"
)

// Logger returns a debug-level logger writing plain text to w, or discarding when w is nil.
func Logger(w io.Writer) *logrus.Logger {
	if w == nil {
		w = io.Discard
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	return logger
}

// WriteFile writes content under a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// Record builds a question whose options read "<label> text".
func Record(id int, prompt string, answer question.Label, labels ...question.Label) question.Record {
	record := question.Record{
		ID:      id,
		Prompt:  prompt,
		Options: make(map[question.Label]string, len(labels)),
		Answer:  answer,
	}
	for _, label := range labels {
		record.Options[label] = string(label) + " text"
	}
	return record
}

// Records builds n four-option questions ("Question 1".."Question n") answered by A.
func Records(n int) []question.Record {
	records := make([]question.Record, n)
	for i := range records {
		records[i] = Record(i+1, "Question "+strconv.Itoa(i+1), question.LabelA, question.Labels...)
	}
	return records
}

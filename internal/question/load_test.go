package question

import (
	"errors"
	"testing"
)

// TestDecodeYAML verifies YAML documents load and normalize properly.
func TestDecodeYAML(t *testing.T) {
	payload := `version: 1
questions:
  - question: "  What is 2+2? "
    options: {a: " 4 ", b: "5"}
    answer: a
`
	set, err := Decode([]byte(payload), FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(set.Records) != 1 {
		t.Fatalf("expected 1 question, got %d", len(set.Records))
	}
	q := set.Records[0]
	if q.ID != 1 {
		t.Fatalf("expected id 1, got %d", q.ID)
	}
	if q.Prompt != "What is 2+2?" {
		t.Fatalf("expected trimmed prompt, got %q", q.Prompt)
	}
	if q.Options[LabelA] != "4" || q.Answer != LabelA {
		t.Fatalf("unexpected record: %+v", q)
	}
}

// TestDecodeJSON verifies JSON documents are parsed and validated.
func TestDecodeJSON(t *testing.T) {
	payload := `{
  "version": 1,
  "questions": [
    {"question": "Which color?", "options": {"A": "red", "B": "blue"}, "answer": "B"}
  ]
}`
	set, err := Decode([]byte(payload), FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(set.Records) != 1 || set.Records[0].Answer != LabelB {
		t.Fatalf("unexpected records: %+v", set.Records)
	}
}

// TestDecodeValidationErrors verifies invalid documents report every issue.
func TestDecodeValidationErrors(t *testing.T) {
	payload := `version: 1
questions:
  - question: "Q1"
    options: {A: "yes", B: "no"}
    answer: C
  - question: ""
    options: {A: "only", Z: "bad"}
    answer: A
`
	_, err := Decode([]byte(payload), FormatYAML)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Issues) != 4 {
		t.Fatalf("expected 4 issues, got %+v", validationErr.Issues)
	}
}

// TestDecodeRejectsUnknownFields verifies strict decoding of structured documents.
func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode([]byte("version: 1\nextra: true\n"), FormatYAML); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := Decode([]byte(`{"version":1}{"version":1}`), FormatJSON); err == nil {
		t.Fatalf("expected multiple document error")
	}
}

// TestFormatFromName verifies format detection from paths and URLs.
func TestFormatFromName(t *testing.T) {
	cases := map[string]Format{
		"questions.csv":                      FormatCSV,
		"questions.tsv":                      FormatCSV,
		"deck.YAML":                          FormatYAML,
		"deck.yml":                           FormatYAML,
		"https://example.com/q.json?raw=1":   FormatJSON,
		"https://example.com/questions#frag": FormatCSV,
	}
	for name, want := range cases {
		if got := FormatFromName(name); got != want {
			t.Fatalf("%s: expected %s, got %s", name, want, got)
		}
	}
}

package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a structured question document.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question document validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeDocument trims a structured document and converts it into records.
// Unlike delimited text, every problem is reported instead of skipped.
func NormalizeDocument(doc Document) ([]Record, error) {
	collector := &issueCollector{}
	if doc.Version == 0 {
		collector.add("version", "is required")
	} else if doc.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", doc.Version))
	}

	records := make([]Record, 0, len(doc.Questions))
	for i, entry := range doc.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		record := Record{
			ID:      i + 1,
			Prompt:  strings.TrimSpace(entry.Question),
			Options: make(map[Label]string, len(Labels)),
		}
		if record.Prompt == "" {
			collector.add(prefix+".question", "is required")
		}
		for key, text := range entry.Options {
			label, ok := ParseLabel(key)
			if !ok {
				collector.add(fmt.Sprintf("%s.options.%s", prefix, key), "unknown label (expected A-D)")
				continue
			}
			record.Options[label] = strings.TrimSpace(text)
		}
		if len(record.Choices()) < 2 {
			collector.add(prefix+".options", "must include at least two non-empty entries")
		}
		answer, ok := ParseLabel(entry.Answer)
		switch {
		case strings.TrimSpace(entry.Answer) == "":
			collector.add(prefix+".answer", "is required")
		case !ok || !record.HasOption(answer):
			collector.add(prefix+".answer", fmt.Sprintf("unknown option %q", entry.Answer))
		}
		record.Answer = answer
		records = append(records, record)
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return records, nil
}

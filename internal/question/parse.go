package question

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinFields is the number of columns a data row needs: prompt, four options, answer.
const MinFields = 6

// DefaultDelimiter separates fields when no other delimiter is configured.
const DefaultDelimiter = ','

// SkipReason explains why a data row produced no record.
type SkipReason string

const (
	// SkipTooFewFields marks rows with fewer than MinFields columns.
	SkipTooFewFields SkipReason = "too-few-fields"
	// SkipSyntax marks rows the CSV reader could not split unambiguously.
	SkipSyntax SkipReason = "syntax"
	// SkipInvalidAnswer marks rows whose answer does not name an existing option.
	SkipInvalidAnswer SkipReason = "invalid-answer"
	// SkipTooFewOptions marks rows with fewer than two non-empty options.
	SkipTooFewOptions SkipReason = "too-few-options"
)

// Skipped records one data row that was dropped.
type Skipped struct {
	Line   int
	Reason SkipReason
	Detail string
}

// Report summarizes a parse.
type Report struct {
	HeaderColumns int
	DataRows      int
	Skipped       []Skipped
}

// SkippedCount returns how many data rows produced no record.
func (r Report) SkippedCount() int {
	return len(r.Skipped)
}

// Set is the result of parsing a question source.
type Set struct {
	Records []Record
	Report  Report
}

// Option adjusts parser behaviour.
type Option func(*parseOptions)

type parseOptions struct {
	delimiter rune
}

// WithDelimiter overrides the field delimiter.
func WithDelimiter(delimiter rune) Option {
	return func(opts *parseOptions) {
		if delimiter != 0 {
			opts.delimiter = delimiter
		}
	}
}

// Parse converts delimited text into records. Malformed rows are skipped and
// listed in the report.
func Parse(text string, opts ...Option) Set {
	// strings.Reader never fails, so the only possible error is unreachable.
	set, _ := ParseReader(strings.NewReader(text), opts...)
	return set
}

// ParseReader is Parse over a stream. The error is non-nil only when reading
// from r fails.
func ParseReader(r io.Reader, opts ...Option) (Set, error) {
	options := parseOptions{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(&options)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Set{}, fmt.Errorf("read question source: %w", err)
	}
	reader := csv.NewReader(strings.NewReader(trimAfterQuotes(string(data), options.delimiter)))
	reader.Comma = options.delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var set Set
	headerLine := -1
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return Set{}, fmt.Errorf("split question source: %w", err)
			}
			if headerLine < 0 {
				headerLine = parseErr.StartLine
				continue
			}
			set.Report.DataRows++
			set.Report.Skipped = append(set.Report.Skipped, Skipped{
				Line:   parseErr.StartLine - headerLine,
				Reason: SkipSyntax,
				Detail: parseErr.Err.Error(),
			})
			continue
		}
		if isBlank(fields) {
			continue
		}
		startLine, _ := reader.FieldPos(0)
		if headerLine < 0 {
			headerLine = startLine
			set.Report.HeaderColumns = len(fields)
			continue
		}

		set.Report.DataRows++
		line := startLine - headerLine
		record, skipped := buildRecord(line, fields)
		if skipped != nil {
			set.Report.Skipped = append(set.Report.Skipped, *skipped)
			continue
		}
		set.Records = append(set.Records, record)
	}
	return set, nil
}

// quoteState tracks where trimAfterQuotes is within a field.
type quoteState int

const (
	fieldStart quoteState = iota
	unquotedField
	quotedField
	quoteSeen
	afterQuote
)

// trimAfterQuotes removes blanks between a closing quote and the delimiter or
// line end that follows it, so `"a, b" ,c` splits like `"a, b",c`. Line
// breaks are kept, so reader line numbers still match the input.
func trimAfterQuotes(text string, delimiter rune) string {
	if !strings.Contains(text, `"`) {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	state := fieldStart
	blanks := ""
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		chunk := text[i : i+size]
		i += size

		if state == quoteSeen {
			if r == '"' {
				out.WriteString(chunk)
				state = quotedField
				continue
			}
			state = afterQuote
		}
		switch state {
		case fieldStart:
			switch {
			case r == '"':
				state = quotedField
			case r == delimiter, r == '\n', unicode.IsSpace(r):
			default:
				state = unquotedField
			}
		case unquotedField:
			if r == delimiter || r == '\n' {
				state = fieldStart
			}
		case quotedField:
			if r == '"' {
				state = quoteSeen
			}
		case afterQuote:
			if (r == ' ' || r == '\t') && r != delimiter {
				blanks += chunk
				continue
			}
			switch r {
			case delimiter, '\n':
				state = fieldStart
			case '\r':
			default:
				out.WriteString(blanks)
				state = unquotedField
			}
			blanks = ""
		}
		out.WriteString(chunk)
	}
	return out.String()
}

// isBlank reports whether a record came from a whitespace-only line.
func isBlank(fields []string) bool {
	return len(fields) == 1 && strings.TrimSpace(fields[0]) == ""
}

// buildRecord turns trimmed row fields into a record or a skip entry.
func buildRecord(line int, fields []string) (Record, *Skipped) {
	if len(fields) < MinFields {
		return Record{}, &Skipped{
			Line:   line,
			Reason: SkipTooFewFields,
			Detail: fmt.Sprintf("got %d fields, need %d", len(fields), MinFields),
		}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	record := Record{
		ID:      line,
		Prompt:  fields[0],
		Options: make(map[Label]string, len(Labels)),
	}
	for i, label := range Labels {
		record.Options[label] = fields[i+1]
	}

	rawAnswer := strings.ToUpper(fields[5])
	answer, ok := ParseLabel(rawAnswer)
	if !ok || !record.HasOption(answer) {
		return Record{}, &Skipped{
			Line:   line,
			Reason: SkipInvalidAnswer,
			Detail: fmt.Sprintf("answer %q does not name a non-empty option", rawAnswer),
		}
	}
	record.Answer = answer

	if count := len(record.Choices()); count < 2 {
		return Record{}, &Skipped{
			Line:   line,
			Reason: SkipTooFewOptions,
			Detail: fmt.Sprintf("got %d options, need at least 2", count),
		}
	}
	return record, nil
}

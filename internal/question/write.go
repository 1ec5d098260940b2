package question

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Header is the column row written ahead of records.
var Header = []string{"question", "option_a", "option_b", "option_c", "option_d", "answer"}

// Write emits records as delimited text that Parse reads back unchanged, except
// that carriage returns ending a line inside a value are dropped: the reader
// turns CRLF inside quotes into LF, so values are written with LF line breaks.
func Write(w io.Writer, records []Record, delimiter rune) error {
	writer := csv.NewWriter(w)
	if delimiter != 0 {
		writer.Comma = delimiter
	}
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		row := []string{
			record.Prompt,
			record.Options[LabelA],
			record.Options[LabelB],
			record.Options[LabelC],
			record.Options[LabelD],
			string(record.Answer),
		}
		for i := range row {
			row[i] = NormalizeNewlines(row[i])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", record.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}
	return nil
}

// Quote renders a single field, adding quotes only when the value needs them.
// Line breaks are normalized as in Write.
func Quote(field string, delimiter rune) string {
	field = NormalizeNewlines(field)
	// A lone empty field is written as an empty line, which readers skip.
	if field == "" {
		return `""`
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if delimiter != 0 {
		writer.Comma = delimiter
	}
	_ = writer.Write([]string{field})
	writer.Flush()
	return strings.TrimSuffix(buf.String(), "\n")
}

// NormalizeNewlines drops every carriage return that directly precedes a line
// feed. The result is what Parse yields for the value inside a quoted field.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	pending := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			pending++
		case '\n':
			pending = 0
			b.WriteByte('\n')
		default:
			b.WriteString(strings.Repeat("\r", pending))
			pending = 0
			b.WriteByte(s[i])
		}
	}
	b.WriteString(strings.Repeat("\r", pending))
	return b.String()
}

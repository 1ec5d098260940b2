package question

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

// roundTripAlphabet covers delimiters, quotes, line breaks and multi-byte text.
var roundTripAlphabet = []string{"a", "b", ",", ";", `"`, "\n", "\r", " ", "\t", "é", `\.`}

// parsedPrompt quotes value as the prompt of a row and returns what Parse reads back.
func parsedPrompt(value string, delimiter rune) (string, bool) {
	sep := string(delimiter)
	row := Quote(value, delimiter) + sep + "x" + sep + "y" + sep + sep + sep + "A"
	set := Parse("header\n"+row, WithDelimiter(delimiter))
	if len(set.Records) != 1 {
		return "", false
	}
	return set.Records[0].Prompt, true
}

// expectedPrompt is value after line break normalization and field trimming.
func expectedPrompt(value string) string {
	return strings.TrimSpace(NormalizeNewlines(value))
}

// TestQuoteRoundTrip verifies quoted values parse back to their text, with
// CRLF read as LF and outer whitespace trimmed.
func TestQuoteRoundTrip(t *testing.T) {
	values := []string{
		"plain",
		"with, comma",
		`with "quotes"`,
		`"fully quoted"`,
		"multi\nline",
		"line one\r\nline two",
		"carriage\rreturn",
		"\r\r\n",
		`mix, "of", everything` + "\nand more",
		`\.`,
	}
	for _, value := range values {
		got, ok := parsedPrompt(value, ',')
		if !ok {
			t.Fatalf("%q: expected 1 record", value)
		}
		if want := expectedPrompt(value); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if got, _ := parsedPrompt("line one\r\nline two", ','); got != "line one\nline two" {
		t.Fatalf("expected CRLF to read back as LF, got %q", got)
	}
}

// TestQuoteRoundTripRandom checks the round trip over generated values for both delimiters.
func TestQuoteRoundTripRandom(t *testing.T) {
	cfg := &quick.Config{MaxCount: 2000, Rand: rand.New(rand.NewSource(42))}
	property := func(seed int64) bool {
		rng := rand.New(rand.NewSource(seed))
		var b strings.Builder
		for range rng.Intn(24) {
			b.WriteString(roundTripAlphabet[rng.Intn(len(roundTripAlphabet))])
		}
		value := b.String()
		for _, delimiter := range []rune{',', ';'} {
			got, ok := parsedPrompt(value, delimiter)
			if !ok || got != expectedPrompt(value) {
				t.Logf("delimiter %q value %q: got %q", delimiter, value, got)
				return false
			}
		}
		return true
	}
	if err := quick.Check(property, cfg); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
}

// FuzzQuoteRoundTrip checks the round trip for arbitrary valid UTF-8 values.
func FuzzQuoteRoundTrip(f *testing.F) {
	for _, seed := range []string{"", "plain", "a,b", `say "hi"`, "one\r\ntwo", "\r\r\n", " padded\t", "tab\tand;semi"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, value string) {
		if !utf8.ValidString(value) {
			t.Skip()
		}
		got, ok := parsedPrompt(value, ',')
		if !ok {
			t.Fatalf("%q: expected 1 record", value)
		}
		if want := expectedPrompt(value); got != want {
			t.Fatalf("%q: expected %q, got %q", value, want, got)
		}
	})
}

// TestNormalizeNewlines verifies only carriage returns before a line feed are dropped.
func TestNormalizeNewlines(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"a\rb":        "a\rb",
		"a\r\nb":     "a\nb",
		"a\r\r\nb":  "a\nb",
		"a\n\rb\r":  "a\n\rb\r",
		"\r\n\r\n": "\n\n",
	}
	for in, want := range cases {
		if got := NormalizeNewlines(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
		if again := NormalizeNewlines(want); again != want {
			t.Fatalf("%q: normalization is not stable, got %q", want, again)
		}
	}
}

// TestQuoteEmptyField verifies an empty value still occupies a field.
func TestQuoteEmptyField(t *testing.T) {
	if got := Quote("", ','); got != `""` {
		t.Fatalf("expected quoted empty string, got %q", got)
	}
}

// TestWriteRoundTrip verifies written records parse back with equal content.
func TestWriteRoundTrip(t *testing.T) {
	records := []Record{
		{ID: 1, Prompt: "Pick, one", Options: map[Label]string{LabelA: `"a"`, LabelB: "b"}, Answer: LabelB},
		{ID: 2, Prompt: "Four\r\nways", Options: map[Label]string{LabelA: "1", LabelB: "2", LabelC: "3", LabelD: "4"}, Answer: LabelD},
	}
	var buf bytes.Buffer
	if err := Write(&buf, records, ';'); err != nil {
		t.Fatalf("write: %v", err)
	}
	set := Parse(buf.String(), WithDelimiter(';'))
	if len(set.Records) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(set.Records))
	}
	for i, want := range records {
		got := set.Records[i]
		if got.Prompt != NormalizeNewlines(want.Prompt) || got.Answer != want.Answer {
			t.Fatalf("record %d: expected %+v, got %+v", i, want, got)
		}
		for _, label := range Labels {
			if got.Options[label] != want.Options[label] {
				t.Fatalf("record %d option %s: expected %q, got %q", i, label, want.Options[label], got.Options[label])
			}
		}
	}
}

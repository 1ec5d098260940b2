package cli

import (
	"strings"
	"testing"

	"quizdeck/internal/testutil"
)

const twoQuestions = `question,A,B,C,D,answer
What is 2+2?,3,4,5,,B
Capital of France?,Paris,Rome,,,A
`

// stubInput swaps the play input for the duration of a test.
func stubInput(t *testing.T, script string) {
	t.Helper()
	original := playInput
	playInput = strings.NewReader(script)
	t.Cleanup(func() { playInput = original })
}

// stubTerminal forces the TTY check for the duration of a test.
func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(any) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

// writeQuestions writes a question file and an empty config next to it.
func writeQuestions(t *testing.T, content string) (questionsPath, configPath string) {
	t.Helper()
	questionsPath = testutil.WriteFile(t, "questions.csv", content)
	configPath = testutil.WriteFile(t, ".quizdeck.yml", "version: 1\n")
	return questionsPath, configPath
}

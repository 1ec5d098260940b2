package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quizdeck/internal/question"
	"quizdeck/internal/quiz"
)

// Printer is a line-oriented presenter for non-interactive terminals and pipes.
type Printer struct {
	out io.Writer
}

// NewPrinter returns a presenter that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// RenderQuestions prints the full question list.
func (p *Printer) RenderQuestions(views []quiz.QuestionView) {
	for _, view := range views {
		fmt.Fprintf(p.out, "%d. %s\n", view.Number, view.Prompt)
		for _, option := range view.Options {
			marker := " "
			if option.Selected {
				marker = "*"
			}
			fmt.Fprintf(p.out, "  [%s] %s. %s\n", marker, option.Label, option.Text)
		}
		if view.Outcome != nil {
			if feedback := view.Outcome.Feedback(); feedback != "" {
				fmt.Fprintf(p.out, "  %s\n", feedback)
			}
		}
		fmt.Fprintln(p.out)
	}
}

// ShowGrading prints the score, the pass message and the review list.
func (p *Printer) ShowGrading(result quiz.GradingResult) {
	fmt.Fprintf(p.out, "Score: %d%% (%d/%d)\n", result.ScorePercent, result.Correct, result.Total)
	fmt.Fprintln(p.out, result.Message())
	if len(result.Missed) == 0 {
		return
	}
	fmt.Fprintln(p.out, "Review:")
	for _, miss := range result.Missed {
		fmt.Fprintf(p.out, "  %d. %s\n", miss.Index+1, miss.Prompt)
		fmt.Fprintf(p.out, "     Your answer:    %s\n", miss.UserAnswerText)
		fmt.Fprintf(p.out, "     Correct answer: %s\n", miss.CorrectAnswerText)
	}
}

// ShowLoadError prints a load failure.
func (p *Printer) ShowLoadError(message string) {
	fmt.Fprintln(p.out, message)
}

// Help lists the commands accepted by Run.
const Help = `Commands:
  <n> <label>   answer question n with label (e.g. "3 b")
  <n> -         clear the answer to question n
  submit        grade your answers
  retry         clear answers and try again in the same order
  shuffle       shuffle the questions and start over
  help          show this list
  quit          leave the quiz`

// Run reads commands from in until quit, EOF or ctx cancellation. Rejected
// commands are reported on out and do not stop the loop.
func Run(ctx context.Context, controller *quiz.Controller, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, Help)
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		quit, err := dispatch(controller, scanner.Text(), out)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// dispatch applies one command line.
func dispatch(controller *quiz.Controller, line string, out io.Writer) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}
	switch fields[0] {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(out, Help)
		return false, nil
	case "submit", "s":
		_, err := controller.OnSubmit()
		return false, err
	case "retry", "r":
		return false, controller.OnRetry()
	case "shuffle", "x":
		return false, controller.OnReshuffle()
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil || len(fields) != 2 {
		return false, fmt.Errorf("unrecognized command %q (type help)", strings.TrimSpace(line))
	}
	if fields[1] == "-" {
		return false, controller.OnClear(number - 1)
	}
	label, ok := question.ParseLabel(fields[1])
	if !ok {
		return false, fmt.Errorf("unknown option %q", fields[1])
	}
	return false, controller.OnSelect(number-1, label)
}

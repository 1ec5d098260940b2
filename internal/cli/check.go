package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"quizdeck/internal/config"
	"quizdeck/internal/question"
	"quizdeck/internal/source"
)

// runCheck builds the handler for the check command.
func runCheck(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		sourceFlag := fs.String("source", "", "Question file path or http(s) URL")
		normalize := fs.Bool("normalize", false, "Write the accepted rows to stdout as clean CSV")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		s, err := loadSettings(common, stderr, func(cfg *config.Config) {
			if *sourceFlag != "" {
				cfg.Source = *sourceFlag
			}
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		defer s.close()
		if s.cfg.Source == "" {
			fmt.Fprintln(stderr, "Missing --source (or source in "+config.ConfigFileName+")")
			return ExitUsage
		}

		loader := source.New(s.cfg.Source, source.Options{Delimiter: s.cfg.DelimiterRune(), Timeout: s.cfg.FetchTimeout})
		set, err := loader.Load(context.Background())
		if err != nil && !errors.Is(err, source.ErrEmptyQuestionSet) {
			fmt.Fprintf(stderr, "Check failed: %v\n", err)
			return ExitError
		}

		report := stdout
		if *normalize {
			report = stderr
		}
		printReport(report, loader.Location(), set)
		if len(set.Records) == 0 {
			fmt.Fprintln(stderr, "No usable questions found")
			return ExitError
		}
		if *normalize {
			if err := question.Write(stdout, set.Records, s.cfg.DelimiterRune()); err != nil {
				fmt.Fprintf(stderr, "Write failed: %v\n", err)
				return ExitError
			}
		}
		return ExitOK
	}
}

func printReport(w io.Writer, location string, set question.Set) {
	fmt.Fprintf(w, "%s: %d questions accepted, %d rows skipped (%d data rows, header has %d columns)\n",
		location, len(set.Records), set.Report.SkippedCount(), set.Report.DataRows, set.Report.HeaderColumns)
	for _, skipped := range set.Report.Skipped {
		fmt.Fprintf(w, "  line %d: %s: %s\n", skipped.Line, skipped.Reason, skipped.Detail)
	}
}

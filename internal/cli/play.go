package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"quizdeck/internal/config"
	"quizdeck/internal/quiz"
	"quizdeck/internal/source"
	"quizdeck/internal/ui/live"
	"quizdeck/internal/ui/plain"
)

// Test seams for the interactive loops.
var (
	playInput io.Reader = os.Stdin
	runLive             = live.Run
	runPlain            = plain.Run
)

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		sourceFlag := fs.String("source", "", "Question file path or http(s) URL")
		uiFlag := fs.String("ui", "", "UI mode: auto, live or plain")
		noColor := fs.Bool("no-color", false, "Disable colors in the live UI")
		seed := fs.Uint64("seed", 0, "Shuffle seed for a repeatable order (0 = random)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		s, err := loadSettings(common, stderr, func(cfg *config.Config) {
			if *sourceFlag != "" {
				cfg.Source = *sourceFlag
			}
			if *uiFlag != "" {
				cfg.UI = *uiFlag
			}
			if *noColor {
				cfg.NoColor = true
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

		decision, err := resolveUIMode(s.cfg.UI, playInput, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		loader := source.New(s.cfg.Source, source.Options{Delimiter: s.cfg.DelimiterRune(), Timeout: s.cfg.FetchTimeout})
		opts := quiz.ControllerOptions{Logger: s.log, Source: seedSource(*seed), PassThreshold: s.cfg.PassThreshold}

		if decision.useLive {
			if *common.logPath == "" {
				s.log.SetOutput(io.Discard)
			}
			screen := live.NewScreen()
			controller := quiz.NewController(screen, opts)
			loadErr := controller.Load(ctx, loader)
			if err := runLive(ctx, controller, screen, playInput, stdout, live.Options{NoColor: s.cfg.NoColor}); err != nil {
				fmt.Fprintf(stderr, "UI error: %v\n", err)
				return ExitError
			}
			if loadErr != nil {
				fmt.Fprintln(stderr, quiz.LoadErrorMessage(loadErr))
				return ExitError
			}
			return ExitOK
		}

		controller := quiz.NewController(plain.NewPrinter(stdout), opts)
		if err := controller.Load(ctx, loader); err != nil {
			return ExitError
		}
		if err := runPlain(ctx, controller, playInput, stdout); err != nil && ctx.Err() == nil {
			fmt.Fprintf(stderr, "Input error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

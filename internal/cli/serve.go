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
	"quizdeck/internal/web"
)

// serveQuiz is a test seam for running the web server.
var serveQuiz = web.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		common := addCommonFlags(fs)
		sourceFlag := fs.String("source", "", "Question file path or http(s) URL")
		addr := fs.String("addr", "", "Address to listen on (default "+config.DefaultAddr+")")
		seed := fs.Uint64("seed", 0, "Shuffle seed for a repeatable order (0 = random)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		s, err := loadSettings(common, stderr, func(cfg *config.Config) {
			if *sourceFlag != "" {
				cfg.Source = *sourceFlag
			}
			if *addr != "" {
				cfg.Serve.Addr = *addr
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

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		page := web.NewPage()
		controller := quiz.NewController(page, quiz.ControllerOptions{
			Logger:        s.log,
			Source:        seedSource(*seed),
			PassThreshold: s.cfg.PassThreshold,
		})
		loader := source.New(s.cfg.Source, source.Options{Delimiter: s.cfg.DelimiterRune(), Timeout: s.cfg.FetchTimeout})
		if err := controller.Load(ctx, loader); err != nil {
			fmt.Fprintf(stderr, "Warning: %s\n", quiz.LoadErrorMessage(err))
		}

		cfg := web.Config{
			Addr:        s.cfg.Serve.Addr,
			CORSOrigins: s.cfg.Serve.CORSOrigins,
			Logger:      s.log,
		}
		fmt.Fprintf(stdout, "Serving quiz at http://%s\n", cfg.Addr)
		if err := serveQuiz(ctx, controller, page, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"quizdeck/internal/config"
	"quizdeck/internal/quiz"
)

// commonFlags are accepted by every command that reads the config.
type commonFlags struct {
	configPath *string
	logLevel   *string
	logPath    *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", "", "Path to config file (default: search for "+config.ConfigFileName+")"),
		logLevel:   fs.String("log-level", "", "Log level: debug, info, warn, error"),
		logPath:    fs.String("log", "", "Write logs to this file instead of stderr"),
	}
}

// settings is the resolved configuration and logger for one command run.
type settings struct {
	cfg        config.Config
	configPath string
	log        *logrus.Logger
	closeLog   func() error
}

// loadSettings resolves configuration with precedence flags > environment >
// file > defaults, then builds the logger.
func loadSettings(flags commonFlags, stderr io.Writer, override func(*config.Config)) (*settings, error) {
	if wd, err := os.Getwd(); err == nil {
		if err := config.LoadDotEnv(wd); err != nil {
			return nil, err
		}
	}
	cfg, path, err := resolveConfig(*flags.configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if level := strings.TrimSpace(*flags.logLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if override != nil {
		override(&cfg)
	}
	config.Normalize(&cfg)
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	log, closeLog, err := newLogger(cfg.LogLevel, *flags.logPath, stderr)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"config": path, "source": cfg.Source}).Debug("settings resolved")
	return &settings{cfg: cfg, configPath: path, log: log, closeLog: closeLog}, nil
}

func (s *settings) close() {
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}

// newLogger builds a text logger at level writing to path, or to stderr when
// path is empty.
func newLogger(level, path string, stderr io.Writer) (*logrus.Logger, func() error, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := logrus.New()
	logger.SetLevel(parsed)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: path != ""})
	logger.SetOutput(stderr)
	if path == "" {
		return logger, func() error { return nil }, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(file)
	return logger, file.Close, nil
}

// seedSource returns a deterministic source for a non-zero seed.
func seedSource(seed uint64) quiz.Source {
	if seed == 0 {
		return nil
	}
	return quiz.NewSeededSource(seed)
}

func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

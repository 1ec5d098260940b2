package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures which terminal presenter play uses.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a reader or writer is attached to a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode picks the live UI only when both ends of the session are
// interactive; the live UI reads keys from stdin and redraws stdout.
func resolveUIMode(mode string, stdin, stdout any) (uiModeDecision, error) {
	interactive := isTerminal(stdin) && isTerminal(stdout)
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return uiModeDecision{useLive: interactive}, nil
	case "live":
		if interactive {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			warning: "Live UI requested but stdin or stdout is not a TTY; falling back to plain output.",
		}, nil
	case "plain":
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

func defaultIsTerminal(stream any) bool {
	switch typed := stream.(type) {
	case nil:
		return false
	case *os.File:
		return typed != nil && term.IsTerminal(int(typed.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(typed.Fd()))
	default:
		return false
	}
}

package cli

import (
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type style int

const (
	stylePlain style = iota
	styleResult
	styleFailure
	styleDim
	stylePrompt
)

var styleCodes = [...]string{
	stylePlain:   "",
	styleResult:  "\x1b[1;32m",
	styleFailure: "\x1b[31m",
	styleDim:     "\x1b[2m",
	stylePrompt:  "\x1b[36m",
}

// paint wraps text in the escape codes for s when enabled.
func paint(text string, s style, enabled bool) string {
	if !enabled || s == stylePlain || text == "" {
		return text
	}
	return styleCodes[s] + text + "\x1b[0m"
}

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorEnabled reports whether output to the command's stdout should be
// colored. --no-color and a set NO_COLOR variable both turn it off.
func colorEnabled(cmd *cobra.Command) bool {
	if off, _ := cmd.Flags().GetBool("no-color"); off {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(cmd.OutOrStdout())
}

// newLogger creates the command's logger, writing text records to its stderr.
// The level is warn, or debug with --verbose, or error with --quiet.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	if q, _ := cmd.Flags().GetBool("quiet"); q {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

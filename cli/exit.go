package cli

import "fmt"

// Exit codes carried by ExitError.
const (
	exitGeneric = 1
	exitParse   = 2
	exitEval    = 3
	exitUsage   = 4
)

// ExitError ends a command with a process exit code. main passes Code to
// os.Exit; Message is the bare description, and Error prefixes it with the
// kind of failure the code stands for.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	switch e.Code {
	case exitParse:
		return "parse error: " + e.Message
	case exitEval:
		return "evaluation failed: " + e.Message
	case exitUsage:
		return "usage: " + e.Message
	default:
		return e.Message
	}
}

func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

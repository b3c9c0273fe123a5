package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/zetacalc"
)

// maxNesting bounds bracket nesting in command input.
const maxNesting = 256

// source is a named stream of expressions.
type source struct {
	name string
	r    io.RuneScanner
}

// eachExpr parses expressions one at a time from the --in file, or stdin when
// --in is "-" or there are no arguments, and then from each argument. A
// newline or semicolon ends an expression. fn is called for each expression
// as soon as it is parsed; the first parse error stops everything.
func eachExpr(cmd *cobra.Command, args []string, stdin io.RuneScanner, log *slog.Logger, fn func(*zetacalc.Expr) error) error {
	var srcs []source
	in, _ := cmd.Flags().GetString("in")
	switch {
	case in != "" && in != "-":
		f, err := os.Open(in)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return exitError(exitUsage, "input file not found: %s", in)
			}
			return exitError(exitUsage, "opening input: %v", err)
		}
		defer f.Close()
		srcs = append(srcs, source{name: in, r: bufio.NewReader(f)})
	case in == "-", len(args) == 0:
		srcs = append(srcs, source{name: "stdin", r: stdin})
	}
	for i, arg := range args {
		srcs = append(srcs, source{name: fmt.Sprintf("argument %d", i+1), r: strings.NewReader(arg)})
	}

	for _, src := range srcs {
		for k := 1; ; k++ {
			more, err := skipBlank(src.r)
			if err != nil {
				return exitError(exitGeneric, "reading %s: %v", src.name, err)
			}
			if !more {
				break
			}
			e, err := zetacalc.Parse(src.r, zetacalc.StopOn('\n', ';'), zetacalc.MaxDepth(maxNesting))
			if err != nil {
				if errors.Is(err, zetacalc.ErrParse) {
					return exitError(exitParse, "%s, expression %d: %v", src.name, k, err)
				}
				return exitError(exitGeneric, "reading %s: %v", src.name, err)
			}
			log.Debug("parsed expression", "source", src.name, "expr", e.String(), "vars", e.Vars())
			if err := fn(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipBlank consumes whitespace and reports whether anything else follows.
func skipBlank(r io.RuneScanner) (bool, error) {
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		if !unicode.IsSpace(c) {
			return true, r.UnreadRune()
		}
	}
}

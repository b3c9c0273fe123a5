package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/zetacalc"
)

// NewParseCmd creates the "parse" subcommand.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [expression...]",
		Short: "Show the structure of expressions without evaluating them",
		Long: `Parse each expression and print its tree, its prefix notation, and the
variables it uses. Input is read as for eval.`,
		RunE: runParse,
	}

	cmd.Flags().String("in", "", "Read expressions from a file, or - for stdin")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	color := colorEnabled(cmd)
	out := cmd.OutOrStdout()
	stdin := bufio.NewReader(cmd.InOrStdin())

	first := true
	return eachExpr(cmd, args, stdin, log, func(e *zetacalc.Expr) error {
		if !first {
			fmt.Fprintln(out)
		}
		first = false
		for _, line := range e.Tree() {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out, paint("prefix: ", styleDim, color)+e.Prefix())
		vars := "none"
		if v := e.Vars(); len(v) > 0 {
			vars = strings.Join(v, ", ")
		}
		fmt.Fprintln(out, paint("vars: ", styleDim, color)+vars)
		return nil
	})
}

package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/zetacalc"
)

// NewEvalCmd creates the "eval" subcommand.
func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expression...]",
		Short: "Evaluate complex expressions",
		Long: `Evaluate each expression and print its value.

Expressions come from the arguments, or from the --in file, or from stdin when
there are no arguments. Newlines and semicolons separate expressions. Use --
before an expression that starts with a minus sign.`,
		Example: `  zetacalc eval '(2+3i)*z + raiz(16, 2)' --given z=1+i
  zetacalc eval --vars vars.yaml --tree 'conj(w)/z'
  echo '1/(1+i); i^2' | zetacalc eval`,
		RunE: runEval,
	}

	cmd.Flags().StringArray("given", nil, "Set a variable, as name=value (repeatable); the value may be an expression")
	cmd.Flags().String("vars", "", "YAML file mapping variable names to values")
	cmd.Flags().String("in", "", "Read expressions from a file, or - for stdin")
	cmd.Flags().Bool("tree", false, "Print the parse tree of each expression")
	cmd.Flags().Bool("prefix", false, "Print each expression in prefix notation")
	cmd.Flags().Bool("echo", false, "Print each parsed expression before its value")
	cmd.Flags().Bool("prompt", false, "Ask for unbound variables on stdin (default true when stdin is a terminal and expressions are arguments)")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	color := colorEnabled(cmd)
	out := cmd.OutOrStdout()
	stdin := bufio.NewReader(cmd.InOrStdin())

	vars, err := bindings(cmd, log)
	if err != nil {
		return err
	}
	tree, _ := cmd.Flags().GetBool("tree")
	prefix, _ := cmd.Flags().GetBool("prefix")
	echo, _ := cmd.Flags().GetBool("echo")
	var ask *prompter
	if promptEnabled(cmd, args) {
		ask = &prompter{in: stdin, out: cmd.ErrOrStderr(), color: color, log: log}
	}

	var n, failed int
	err = eachExpr(cmd, args, stdin, log, func(e *zetacalc.Expr) error {
		n++
		if tree {
			for _, line := range e.Tree() {
				fmt.Fprintln(out, paint(line, styleDim, color))
			}
		}
		if prefix {
			fmt.Fprintln(out, paint(e.Prefix(), styleDim, color))
		}
		if echo {
			fmt.Fprint(out, paint(e.String()+" : ", styleDim, color))
		}
		if ask != nil {
			if err := ask.fill(e, vars); err != nil {
				log.Warn("prompt ended", "err", err)
			}
		}
		r, err := e.Eval(vars)
		if err != nil {
			failed++
			fmt.Fprintln(out, paint("error: "+err.Error(), styleFailure, color))
			return nil
		}
		fmt.Fprintln(out, paint(r.String(), styleResult, color))
		return nil
	})
	if err != nil {
		return err
	}
	if failed > 0 {
		return exitError(exitEval, "%d of %d expressions failed to evaluate", failed, n)
	}
	return nil
}

// promptEnabled reports whether eval should ask for unbound variables. Unless
// --prompt is given explicitly, it does so only when stdin is a terminal and
// is not also the source of expressions.
func promptEnabled(cmd *cobra.Command, args []string) bool {
	if cmd.Flags().Changed("prompt") {
		p, _ := cmd.Flags().GetBool("prompt")
		return p
	}
	in, _ := cmd.Flags().GetString("in")
	if in == "-" || (in == "" && len(args) == 0) {
		return false
	}
	return isTerminal(cmd.InOrStdin())
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/zetacalc"
)

// bindings collects the variable values given by --vars and then --given, so
// a --given definition overrides the file and may refer to its variables.
func bindings(cmd *cobra.Command, log *slog.Logger) (map[string]zetacalc.Complex, error) {
	vars := make(map[string]zetacalc.Complex)
	if path, _ := cmd.Flags().GetString("vars"); path != "" {
		if err := loadVars(path, vars, log); err != nil {
			return nil, err
		}
	}
	given, _ := cmd.Flags().GetStringArray("given")
	for _, g := range given {
		name, value, ok := strings.Cut(g, "=")
		name = strings.TrimSpace(name)
		if !ok || !validName(name) {
			return nil, exitError(exitUsage, `variable definitions must be "name=value", not %q`, g)
		}
		z, err := zetacalc.EvalString(value, vars)
		if err != nil {
			return nil, exitError(exitUsage, "setting %s: %v", name, err)
		}
		vars[name] = z
		log.Debug("bound variable", "name", name, "value", z.String(), "source", "--given")
	}
	return vars, nil
}

// loadVars reads a YAML mapping of variable names to values into vars. Each
// value is either a complex literal like "3+4i" or a sequence [re, im].
func loadVars(path string, vars map[string]zetacalc.Complex, log *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitError(exitUsage, "variable file not found: %s", path)
		}
		return exitError(exitUsage, "reading variable file: %v", err)
	}
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return exitError(exitUsage, "parsing variable file %s: %v", path, err)
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n := doc[name]
		if !validName(name) {
			return exitError(exitUsage, "%s: line %d: %q is not a variable name", path, n.Line, name)
		}
		z, err := nodeValue(&n)
		if err != nil {
			return exitError(exitUsage, "%s: variable %s: %v", path, name, err)
		}
		vars[name] = z
		log.Debug("bound variable", "name", name, "value", z.String(), "source", path)
	}
	return nil
}

// nodeValue decodes a complex number from a YAML scalar or pair.
func nodeValue(n *yaml.Node) (zetacalc.Complex, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return zetacalc.ParseComplex(n.Value)
	case yaml.SequenceNode:
		if len(n.Content) != 2 {
			return zetacalc.Complex{}, fmt.Errorf("line %d: want [re, im], got %d elements", n.Line, len(n.Content))
		}
		var parts [2]float64
		for i, c := range n.Content {
			if err := c.Decode(&parts[i]); err != nil {
				return zetacalc.Complex{}, fmt.Errorf("line %d: %w", c.Line, err)
			}
		}
		return zetacalc.New(parts[0], parts[1]), nil
	default:
		return zetacalc.Complex{}, fmt.Errorf("line %d: want a complex number or [re, im]", n.Line)
	}
}

// validName reports whether name can be used as a variable in an expression.
func validName(name string) bool {
	e, err := zetacalc.ParseString(name)
	return err == nil && e.String() == "("+name+")"
}

// prompter asks for variable values interactively.
type prompter struct {
	in    *bufio.Reader
	out   io.Writer
	color bool
	log   *slog.Logger
}

func (p *prompter) logger() *slog.Logger {
	if p.log != nil {
		return p.log
	}
	return slog.Default()
}

// fill asks for each variable of e that has no value in vars and records the
// answers there.
func (p *prompter) fill(e *zetacalc.Expr, vars map[string]zetacalc.Complex) error {
	for _, name := range e.Vars() {
		if _, ok := vars[name]; ok {
			continue
		}
		z, err := p.ask(name)
		if err != nil {
			return err
		}
		vars[name] = z
		p.logger().Debug("bound variable", "name", name, "value", z.String(), "source", "prompt")
	}
	return nil
}

// ask reads the real and imaginary parts of a variable on separate lines.
func (p *prompter) ask(name string) (zetacalc.Complex, error) {
	re, err := p.part(name, "real")
	if err != nil {
		return zetacalc.Complex{}, err
	}
	im, err := p.part(name, "imaginary")
	if err != nil {
		return zetacalc.Complex{}, err
	}
	return zetacalc.New(re, im), nil
}

// part asks for one component until it gets a finite number. A comma is
// accepted as the decimal separator.
func (p *prompter) part(name, which string) (float64, error) {
	for {
		fmt.Fprint(p.out, paint(name+" ("+which+" part): ", stylePrompt, p.color))
		line, err := p.in.ReadString('\n')
		if text := strings.TrimSpace(line); text != "" {
			x, perr := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
			if perr == nil && !math.IsInf(x, 0) && !math.IsNaN(x) {
				return x, nil
			}
			fmt.Fprintln(p.out, paint("invalid number "+strconv.Quote(text), styleFailure, p.color))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("no value for %s: %w", name, io.ErrUnexpectedEOF)
			}
			return 0, err
		}
	}
}

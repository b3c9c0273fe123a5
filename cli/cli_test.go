package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRoot creates a fresh cobra root command wired to all subcommands.
// Each test gets an isolated command tree to avoid shared state.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "zetacalc",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.PersistentFlags().Bool("no-color", false, "")
	root.AddCommand(NewEvalCmd())
	root.AddCommand(NewParseCmd())
	return root
}

// executeCommand runs a cobra command with the given args and captures stdout/stderr.
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	return executeCommandIn(root, "", args...)
}

// executeCommandIn is executeCommand with the given text on stdin.
func executeCommandIn(root *cobra.Command, stdin string, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// writeTestFile creates a temporary file with the given content and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// wantExit checks that err is an ExitError with the given code.
func wantExit(t *testing.T, err error, code int) *ExitError {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError with code %d, got: %v", code, err)
	}
	if exitErr.Code != code {
		t.Errorf("expected exit code %d, got %d (%s)", code, exitErr.Code, exitErr.Message)
	}
	return exitErr
}

const testVarsYAML = `# values for z and w
z: 1+1i
w: [0, 2]
`

// --- Eval command tests ---

func TestEval_Outputs(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"sum", []string{"eval", "2+3"}, "5.00\n"},
		{"given", []string{"eval", "--given", "z=1+i", "(2+3i)*z+raiz(16,2)"}, "3.00 + 5.00i\n"},
		{"given-expr", []string{"eval", "--given", "a=2", "--given", "b=a^3", "b-a"}, "6.00\n"},
		{"separators", []string{"eval", "1;2", "3"}, "1.00\n2.00\n3.00\n"},
		{"leading-minus", []string{"eval", "--", "-2^2"}, "4.00\n"},
		{"conj", []string{"eval", "conj(3-4i)"}, "3.00 + 4.00i\n"},
		{"echo", []string{"eval", "--echo", "--given", "x=1", "x+1"}, "((x) + (1.00)) : 2.00\n"},
		{"tree", []string{"eval", "--tree", "--prefix", "2+3"}, "ADD\n├── 2.00\n└── 3.00\n(+ 2.00 3.00)\n5.00\n"},
		{"no-color", []string{"--no-color", "eval", "i"}, "1.00i\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stdout, _, err := executeCommand(newTestRoot(), c.args...)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if stdout != c.want {
				t.Errorf("wrong output:\nwant %q\ngot  %q", c.want, stdout)
			}
		})
	}
}

func TestEval_Stdin(t *testing.T) {
	stdout, _, err := executeCommandIn(newTestRoot(), "1+2\n\n i^2 ; 1/(1+i)\n", "eval")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if want := "3.00\n-1.00\n0.50 - 0.50i\n"; stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}
}

func TestEval_InFile(t *testing.T) {
	path := writeTestFile(t, "exprs.txt", "1+1\n2*3; 4\n\n")
	stdout, _, err := executeCommand(newTestRoot(), "eval", "--in", path, "5")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if want := "2.00\n6.00\n4.00\n5.00\n"; stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}
}

func TestEval_InFileNotFound(t *testing.T) {
	_, _, err := executeCommand(newTestRoot(), "eval", "--in", filepath.Join(t.TempDir(), "nope.txt"))
	wantExit(t, err, exitUsage)
}

func TestEval_ParseError(t *testing.T) {
	stdout, _, err := executeCommand(newTestRoot(), "eval", "1", "2 +")
	e := wantExit(t, err, exitParse)
	if !strings.Contains(e.Message, "argument 2, expression 1") {
		t.Errorf("message doesn't locate the error: %q", e.Message)
	}
	if stdout != "1.00\n" {
		t.Errorf("wrong output before the parse error: %q", stdout)
	}
}

func TestEval_EvalErrors(t *testing.T) {
	cases := []struct {
		name string
		expr string
		want string
	}{
		{"div-zero", "1/0", "division by zero"},
		{"undefined", "x+1", `undefined variable: "x"`},
		{"root-index", "raiz(4, 0)", "root index"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stdout, _, err := executeCommand(newTestRoot(), "eval", c.expr)
			wantExit(t, err, exitEval)
			if !strings.HasPrefix(stdout, "error: ") || !strings.Contains(stdout, c.want) {
				t.Errorf("expected error mentioning %q, got: %q", c.want, stdout)
			}
		})
	}
}

func TestEval_ContinuesAfterEvalError(t *testing.T) {
	stdout, _, err := executeCommand(newTestRoot(), "eval", "1", "x", "2")
	e := wantExit(t, err, exitEval)
	if e.Message != "1 of 3 expressions failed to evaluate" {
		t.Errorf("wrong message: %q", e.Message)
	}
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != 3 || lines[0] != "1.00" || lines[2] != "2.00" {
		t.Errorf("wrong output: %q", stdout)
	}
}

func TestEval_BadGiven(t *testing.T) {
	cases := []struct {
		name  string
		given string
	}{
		{"no-equals", "x"},
		{"empty-name", "=1"},
		{"reserved", "i=2"},
		{"function", "raiz=2"},
		{"not-a-name", "2x=1"},
		{"bad-value", "x=1+"},
		{"unbound", "y=x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := executeCommand(newTestRoot(), "eval", "--given", c.given, "1")
			wantExit(t, err, exitUsage)
		})
	}
}

func TestEval_VarsFile(t *testing.T) {
	path := writeTestFile(t, "vars.yaml", testVarsYAML)
	stdout, _, err := executeCommand(newTestRoot(), "eval", "--vars", path, "z*w")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if want := "-2.00 + 2.00i\n"; stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}

	// --given sees and overrides the file.
	stdout, _, err = executeCommand(newTestRoot(), "eval", "--vars", path, "--given", "z=2*w", "z*w")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if want := "-8.00\n"; stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}
}

func TestEval_BadVarsFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad-literal", "z: abc\n"},
		{"split-digits", "z: 3 4i\n"},
		{"reserved", "raiz: 1\n"},
		{"triple", "z: [1, 2, 3]\n"},
		{"not-number", "z: [1, x]\n"},
		{"mapping", "z:\n  re: 1\n"},
		{"not-yaml", "z: [1, 2\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeTestFile(t, "vars.yaml", c.content)
			_, _, err := executeCommand(newTestRoot(), "eval", "--vars", path, "1")
			wantExit(t, err, exitUsage)
		})
	}
	_, _, err := executeCommand(newTestRoot(), "eval", "--vars", filepath.Join(t.TempDir(), "missing.yaml"), "1")
	wantExit(t, err, exitUsage)
}

func TestEval_Prompt(t *testing.T) {
	stdout, stderr, err := executeCommandIn(newTestRoot(), "abc\n1\n1,5\n", "eval", "--prompt", "z*2")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if want := "2.00 + 3.00i\n"; stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}
	for _, s := range []string{"z (real part): ", "z (imaginary part): ", `invalid number "abc"`} {
		if !strings.Contains(stderr, s) {
			t.Errorf("expected %q in stderr, got: %q", s, stderr)
		}
	}
}

func TestEval_PromptAsksOnce(t *testing.T) {
	stdout, _, err := executeCommandIn(newTestRoot(), "2\n0\n", "eval", "--prompt", "z", "z+1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if want := "2.00\n3.00\n"; stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}
}

func TestEval_PromptEOF(t *testing.T) {
	stdout, stderr, err := executeCommandIn(newTestRoot(), "", "eval", "--prompt", "z")
	wantExit(t, err, exitEval)
	if !strings.Contains(stdout, `undefined variable: "z"`) {
		t.Errorf("expected undefined variable, got: %q", stdout)
	}
	if !strings.Contains(stderr, "prompt ended") {
		t.Errorf("expected a warning in stderr, got: %q", stderr)
	}

	_, stderr, _ = executeCommandIn(newTestRoot(), "", "--quiet", "eval", "--prompt", "z")
	if strings.Contains(stderr, "prompt ended") {
		t.Errorf("--quiet still logged a warning: %q", stderr)
	}
}

func TestEval_NoPromptByDefault(t *testing.T) {
	// The test stdin is not a terminal, so nothing is read from it.
	stdout, _, err := executeCommandIn(newTestRoot(), "1\n1\n", "eval", "z")
	wantExit(t, err, exitEval)
	if !strings.Contains(stdout, "undefined variable") {
		t.Errorf("expected undefined variable, got: %q", stdout)
	}
}

func TestEval_Verbose(t *testing.T) {
	_, stderr, err := executeCommand(newTestRoot(), "--verbose", "eval", "--given", "x=2", "x")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	for _, s := range []string{"level=DEBUG", "parsed expression", "bound variable"} {
		if !strings.Contains(stderr, s) {
			t.Errorf("expected %q in stderr, got: %q", s, stderr)
		}
	}

	_, stderr, _ = executeCommand(newTestRoot(), "eval", "--given", "x=2", "x")
	if stderr != "" {
		t.Errorf("expected no logs by default, got: %q", stderr)
	}
}

// --- Parse command tests ---

func TestParse_Output(t *testing.T) {
	stdout, _, err := executeCommand(newTestRoot(), "parse", "2+3", "conj(b)*a")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	want := "ADD\n" +
		"├── 2.00\n" +
		"└── 3.00\n" +
		"prefix: (+ 2.00 3.00)\n" +
		"vars: none\n" +
		"\n" +
		"MUL\n" +
		"├── CONJ\n" +
		"│   └── Var(b)\n" +
		"└── Var(a)\n" +
		"prefix: (* (conj b) a)\n" +
		"vars: a, b\n"
	if stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}
}

func TestParse_Stdin(t *testing.T) {
	stdout, _, err := executeCommandIn(newTestRoot(), "raiz(x, 3)\n", "parse")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if want := "ROOT(3)\n└── Var(x)\nprefix: (root 3 x)\nvars: x\n"; stdout != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, stdout)
	}
}

func TestParse_Error(t *testing.T) {
	deep := strings.Repeat("(", maxNesting+1) + "1" + strings.Repeat(")", maxNesting+1)
	cases := []string{"2 +", "(1", "raiz(x, y)", "1,2", deep}
	for _, src := range cases {
		t.Run(src[:min(len(src), 10)], func(t *testing.T) {
			_, _, err := executeCommand(newTestRoot(), "parse", src)
			wantExit(t, err, exitParse)
		})
	}
}

// --- Helpers ---

func TestExitErrorMessage(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{exitGeneric, "boom 7"},
		{exitParse, "parse error: boom 7"},
		{exitEval, "evaluation failed: boom 7"},
		{exitUsage, "usage: boom 7"},
	}
	for _, c := range cases {
		err := exitError(c.code, "boom %d", 7)
		if err.Message != "boom 7" {
			t.Errorf("code %d: wrong message %q", c.code, err.Message)
		}
		if got := err.Error(); got != c.want {
			t.Errorf("code %d: want %q, got %q", c.code, c.want, got)
		}
	}
	_, _, err := executeCommand(newTestRoot(), "eval", "1 +")
	if got := wantExit(t, err, exitParse).Error(); !strings.HasPrefix(got, "parse error: argument 1, expression 1: ") {
		t.Errorf("wrong error text: %q", got)
	}
}

func TestPaint(t *testing.T) {
	if got := paint("x", styleResult, false); got != "x" {
		t.Errorf("disabled paint changed text: %q", got)
	}
	if got := paint("x", stylePlain, true); got != "x" {
		t.Errorf("plain paint changed text: %q", got)
	}
	if got := paint("", styleFailure, true); got != "" {
		t.Errorf("empty paint gave %q", got)
	}
	got := paint("x", styleFailure, true)
	if !strings.HasPrefix(got, "\x1b[") || !strings.Contains(got, "x") || !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("wrong escapes: %q", got)
	}
}

func TestValidName(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
	}{
		{"x", true},
		{"zeta_1", true},
		{"_", true},
		{"in", true},
		{"X", true},
		{"i", false},
		{"raiz", false},
		{"Conj", false},
		{"", false},
		{"1x", false},
		{"x y", false},
		{"x+y", false},
		{"(x)", false},
	}
	for _, c := range cases {
		if got := validName(c.name); got != c.ok {
			t.Errorf("validName(%q) = %t", c.name, got)
		}
	}
}

func TestColorDisabledForBuffers(t *testing.T) {
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", "1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if strings.Contains(stdout, "\x1b[") {
		t.Errorf("colored output to a buffer: %q", stdout)
	}
}

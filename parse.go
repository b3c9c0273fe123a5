package zetacalc

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Expression = Term { ('+' | '-') Term }
// Term = Factor { ('*' | '/') Factor }
// Factor = Primary [ '^' Factor ]
// Primary = [ '+' | '-' ] ( '(' Expression ')' | Call | 'i' | name | num [ 'i' ] )
// Call = 'raiz' '(' Expression ',' Expression ')' | 'conj' '(' Expression ')'
//
// Function names match regardless of case. 'i' alone is the imaginary unit;
// any other name is a variable. A leading '-' on a Primary multiplies it by
// -1, so "-2^2" is "((-1)*2)^2".

// Expr is a parsed expression that can be evaluated with variable bindings.
// An Expr is immutable and safe for concurrent use.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse parses an expression. The given options are applied in order. Unless
// StopOn says otherwise, Parse consumes src to EOF, and anything left over
// after a complete expression is an error.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	p.names = make(map[string]bool)
	s := scan(src, p.stopws)
	n, err := parseterm(s, &p, exprprec)
	if s.err != nil {
		return nil, s.err
	}
	if err != nil {
		return nil, err
	}
	switch r := s.peek(true); {
	case r == eof:
	case r == ',' && p.stopcomma, r == ';' && p.stopsemi:
		s.read()
	default:
		return nil, itShouldNotHaveEndedThisWay(r, s.pos(), 0)
	}
	if s.err != nil {
		return nil, s.err
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a primary followed by any binary operations that bind
// more tightly than until. The first rune it cannot use is left unread for
// the caller to judge.
func parseterm(s *scanner, p *parsectx, until operator) (*node, error) {
	n, err := parseprimary(s, p)
	if err != nil {
		return nil, err
	}
	for {
		op := binop(s.peek(true))
		if op.op == nodeNone || !op.moreBinding(until) {
			return n, nil
		}
		s.read()
		rhs, err := parseterm(s, p, op)
		if err != nil {
			return nil, err
		}
		n = &node{kind: op.op, left: n, right: rhs}
	}
}

// parseprimary parses an operand with an optional sign.
func parseprimary(s *scanner, p *parsectx) (*node, error) {
	neg := false
	switch s.peek(false) {
	case '-':
		s.read()
		neg = true
	case '+':
		s.read()
	}
	n, err := parseoperand(s, p)
	if err != nil {
		return nil, err
	}
	if neg {
		n = &node{kind: nodeMul, left: &node{kind: nodeConst, val: negOne}, right: n}
	}
	return n, nil
}

// parseoperand parses a parenthesized expression, a function call, a name, or
// a number.
func parseoperand(s *scanner, p *parsectx) (*node, error) {
	r := s.peek(false)
	col := s.pos()
	switch {
	case r == '(':
		s.read()
		if err := nest(s, p, col); err != nil {
			return nil, err
		}
		n, err := parseterm(s, p, exprprec)
		if err != nil {
			return nil, err
		}
		if r := s.peek(true); r != ')' {
			return nil, itShouldNotHaveEndedThisWay(r, s.pos(), col)
		}
		s.read()
		s.depth--
		return n, nil
	case r == '_', unicode.IsLetter(r):
		name := s.scanIdent()
		switch {
		case name == "i":
			return &node{kind: nodeConst, val: unitI}, nil
		case strings.EqualFold(name, "raiz"):
			return parseroot(s, p, name, col)
		case strings.EqualFold(name, "conj"):
			args, _, err := parsecall(s, p, name, col, 1)
			if err != nil {
				return nil, err
			}
			return &node{kind: nodeConj, left: args[0]}, nil
		}
		p.names[name] = true
		return &node{kind: nodeVar, name: name}, nil
	case '0' <= r && r <= '9', r == '.':
		text, err := s.scanNum()
		if err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			// scanNum only allows valid syntax, so this is overflow.
			return nil, &LexError{Text: text, Kind: "number", Col: col}
		}
		if s.next('i') {
			return &node{kind: nodeConst, val: Complex{Im: x}}, nil
		}
		return &node{kind: nodeConst, val: Complex{Re: x}}, nil
	case r == eof:
		return nil, &EmptyExpressionError{Col: col}
	case r == ')', r == ',':
		return nil, &EmptyExpressionError{Col: col, End: string(r)}
	default:
		return nil, &UnexpectedCharError{Col: col, Char: r, Want: "operand"}
	}
}

// parsecall parses the parenthesized argument list of a function taking want
// arguments. col is the position of the function name. The second result
// holds the position of each argument.
func parsecall(s *scanner, p *parsectx, name string, col, want int) ([]*node, []int, error) {
	if !s.eat('(', false) {
		return nil, nil, &CallError{Col: col, Func: name, Len: -1, Want: want}
	}
	open := s.col
	if err := nest(s, p, open); err != nil {
		return nil, nil, err
	}
	var (
		args []*node
		cols []int
	)
	for {
		s.peek(false)
		cols = append(cols, s.pos())
		n, err := parseterm(s, p, exprprec)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, n)
		switch r := s.peek(true); r {
		case ',':
			s.read()
		case ')':
			s.read()
			s.depth--
			if len(args) != want {
				return nil, nil, &CallError{Col: col, Func: name, Len: len(args), Want: want}
			}
			return args, cols, nil
		case eof:
			return nil, nil, itShouldNotHaveEndedThisWay(r, s.pos(), open)
		default:
			return nil, nil, &UnexpectedCharError{Col: s.pos(), Char: r, Want: "',' or ')'"}
		}
	}
}

// parseroot parses the arguments of raiz. The degree may be any expression
// that reduces to a real integer without variables.
func parseroot(s *scanner, p *parsectx, name string, col int) (*node, error) {
	args, cols, err := parsecall(s, p, name, col, 2)
	if err != nil {
		return nil, err
	}
	deg, arg := args[1], cols[1]
	if deg.hasvars() {
		return nil, &ArgumentError{Col: arg, Func: name, Reason: "degree must be a real constant"}
	}
	v, err := deg.eval(nil)
	if err != nil {
		return nil, &ArgumentError{Col: arg, Func: name, Reason: "degree must be a real constant", Err: err}
	}
	if !v.IsReal() {
		return nil, &ArgumentError{Col: arg, Func: name, Reason: "degree must be a real constant, not " + v.String()}
	}
	d := math.Round(v.Re)
	if math.Abs(v.Re-d) >= Epsilon || math.Abs(d) > math.MaxInt32 {
		return nil, &ArgumentError{Col: arg, Func: name, Reason: "degree must be an integer, not " + v.String()}
	}
	return &node{kind: nodeRoot, left: args[0], deg: int(d)}, nil
}

// nest records an opening bracket at col.
func nest(s *scanner, p *parsectx, col int) error {
	s.depth++
	if p.maxdepth > 0 && s.depth > p.maxdepth {
		return &NestingError{Col: col, Max: p.maxdepth}
	}
	return nil
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// rune at the end of a subexpression. col is the position of the rune. open
// is the position of the bracket the subexpression should close, or 0 if
// none.
func itShouldNotHaveEndedThisWay(r rune, col, open int) error {
	switch {
	case r == eof:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: col, Left: "("}
	case r == ')':
		return &BracketError{Col: col, Right: ")"}
	case r == ',':
		// Separator outside a function call.
		return &SeparatorError{Col: col, Sep: ","}
	case open > 0:
		return &UnexpectedCharError{Col: col, Char: r, Want: "operator or ')'"}
	default:
		return &UnexpectedCharError{Col: col, Char: r, Want: "operator"}
	}
}

// Vars returns the sorted names of the variables the expression uses.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates an infix representation of the parsed expression, with
// parentheses grouping each term. Constants are written as by Complex.String,
// so the result parses back to an equivalent expression only to two decimal
// places.
func (e *Expr) String() string {
	return e.n.String()
}

// Equal returns whether two expressions have the same structure, comparing
// constants with Complex.Equal.
func (e *Expr) Equal(f *Expr) bool {
	return e.n.equal(f.n)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a rune. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(r rune) operator {
	switch r {
	case '+':
		return operator{1, false, nodeAdd}
	case '-':
		return operator{1, false, nodeSub}
	case '*':
		return operator{5, false, nodeMul}
	case '/':
		return operator{5, false, nodeDiv}
	case '^':
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}

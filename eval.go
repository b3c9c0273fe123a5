package zetacalc

import (
	"errors"
	"math"
	"strconv"
)

// ErrUndefinedVariable matches NameErrors under errors.Is.
var ErrUndefinedVariable = errors.New("undefined variable")

// Eval evaluates the expression with the given variable bindings. vars is
// only read. If a variable is missing, the error is a *NameError; arithmetic
// failures are returned as the *DomainError from the failing operation.
//
// The exponent of ^ is truncated to the integer part of its real component;
// its imaginary part is ignored.
func (e *Expr) Eval(vars map[string]Complex) (Complex, error) {
	return e.n.eval(vars)
}

// eval computes the node's value after its children's.
func (n *node) eval(vars map[string]Complex) (Complex, error) {
	switch n.kind {
	case nodeConst:
		return n.val, nil
	case nodeVar:
		v, ok := vars[n.name]
		if !ok {
			return Complex{}, &NameError{Name: n.name}
		}
		return v, nil
	case nodeConj:
		x, err := n.left.eval(vars)
		if err != nil {
			return Complex{}, err
		}
		return x.Conj(), nil
	case nodeRoot:
		x, err := n.left.eval(vars)
		if err != nil {
			return Complex{}, err
		}
		return x.Root(n.deg)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		// handled below
	default:
		panic("zetacalc: invalid AST node " + n.kind.String())
	}
	l, err := n.left.eval(vars)
	if err != nil {
		return Complex{}, err
	}
	r, err := n.right.eval(vars)
	if err != nil {
		return Complex{}, err
	}
	switch n.kind {
	case nodeAdd:
		return l.Add(r), nil
	case nodeSub:
		return l.Sub(r), nil
	case nodeMul:
		return l.Mul(r), nil
	case nodeDiv:
		return l.Div(r)
	default:
		return l.Pow(exponent(r))
	}
}

// exponent truncates the real part of x to an int, saturating at the int32
// range. NaN becomes 0.
func exponent(x Complex) int {
	switch {
	case math.IsNaN(x.Re):
		return 0
	case x.Re >= math.MaxInt32:
		return math.MaxInt32
	case x.Re <= math.MinInt32:
		return math.MinInt32
	default:
		return int(x.Re)
	}
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, vars map[string]Complex) (Complex, error) {
	a, err := ParseString(src)
	if err != nil {
		return Complex{}, err
	}
	return a.Eval(vars)
}

// NameError is an error from a lookup for a variable that has no binding.
// It matches ErrUndefinedVariable.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

func (err *NameError) Is(target error) bool {
	return target == ErrUndefinedVariable
}

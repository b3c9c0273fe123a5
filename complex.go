package zetacalc

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/zephyrtronium/bigfloat"
)

// Epsilon is the absolute tolerance used when comparing complex components
// and when deciding whether a divisor is zero.
const Epsilon = 1e-9

// Complex is an immutable complex number Re + Im*i.
//
// The == operator compares components exactly. Equal compares them with a
// tolerance of Epsilon. Complex values are never used as map keys in this
// package, since no hash could agree with the tolerant comparison.
type Complex struct {
	Re, Im float64
}

// New returns re + im*i.
func New(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

var (
	one    = Complex{Re: 1}
	negOne = Complex{Re: -1}
	unitI  = Complex{Im: 1}
)

var (
	// ErrDivisionByZero is the error wrapped by a DomainError for division by
	// a number whose squared modulus is below Epsilon.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrRootIndex is the error wrapped by a DomainError for a root of
	// non-positive degree. It also matches ErrInvalidArgument.
	ErrRootIndex = fmt.Errorf("%w: root index must be a positive integer", ErrInvalidArgument)
	// ErrFormat is the error wrapped by a FormatError.
	ErrFormat = errors.New("invalid complex number")
)

// Add returns z + x.
func (z Complex) Add(x Complex) Complex {
	return Complex{z.Re + x.Re, z.Im + x.Im}
}

// Sub returns z - x.
func (z Complex) Sub(x Complex) Complex {
	return Complex{z.Re - x.Re, z.Im - x.Im}
}

// Mul returns z * x.
func (z Complex) Mul(x Complex) Complex {
	return Complex{z.Re*x.Re - z.Im*x.Im, z.Re*x.Im + z.Im*x.Re}
}

// Div returns z / x. If the squared modulus of x is less than Epsilon, the
// result is a DomainError wrapping ErrDivisionByZero.
func (z Complex) Div(x Complex) (Complex, error) {
	d := x.Re*x.Re + x.Im*x.Im
	if math.Abs(d) < Epsilon {
		return Complex{}, &DomainError{Func: "/", X: x, Err: ErrDivisionByZero}
	}
	return Complex{(z.Re*x.Re + z.Im*x.Im) / d, (z.Im*x.Re - z.Re*x.Im) / d}, nil
}

// Conj returns the complex conjugate of z.
func (z Complex) Conj() Complex {
	return Complex{z.Re, -z.Im}
}

// Modulus returns |z|.
func (z Complex) Modulus() float64 {
	return math.Sqrt(z.Re*z.Re + z.Im*z.Im)
}

// Arg returns the angle of z in polar form, in (-π, π].
func (z Complex) Arg() float64 {
	return math.Atan2(z.Im, z.Re)
}

// Pow returns z raised to the integer power n, computed in polar form.
// A base whose squared modulus is below Epsilon counts as zero when n is
// negative, and the result is then a DomainError wrapping ErrDivisionByZero.
func (z Complex) Pow(n int) (Complex, error) {
	switch {
	case n == 0:
		return one, nil
	case n < 0 && z.Re*z.Re+z.Im*z.Im < Epsilon:
		return Complex{}, &DomainError{Func: "^", X: z, N: n, Err: ErrDivisionByZero}
	case z.Re == 0 && z.Im == 0:
		return Complex{}, nil
	}
	r := modpow(z.Modulus(), float64(n))
	return polar(r, z.Arg()*float64(n)), nil
}

// Root returns the principal n-th root of z: the modulus is raised to 1/n and
// the angle is divided by n, with no branch adjustment. Hence z.Pow(n).Root(n)
// recovers z only while |n*z.Arg()| < π. A non-positive n is a DomainError
// wrapping ErrRootIndex.
func (z Complex) Root(n int) (Complex, error) {
	if n <= 0 {
		return Complex{}, &DomainError{Func: "root", X: z, N: n, Err: ErrRootIndex}
	}
	if z.Re == 0 && z.Im == 0 {
		return Complex{}, nil
	}
	r := modpow(z.Modulus(), 1/float64(n))
	return polar(r, z.Arg()/float64(n)), nil
}

// Equal returns whether both components of z and x differ by less than
// Epsilon.
func (z Complex) Equal(x Complex) bool {
	return math.Abs(z.Re-x.Re) < Epsilon && math.Abs(z.Im-x.Im) < Epsilon
}

// IsReal returns whether the imaginary part of z is within Epsilon of zero.
func (z Complex) IsReal() bool {
	return math.Abs(z.Im) < Epsilon
}

// String formats z with exactly two decimal places: "a" when z is real, "bi"
// when z is imaginary, and "a + bi" or "a - bi" otherwise.
func (z Complex) String() string {
	switch {
	case math.Abs(z.Im) < Epsilon:
		return fixed(z.Re)
	case math.Abs(z.Re) < Epsilon:
		return fixed(z.Im) + "i"
	case z.Im > 0:
		return fixed(z.Re) + " + " + fixed(z.Im) + "i"
	default:
		return fixed(z.Re) + " - " + fixed(-z.Im) + "i"
	}
}

func fixed(x float64) string {
	if x == 0 {
		// Drop the sign of negative zero.
		x = 0
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func polar(r, theta float64) Complex {
	return Complex{r * math.Cos(theta), r * math.Sin(theta)}
}

const (
	// modprec is the mantissa size used for modulus exponentiation.
	modprec = 64
	// maxlog bounds the natural log of a modulus power that float64 can
	// represent.
	maxlog = 710
)

// modpow computes r^p for a modulus r. Finite positive moduli go through
// bigfloat at modprec bits before rounding to float64.
func modpow(r, p float64) float64 {
	switch {
	case p == 0, r == 1:
		return 1
	case p == 1:
		return r
	case r <= 0, math.IsInf(r, 0), math.IsNaN(r), math.IsNaN(p), math.IsInf(p, 0):
		return math.Pow(r, p)
	case math.Abs(p*math.Log(r)) > maxlog:
		// Overflows or underflows float64 either way.
		return math.Pow(r, p)
	}
	x := new(big.Float).SetPrec(modprec).SetFloat64(r)
	y := new(big.Float).SetPrec(modprec).SetFloat64(p)
	bigfloat.Pow(x, x, y)
	f, _ := x.Float64()
	return f
}

// ParseComplex parses a complex literal of the form "a", "bi", "a+bi",
// "a-bi", "i", or "-i". Leading and trailing whitespace is ignored, as is
// whitespace on either side of the sign between the real and imaginary parts;
// whitespace anywhere else is a FormatError. The parts are split at the last
// sign that is not the first character and does not follow an exponent
// marker.
func ParseComplex(s string) (Complex, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Complex{}, &FormatError{Text: s}
	}
	k := -1
	for i := len(t) - 1; i > 0; i-- {
		if (t[i] == '+' || t[i] == '-') && t[i-1] != 'e' && t[i-1] != 'E' {
			k = i
			break
		}
	}
	if k < 0 {
		if strings.HasSuffix(t, "i") {
			im, ok := imagpart(t)
			if !ok {
				return Complex{}, &FormatError{Text: s}
			}
			return Complex{Im: im}, nil
		}
		re, ok := realpart(t)
		if !ok {
			return Complex{}, &FormatError{Text: s}
		}
		return Complex{Re: re}, nil
	}
	re, ok := realpart(strings.TrimRightFunc(t[:k], unicode.IsSpace))
	if !ok {
		return Complex{}, &FormatError{Text: s}
	}
	im, ok := imagpart(t[k:k+1] + strings.TrimLeftFunc(t[k+1:], unicode.IsSpace))
	if !ok {
		return Complex{}, &FormatError{Text: s}
	}
	return Complex{re, im}, nil
}

// realpart parses a signed decimal number. strconv alone would also accept
// forms like "inf" and "0x1p-2".
func realpart(s string) (float64, bool) {
	digits := false
	for _, c := range s {
		switch {
		case '0' <= c && c <= '9':
			digits = true
		case c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return 0, false
		}
	}
	if !digits {
		return 0, false
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return x, true
}

// imagpart parses a signed coefficient followed by i. The coefficient may be
// omitted.
func imagpart(s string) (float64, bool) {
	c, ok := strings.CutSuffix(s, "i")
	if !ok {
		return 0, false
	}
	switch c {
	case "", "+":
		return 1, true
	case "-":
		return -1, true
	}
	return realpart(c)
}

// DomainError is an error returned when an arithmetic operation is applied to
// operands outside its domain. It unwraps to ErrDivisionByZero or
// ErrRootIndex.
type DomainError struct {
	// Func is the operation: "/", "^", or "root".
	Func string
	// X is the offending operand: the divisor for "/", the base otherwise.
	X Complex
	// N is the integer exponent or root index, if the operation has one.
	N int
	// Err is the kind of failure.
	Err error
}

func (err *DomainError) Error() string {
	switch err.Func {
	case "root":
		return err.Err.Error() + ": root of degree " + strconv.Itoa(err.N)
	case "^":
		return err.Err.Error() + ": (" + err.X.String() + ") ^ " + strconv.Itoa(err.N)
	default:
		return err.Err.Error() + ": divisor " + err.X.String()
	}
}

func (err *DomainError) Unwrap() error {
	return err.Err
}

// FormatError is an error indicating text that is not a complex literal.
// It unwraps to ErrFormat.
type FormatError struct {
	// Text is the input that failed to parse.
	Text string
}

func (err *FormatError) Error() string {
	return ErrFormat.Error() + ": " + strconv.Quote(err.Text)
}

func (err *FormatError) Unwrap() error {
	return ErrFormat
}

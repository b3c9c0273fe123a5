package zetacalc

import (
	"errors"
	"strconv"
)

var (
	// ErrParse matches every error resulting from malformed expression text
	// under errors.Is.
	ErrParse = errors.New("malformed expression")
	// ErrInvalidArgument matches errors for function arguments that are well
	// formed but unusable, such as a root degree that is not a real constant
	// or a root index that is not positive.
	ErrInvalidArgument = errors.New("invalid argument")
)

// LexError indicates an invalid number literal. It implements InputError.
type LexError struct {
	// Text is the literal the scanner was collecting when the invalid rune
	// was encountered, plus the invalid rune.
	Text string
	// Kind is the type of literal being scanned, e.g. "number".
	Kind string
	// Col is the position of the start of the literal.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Is(target error) bool {
	return target == ErrParse
}

// UnexpectedCharError indicates a character that cannot appear where it was
// found, including input left over after a complete expression. It
// implements InputError.
type UnexpectedCharError struct {
	// Col is the position of the character.
	Col int
	// Char is the character.
	Char rune
	// Want describes what the parser expected instead, if anything specific.
	Want string
}

func (err *UnexpectedCharError) Error() string {
	msg := "unexpected character " + strconv.QuoteRune(err.Char)
	if err.Want != "" {
		msg += ", expected " + err.Want
	}
	return errpos(err.Col, msg)
}

func (err *UnexpectedCharError) Pos() int {
	return err.Col
}

func (err *UnexpectedCharError) Is(target error) bool {
	return target == ErrParse
}

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position where the closing bracket was expected, or of the
	// unmatched closing bracket.
	Col int
	// Left is the opening bracket, or empty for a close with no open.
	Left string
	// Right is the unmatched closing bracket, or empty for an open with no
	// close.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Is(target error) bool {
	return target == ErrParse
}

// SeparatorError is an error indicating a comma outside a function argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Is(target error) bool {
	return target == ErrParse
}

// CallError is an error indicating a function call without an argument list
// or with the wrong number of arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name as written.
	Func string
	// Len is the number of arguments given, or -1 if there was no argument
	// list.
	Len int
	// Want is the number of arguments the function takes.
	Want int
}

func (err *CallError) Error() string {
	if err.Len < 0 {
		return errpos(err.Col, err.Func+" must be followed by a parenthesized argument list")
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (want "+strconv.Itoa(err.Want)+")")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Is(target error) bool {
	return target == ErrParse
}

// EmptyExpressionError is an error indicating a missing operand.
// It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the character that ended the subexpression.
	Col int
	// End is the character that ended the subexpression, or empty at the end
	// of the input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrParse
}

// NestingError is an error indicating brackets nested more deeply than the
// MaxDepth parse option allows. It implements InputError.
type NestingError struct {
	// Col is the position of the bracket that went too deep.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *NestingError) Error() string {
	return errpos(err.Col, "brackets nested deeper than "+strconv.Itoa(err.Max))
}

func (err *NestingError) Pos() int {
	return err.Col
}

func (err *NestingError) Is(target error) bool {
	return target == ErrParse
}

// ArgumentError is an error indicating a function argument that parsed but
// cannot be used, such as a root degree with variables in it. It matches
// both ErrParse and ErrInvalidArgument, and unwraps to the evaluation error
// that caused it, if any. It implements InputError.
type ArgumentError struct {
	// Col is the position of the argument.
	Col int
	// Func is the function name as written.
	Func string
	// Reason describes the requirement the argument fails.
	Reason string
	// Err is the error from evaluating the argument, if that failed.
	Err error
}

func (err *ArgumentError) Error() string {
	msg := "invalid argument to " + err.Func + ": " + err.Reason
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return errpos(err.Col, msg)
}

func (err *ArgumentError) Pos() int {
	return err.Col
}

func (err *ArgumentError) Is(target error) bool {
	return target == ErrParse || target == ErrInvalidArgument
}

func (err *ArgumentError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based rune column at which the error was detected.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*UnexpectedCharError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*NestingError)(nil)
	_ InputError = (*ArgumentError)(nil)
)

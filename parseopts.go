package zetacalc

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the settings and bookkeeping of one parse.
type parsectx struct {
	// names is the set of variable names seen so far.
	names map[string]bool
	// stopws holds the whitespace runes that end the expression where an
	// operator is expected.
	stopws string
	// stopcomma and stopsemi allow a comma or semicolon, respectively, to end
	// the expression.
	stopcomma, stopsemi bool
	// maxdepth is the deepest bracket nesting allowed, or 0 for no limit.
	maxdepth int
}

type stopopt struct {
	comma, semi bool
	ws          string
}

// StopOn tells the parser to treat a list of characters as ending the
// expression. Each rune must be a comma, semicolon, or whitespace codepoint.
// Whitespace ends an expression only where an operator could follow and no
// bracket is open, so "2 +\n 3" is still one expression. Commas never end an
// argument list. The stopping character is consumed, so the next Parse on
// the same source starts after it.
//
// StopOn replaces any previous StopOn in the options. With no arguments it
// restores the default, which is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	var o stopopt
	var ws strings.Builder
	for _, r := range chars {
		switch {
		case r == ',':
			o.comma = true
		case r == ';':
			o.semi = true
		case unicode.IsSpace(r):
			if !strings.ContainsRune(ws.String(), r) {
				ws.WriteRune(r)
			}
		default:
			panic("zetacalc: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.ws = ws.String()
	return o
}

func (o stopopt) parseOption(p parsectx) parsectx {
	p.stopcomma = o.comma
	p.stopsemi = o.semi
	p.stopws = o.ws
	return p
}

type depthopt int

// MaxDepth limits how deeply parentheses and function argument lists may
// nest. Input that goes deeper fails with a *NestingError. A limit of zero or
// less removes it; there is no limit by default.
func MaxDepth(n int) ParseOption {
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = max(int(o), 0)
	return p
}

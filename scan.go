package zetacalc

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

// eof is the rune the scanner reports at the end of the input.
const eof rune = -1

// scanner is a single-pass character cursor over the parser's input. There is
// no separate token stream; the parser branches on the runes the scanner
// reports and asks it to collect numbers and identifiers.
type scanner struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes consumed so far.
	col int
	// stopws is the set of whitespace runes that end the expression where an
	// operator is expected outside of brackets.
	stopws string
	// depth is the number of brackets open.
	depth int
	// done is set once the scanner has reported eof. Further reads do not
	// touch src.
	done bool
	// err is the first read error other than io.EOF.
	err error
}

func scan(src io.RuneScanner, stopws string) *scanner {
	return &scanner{src: src, stopws: stopws}
}

// read consumes the next rune. Read errors end the input; Parse reports the
// first one that is not io.EOF.
func (s *scanner) read() rune {
	if s.done {
		return eof
	}
	r, _, err := s.src.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		s.done = true
		return eof
	}
	s.col++
	return r
}

// unread returns r, which must be the rune most recently read, to the input.
// Panics if the source refuses.
func (s *scanner) unread(r rune) {
	if r == eof {
		return
	}
	if err := s.src.UnreadRune(); err != nil {
		panic(err)
	}
	s.col--
}

// pos returns the 1-based column of the next rune.
func (s *scanner) pos() int {
	return s.col + 1
}

// peek skips whitespace and returns the next rune without consuming it. If
// stop is true and no bracket is open, a whitespace rune in s.stopws ends the
// input instead of being skipped.
func (s *scanner) peek(stop bool) rune {
	for {
		r := s.read()
		if !unicode.IsSpace(r) {
			s.unread(r)
			return r
		}
		if stop && s.depth == 0 && strings.ContainsRune(s.stopws, r) {
			s.done = true
			return eof
		}
	}
}

// eat skips whitespace and consumes the next rune if it is r.
func (s *scanner) eat(r rune, stop bool) bool {
	if s.peek(stop) != r {
		return false
	}
	s.read()
	return true
}

// next reports whether the rune immediately following, with no whitespace
// skipped, is r, and consumes it if so.
func (s *scanner) next(r rune) bool {
	c := s.read()
	if c != r {
		s.unread(c)
		return false
	}
	return true
}

// scanNum collects digits and at most one decimal point.
func (s *scanner) scanNum() (string, error) {
	defer s.buf.Reset()
	start := s.pos()
	dig, dot := false, false
	for {
		r := s.read()
		switch {
		case '0' <= r && r <= '9':
			dig = true
		case r == '.':
			if dot {
				s.buf.WriteRune(r)
				return "", s.error("number", start)
			}
			dot = true
		default:
			s.unread(r)
			if !dig {
				return "", s.error("number", start)
			}
			return s.buf.String(), nil
		}
		s.buf.WriteRune(r)
	}
}

// scanIdent collects a name. The caller has checked that the next rune is a
// letter or underscore.
func (s *scanner) scanIdent() string {
	defer s.buf.Reset()
	for {
		r := s.read()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			s.unread(r)
			return s.buf.String()
		}
		s.buf.WriteRune(r)
	}
}

func (s *scanner) error(kind string, col int) error {
	return &LexError{
		Text: s.buf.String(),
		Kind: kind,
		Col:  col,
	}
}

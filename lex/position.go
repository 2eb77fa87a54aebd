// Package lex is the lexical-analysis front end for the Ektoplasma scripting
// language. It converts source text into a flat, ordered sequence of Tokens
// that a parser can consume, each one carrying the Positions of its first and
// last characters so that later stages can point at the exact source location
// that caused a problem.
//
// Lexing is done with a Lexer. Create one with [New] and call
// [Lexer.Tokenize] to run a complete pass over the text:
//
//	lx := lex.New("main.ecp", src)
//	toks, err := lx.Tokenize()
//
// The returned slice always ends with exactly one EOF token. If the text
// contains something that cannot be classified, Tokenize stops at the first
// problem and returns an *Error describing it instead.
package lex

import (
	"fmt"
	"strings"
)

// Source is a named, read-only body of source text. A single Source is shared
// by a Lexer and every Position and Token it produces; it must not be modified
// once lexing has begun.
type Source struct {
	// Name is a label for the text used in diagnostics, such as a file path.
	Name string

	// Text is the complete source text.
	Text string
}

// NewSource creates a new Source with the given name and text.
func NewSource(name, text string) *Source {
	return &Source{Name: name, Text: text}
}

// Position is a single point in a Source. Offset, Line, and Column are all
// 0-indexed; Column counts bytes from the start of the line.
//
// A Position is a value type. The Lexer mutates its own cursor in place with
// Advance and takes a Snapshot whenever a token boundary is recorded; the
// snapshot keeps the numeric fields and shares the Source handle.
type Position struct {
	Offset int
	Line   int
	Column int

	src *Source
}

// startPosition returns the "before the first character" cursor for src. One
// call to Advance moves it onto offset 0, line 0, column 0.
func startPosition(src *Source) Position {
	return Position{Offset: -1, Line: 0, Column: -1, src: src}
}

// Advance moves the position forward past cur, which must be the character at
// the current position (or 0 when the position is before the start of the
// text). If cur is a newline, the line is incremented and the column reset to
// 0. Returns p so that calls can be chained.
func (p *Position) Advance(cur byte) *Position {
	p.Offset++
	p.Column++

	if cur == '\n' {
		p.Line++
		p.Column = 0
	}

	return p
}

// Snapshot returns an independent copy of p. Later calls to Advance on p do
// not affect the snapshot.
func (p Position) Snapshot() Position {
	return p
}

// Source returns the Source that p points into. It will be nil for the
// zero-value Position.
func (p Position) Source() *Source {
	return p.src
}

// Name returns the name of the Source that p points into, or the empty string
// if p has no Source.
func (p Position) Name() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name
}

// Text returns the full text of the Source that p points into, or the empty
// string if p has no Source.
func (p Position) Text() string {
	if p.src == nil {
		return ""
	}
	return p.src.Text
}

// LineText returns the complete text of the line that p is on, not including
// the terminating newline.
func (p Position) LineText() string {
	text := p.Text()

	off := p.Offset
	if off < 0 {
		off = 0
	}
	if off > len(text) {
		off = len(text)
	}

	start := strings.LastIndexByte(text[:off], '\n') + 1

	// a position on a newline character belongs to the line it ends
	end := strings.IndexByte(text[off:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += off
	}

	return text[start:end]
}

// WithSource returns a copy of p that points into src.
func (p Position) WithSource(src *Source) Position {
	p.src = src
	return p
}

// String gives the human-readable form of p, "NAME:LINE:COL" with 1-indexed
// line and column numbers.
func (p Position) String() string {
	if p.Name() == "" {
		return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
	}
	return fmt.Sprintf("%s:%d:%d", p.Name(), p.Line+1, p.Column+1)
}

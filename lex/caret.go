package lex

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Underline returns the source line(s) spanned by start through end, each
// followed by a line of '^' characters under the spanned text. If start and
// end are on the same line the result is two lines; a span covering several
// lines is underlined from start to the end of its first line, across every
// full line in between, and up to end on its last line.
//
// Tabs before the underlined text are kept in the indentation so that the
// carets line up in a terminal, and East Asian wide characters count as two
// cells. At least one caret is always written for each line.
//
// Returns the empty string if start does not point into any source text.
func Underline(start, end Position) string {
	if start.Source() == nil {
		return ""
	}

	lines := strings.Split(start.Text(), "\n")
	if start.Line < 0 || start.Line >= len(lines) {
		return ""
	}

	lastLine := end.Line
	if lastLine < start.Line || end.Source() != start.Source() {
		lastLine = start.Line
		end = start
	}
	if lastLine >= len(lines) {
		lastLine = len(lines) - 1
	}

	var sb strings.Builder
	for ln := start.Line; ln <= lastLine; ln++ {
		line := strings.TrimSuffix(lines[ln], "\r")

		colStart := 0
		if ln == start.Line {
			colStart = clamp(start.Column, 0, len(line))
		}
		colEnd := len(line) - 1
		if ln == end.Line {
			colEnd = end.Column
		}
		colEnd = clamp(colEnd+1, colStart, len(line))
		for colEnd < len(line) && !utf8.RuneStart(line[colEnd]) {
			colEnd++
		}

		if ln > start.Line {
			sb.WriteRune('\n')
		}
		sb.WriteString(line)
		sb.WriteRune('\n')
		sb.WriteString(indentFor(line[:colStart]))

		carets := cellWidth(line[colStart:colEnd])
		if carets < 1 {
			carets = 1
		}
		sb.WriteString(strings.Repeat("^", carets))
	}

	return sb.String()
}

// indentFor gives whitespace that takes up the same room on a terminal as
// prefix.
func indentFor(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		switch {
		case r == '\t':
			sb.WriteRune('\t')
		case isWide(r):
			sb.WriteString("  ")
		default:
			sb.WriteRune(' ')
		}
	}
	return sb.String()
}

func cellWidth(s string) int {
	n := 0
	for _, r := range s {
		if isWide(r) {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

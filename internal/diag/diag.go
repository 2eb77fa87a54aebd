// Package diag formats lexer output and lexer errors for display on a console.
package diag

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/rosed"
)

// DefaultWidth is the console width used when a caller gives a width less
// than 1.
const DefaultWidth = 80

// Caret returns the source text spanned by start through end with a line of
// '^' beneath it.
func Caret(start, end lex.Position) string {
	return lex.Underline(start, end)
}

// Render gives a console-ready description of err. A *lex.Error (anywhere in
// err's chain) is shown with its name, details, and location followed by the
// offending source line and a caret under the problem. Anything else is shown
// as its Error() text. Prose is wrapped to width; the source line and carets
// are never wrapped so they stay aligned.
func Render(err error, width int) string {
	if err == nil {
		return ""
	}
	if width < 1 {
		width = DefaultWidth
	}

	var lexErr *lex.Error
	if !errors.As(err, &lexErr) {
		return rosed.Edit(err.Error()).Wrap(width).String()
	}

	var sb strings.Builder
	sb.WriteString(rosed.Edit(lexErr.Summary()).Wrap(width).String())
	sb.WriteRune('\n')
	sb.WriteString(lexErr.Location())

	if cursor := Caret(lexErr.Start, lexErr.End); cursor != "" {
		sb.WriteString("\n\n")
		sb.WriteString(cursor)
	}

	return sb.String()
}

// TokenTable gives a table of tokens with one row per token, fit to width.
func TokenTable(tokens []lex.Token, width int) string {
	if width < 1 {
		width = DefaultWidth
	}

	data := [][]string{{"#", "KIND", "VALUE", "START", "END"}}
	for i, t := range tokens {
		data = append(data, []string{
			strconv.Itoa(i),
			t.Kind.String(),
			displayValue(t),
			t.Start.String(),
			t.End.String(),
		})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, tableOpts).
		String()
}

// TokenLines gives one line per token of the form KIND or KIND:VALUE.
func TokenLines(tokens []lex.Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(t.Kind.String())
		if !t.Value.IsZero() {
			sb.WriteRune(':')
			sb.WriteString(displayValue(t))
		}
	}
	return sb.String()
}

func displayValue(t lex.Token) string {
	switch t.Value.Type() {
	case lex.ValNone:
		return ""
	case lex.ValString:
		if t.Kind == lex.String {
			return strconv.Quote(t.Value.Str())
		}
		return t.Value.Str()
	default:
		return t.Value.String()
	}
}

package lex

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// file error.go contains the error produced when source text cannot be
// tokenized.

var (
	// ErrIllegalCharacter is the cause of an Error for a character that does
	// not begin any token.
	ErrIllegalCharacter = errors.New("illegal character")

	// ErrUnterminatedString is the cause of an Error for a string literal that
	// reaches the end of input before its closing quote.
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrExpectedChar is the cause of an Error for a symbol that is only valid
	// when followed by a particular character, such as a '!' with no '='.
	ErrExpectedChar = errors.New("expected character")

	// ErrNumberRange is the cause of an Error for a number literal that does
	// not fit in a 64-bit value.
	ErrNumberRange = errors.New("number out of range")
)

// Error is an IllegalCharacterError: the single kind of error that lexing can
// produce. It holds the offending character (if there is one) and the
// Positions needed to point at the problem in the source.
//
// Use errors.Is with one of the Err* variables in this package to find out
// more specifically what went wrong.
type Error struct {
	// Char is the offending character, or 0 if the error is not about a single
	// character.
	Char byte

	// Details is a short description of the problem.
	Details string

	// Start is the position the error was detected at. For an unterminated
	// string, it is the position of the opening quote.
	Start Position

	// End is the position of the last character of the offending text. It is
	// equal to Start when only a single character is at fault.
	End Position

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Start, strings.ToLower(e.Name()), e.Details)
}

// Unwrap returns the sentinel error that identifies what kind of problem e
// describes.
func (e *Error) Unwrap() error {
	return e.cause
}

// Name gives a title-cased name for the problem, such as "Illegal Character".
func (e *Error) Name() string {
	switch e.cause {
	case ErrUnterminatedString:
		return "Unterminated String"
	case ErrExpectedChar:
		return "Expected Character"
	case ErrNumberRange:
		return "Number Out Of Range"
	default:
		return "Illegal Character"
	}
}

// Line returns the 0-indexed line the error occurred on.
func (e *Error) Line() int {
	return e.Start.Line
}

// Column returns the 0-indexed column the error occurred at.
func (e *Error) Column() int {
	return e.Start.Column
}

// SourceLineWithCursor returns the offending source line with a line of '^'
// under the problem, as produced by Underline.
func (e *Error) SourceLineWithCursor() string {
	return Underline(e.Start, e.End)
}

// Summary gives the name of the problem followed by its details, such as
// "Illegal Character: '$'".
func (e *Error) Summary() string {
	return e.Name() + ": " + e.Details
}

// Location gives the file and 1-indexed line the error occurred on, in the
// form "File main.ecp, line 3". Text with no name is shown as <input>.
func (e *Error) Location() string {
	name := e.Start.Name()
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("File %s, line %d", name, e.Start.Line+1)
}

// FullMessage gives the Summary and Location of the error followed by the
// offending source text with carets under it.
func (e *Error) FullMessage() string {
	var sb strings.Builder
	sb.WriteString(e.Summary() + "\n")
	sb.WriteString(e.Location() + "\n")

	if cursor := e.SourceLineWithCursor(); cursor != "" {
		sb.WriteString("\n" + cursor)
	}

	return sb.String()
}

func illegalCharError(at Position) *Error {
	text := at.Text()
	r, _ := utf8.DecodeRuneInString(text[at.Offset:])

	return &Error{
		Char:    text[at.Offset],
		Details: fmt.Sprintf("%q", r),
		Start:   at,
		End:     at,
		cause:   ErrIllegalCharacter,
	}
}

func unterminatedStringError(openQuote Position) *Error {
	return &Error{
		Char:    '"',
		Details: "reached end of input before closing '\"'",
		Start:   openQuote,
		End:     openQuote,
		cause:   ErrUnterminatedString,
	}
}

func expectedCharError(at Position, want byte, after byte) *Error {
	return &Error{
		Char:    after,
		Details: fmt.Sprintf("'%c' (after '%c')", want, after),
		Start:   at,
		End:     at,
		cause:   ErrExpectedChar,
	}
}

func numberRangeError(start, end Position, literal string) *Error {
	return &Error{
		Details: fmt.Sprintf("%s does not fit in 64 bits", literal),
		Start:   start,
		End:     end,
		cause:   ErrNumberRange,
	}
}

package lex

import (
	"fmt"
	"strconv"
)

// ValueType is the type of payload held by a Value.
type ValueType int

const (
	ValNone ValueType = iota
	ValInt
	ValFloat
	ValString
)

func (vt ValueType) String() string {
	switch vt {
	case ValNone:
		return "none"
	case ValInt:
		return "int"
	case ValFloat:
		return "float"
	case ValString:
		return "string"
	default:
		return fmt.Sprintf("ValueType(%d)", int(vt))
	}
}

// Value is the optional payload of a Token. Literal, identifier, and keyword
// tokens carry one; all others have the zero Value.
type Value struct {
	typ ValueType
	i   int64
	f   float64
	s   string
}

// IntVal returns a Value holding an integer.
func IntVal(i int64) Value {
	return Value{typ: ValInt, i: i}
}

// FloatVal returns a Value holding a floating-point number.
func FloatVal(f float64) Value {
	return Value{typ: ValFloat, f: f}
}

// StrVal returns a Value holding a string.
func StrVal(s string) Value {
	return Value{typ: ValString, s: s}
}

// Type returns the type of payload that v holds.
func (v Value) Type() ValueType {
	return v.typ
}

// IsZero returns whether v holds no payload.
func (v Value) IsZero() bool {
	return v.typ == ValNone
}

// Int returns the integer payload. It returns 0 if v does not hold an int.
func (v Value) Int() int64 {
	return v.i
}

// Float returns the floating-point payload. It returns 0 if v does not hold a
// float.
func (v Value) Float() float64 {
	return v.f
}

// Str returns the string payload. It returns "" if v does not hold a string.
func (v Value) Str() string {
	return v.s
}

// String returns the payload formatted as text. The zero Value gives "".
func (v Value) String() string {
	switch v.typ {
	case ValInt:
		return strconv.FormatInt(v.i, 10)
	case ValFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValString:
		return v.s
	default:
		return ""
	}
}

// Token is a single lexical unit read from source text. Start and End are the
// positions of its first and last characters, both inclusive; the zero-width
// EOF token has Start equal to End.
type Token struct {
	Kind  Kind
	Value Value
	Start Position
	End   Position
}

// Lexeme returns the exact text in the source that the token was read from,
// quotes and escape sequences included. The EOF token has an empty lexeme.
func (t Token) Lexeme() string {
	if t.Kind == EOF {
		return ""
	}
	text := t.Start.Text()
	if t.Start.Offset < 0 || t.End.Offset >= len(text) || t.End.Offset < t.Start.Offset {
		return ""
	}
	return text[t.Start.Offset : t.End.Offset+1]
}

// String gives a debugging representation of the token.
func (t Token) String() string {
	if t.Value.IsZero() {
		return fmt.Sprintf("%s@%s", t.Kind, t.Start)
	}
	if t.Value.Type() == ValString {
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Value.Str(), t.Start)
	}
	return fmt.Sprintf("%s(%s)@%s", t.Kind, t.Value, t.Start)
}

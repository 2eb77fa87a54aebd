package lex

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/rezi"
)

// file codec.go contains binary encoding of tokens, so that the result of
// lexing a Source can be stored and loaded again without re-lexing it.
//
// Positions are encoded without their Source; decoding code must re-attach it
// with WithSource (DecodeTokens does this).

// MarshalBinary converts p into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (p Position) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncInt(p.Offset)...)
	data = append(data, rezi.EncInt(p.Line)...)
	data = append(data, rezi.EncInt(p.Column)...)
	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into p.
// The decoded Position has no Source.
func (p *Position) UnmarshalBinary(data []byte) error {
	var decoded Position
	var n int
	var err error

	decoded.Offset, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("offset: %w", err)
	}
	data = data[n:]

	decoded.Line, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	data = data[n:]

	decoded.Column, _, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("column: %w", err)
	}

	*p = decoded
	return nil
}

// MarshalBinary converts v into a slice of bytes that can be decoded with
// UnmarshalBinary. Numbers are encoded in their exact decimal text form.
func (v Value) MarshalBinary() ([]byte, error) {
	data := rezi.EncInt(int(v.typ))

	switch v.typ {
	case ValInt:
		data = append(data, rezi.EncString(strconv.FormatInt(v.i, 10))...)
	case ValFloat:
		data = append(data, rezi.EncString(strconv.FormatFloat(v.f, 'g', -1, 64))...)
	case ValString:
		data = append(data, rezi.EncString(v.s)...)
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into v.
func (v *Value) UnmarshalBinary(data []byte) error {
	typ, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("type: %w", err)
	}
	data = data[n:]

	var decoded Value
	decoded.typ = ValueType(typ)

	if decoded.typ == ValNone {
		*v = decoded
		return nil
	}

	s, _, err := rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}

	switch decoded.typ {
	case ValInt:
		decoded.i, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("payload: %w", err)
		}
	case ValFloat:
		decoded.f, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("payload: %w", err)
		}
	case ValString:
		decoded.s = s
	default:
		return fmt.Errorf("unknown value type %d", typ)
	}

	*v = decoded
	return nil
}

// MarshalBinary converts t into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (t Token) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncInt(int(t.Kind))...)
	data = append(data, rezi.EncBinary(t.Value)...)
	data = append(data, rezi.EncBinary(t.Start)...)
	data = append(data, rezi.EncBinary(t.End)...)
	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into t.
// The Positions of the decoded Token have no Source.
func (t *Token) UnmarshalBinary(data []byte) error {
	var decoded Token

	kind, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("kind: %w", err)
	}
	decoded.Kind = Kind(kind)
	if !decoded.Kind.valid() {
		return fmt.Errorf("kind: unknown token kind %d", kind)
	}
	data = data[n:]

	n, err = rezi.DecBinary(data, &decoded.Value)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	data = data[n:]

	n, err = rezi.DecBinary(data, &decoded.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	data = data[n:]

	_, err = rezi.DecBinary(data, &decoded.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	*t = decoded
	return nil
}

// EncodeTokens encodes a sequence of tokens into bytes that can be decoded
// with DecodeTokens.
func EncodeTokens(tokens []Token) []byte {
	data := rezi.EncInt(len(tokens))
	for i := range tokens {
		data = append(data, rezi.EncBinary(tokens[i])...)
	}
	return data
}

// DecodeTokens decodes a sequence of tokens encoded with EncodeTokens. Every
// Position of the returned tokens points into src, which should be the Source
// the tokens were originally lexed from.
func DecodeTokens(data []byte, src *Source) ([]Token, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("token count: %w", err)
	}
	data = data[n:]

	if count < 0 {
		return nil, fmt.Errorf("token count: negative count %d", count)
	}

	tokens := make([]Token, 0, count)
	for i := 0; i < count; i++ {
		var t Token
		n, err = rezi.DecBinary(data, &t)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		data = data[n:]

		t.Start = t.Start.WithSource(src)
		t.End = t.End.WithSource(src)
		tokens = append(tokens, t)
	}

	return tokens, nil
}

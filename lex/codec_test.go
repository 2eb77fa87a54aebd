package lex

import (
	"testing"

	"github.com/dekarrin/rezi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EncodeTokens_DecodeTokens(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "literals", input: `x = 12 + 3.5 * "he said \"hi\""`},
		{name: "multi-line program", input: "fun f(a) -> a ^ 2\nif f(3) >= 9.0 then; print(\"ok\") end"},
		{name: "big numbers", input: "9223372036854775807 1.7976931348623157 0.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			lx := New("test", tc.input)
			toks, err := lx.Tokenize()
			require.NoError(t, err)

			data := EncodeTokens(toks)
			actual, err := DecodeTokens(data, lx.Source())
			if !assert.NoError(err) {
				return
			}

			assert.Equal(toks, actual)
		})
	}
}

func Test_DecodeTokens_attachesSource(t *testing.T) {
	assert := assert.New(t)

	toks, err := Tokenize("orig", "abc")
	require.NoError(t, err)

	other := NewSource("reloaded", "abc")
	actual, err := DecodeTokens(EncodeTokens(toks), other)
	require.NoError(t, err)

	for _, tok := range actual {
		assert.Same(other, tok.Start.Source())
		assert.Same(other, tok.End.Source())
	}
	assert.Equal("abc", actual[0].Lexeme())
	assert.Equal("reloaded:1:1", actual[0].Start.String())
}

func Test_Token_UnmarshalBinary_badKind(t *testing.T) {
	assert := assert.New(t)

	data := rezi.EncInt(9999)
	data = append(data, rezi.EncBinary(Value{})...)
	data = append(data, rezi.EncBinary(Position{})...)
	data = append(data, rezi.EncBinary(Position{})...)

	var tok Token
	err := tok.UnmarshalBinary(data)

	assert.Error(err)
}

func Test_DecodeTokens_truncated(t *testing.T) {
	assert := assert.New(t)

	toks, err := Tokenize("test", "a b c")
	require.NoError(t, err)

	// claims more tokens than are present
	data := rezi.EncInt(len(toks) + 1)
	for i := range toks {
		data = append(data, rezi.EncBinary(toks[i])...)
	}

	_, err = DecodeTokens(data, nil)

	assert.Error(err)
}

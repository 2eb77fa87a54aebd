package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DefaultKeywords(t *testing.T) {
	assert := assert.New(t)

	ks := DefaultKeywords()

	assert.Equal(17, ks.Len())
	for _, w := range []string{"var", "and", "or", "not", "if", "then", "elif", "else", "for", "to", "step", "while", "fun", "end", "return", "continue", "break"} {
		assert.True(ks.Has(w), "missing %q", w)
	}
	assert.False(ks.Has("If"))

	// each call gives an independent set
	ks.Add("import")
	assert.False(DefaultKeywords().Has("import"))
}

func Test_KeywordSet(t *testing.T) {
	assert := assert.New(t)

	ks := NewKeywordSet("b", "a")
	ks.Add("c")
	ks.Remove("b")
	ks.Remove("not-there")

	cp := ks.Copy()
	cp.Add("z")

	assert.Equal([]string{"a", "c"}, ks.Words())
	assert.Equal([]string{"a", "c", "z"}, cp.Words())
	assert.Equal(2, ks.Len())
}

func Test_IsIdentifier(t *testing.T) {
	testCases := []struct {
		input  string
		expect bool
	}{
		{input: "", expect: false},
		{input: "a", expect: true},
		{input: "_", expect: true},
		{input: "foo_1", expect: true},
		{input: "1foo", expect: false},
		{input: "foo-bar", expect: false},
		{input: "héllo", expect: false},
		{input: "with space", expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, IsIdentifier(tc.input))
		})
	}
}

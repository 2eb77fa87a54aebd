package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Kind(t *testing.T) {
	testCases := []struct {
		kind         Kind
		expectString string
		expectSymbol string
	}{
		{kind: EOF, expectString: "EOF", expectSymbol: ""},
		{kind: Int, expectString: "INT", expectSymbol: ""},
		{kind: Newline, expectString: "NEWLINE", expectSymbol: ""},
		{kind: EE, expectString: "EE", expectSymbol: "=="},
		{kind: Arrow, expectString: "ARROW", expectSymbol: "->"},
		{kind: Pow, expectString: "POW", expectSymbol: "^"},
		{kind: Kind(500), expectString: "Kind(500)", expectSymbol: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.expectString, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expectString, tc.kind.String())
			assert.Equal(tc.expectSymbol, tc.kind.Symbol())
		})
	}
}

func Test_ParseKind(t *testing.T) {
	assert := assert.New(t)

	for k := EOF; k <= Newline; k++ {
		parsed, err := ParseKind(k.String())
		assert.NoError(err)
		assert.Equal(k, parsed)
	}

	parsed, err := ParseKind("arrow")
	assert.NoError(err)
	assert.Equal(Arrow, parsed)

	_, err = ParseKind("NOPE")
	assert.Error(err)
}

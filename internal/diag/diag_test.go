package diag

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dekarrin/ecp/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Render(t *testing.T) {
	testCases := []struct {
		name   string
		src    string
		input  string
		width  int
		expect string
	}{
		{
			name:   "illegal character",
			src:    "main.ecp",
			input:  "var x = 1\nvar y = $",
			width:  80,
			expect: "Illegal Character: '$'\nFile main.ecp, line 2\n\nvar y = $\n        ^",
		},
		{
			name:   "unnamed source",
			src:    "",
			input:  "@",
			width:  80,
			expect: "Illegal Character: '@'\nFile <input>, line 1\n\n@\n^",
		},
		{
			name:   "zero width uses the default",
			src:    "s",
			input:  "a ! b",
			width:  0,
			expect: "Expected Character: '=' (after '!')\nFile s, line 1\n\na ! b\n  ^",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := lex.Tokenize(tc.src, tc.input)
			require.Error(t, err)

			assert.Equal(tc.expect, Render(err, tc.width))
		})
	}
}

func Test_Render_wrappedLexError(t *testing.T) {
	assert := assert.New(t)

	_, err := lex.Tokenize("f", "$")
	require.Error(t, err)

	wrapped := fmt.Errorf("lexing f: %w", err)

	assert.True(strings.HasPrefix(Render(wrapped, 80), "Illegal Character: '$'\n"))
}

func Test_Render_matchesFullMessage(t *testing.T) {
	assert := assert.New(t)

	_, err := lex.Tokenize("main.ecp", "x = 1\ny = \"open")
	require.Error(t, err)

	var lexErr *lex.Error
	require.ErrorAs(t, err, &lexErr)

	assert.Equal(strings.TrimSuffix(lexErr.FullMessage(), "\n"), Render(err, 80))
}

func Test_Render_plainError(t *testing.T) {
	assert := assert.New(t)

	err := errors.New("open missing.ecp: no such file or directory")

	assert.Equal("open missing.ecp: no such file or directory", Render(err, 80))
	assert.Equal("", Render(nil, 80))
}

func Test_Render_longMessageIsWrapped(t *testing.T) {
	assert := assert.New(t)

	err := errors.New(strings.Repeat("word ", 30))
	out := Render(err, 20)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(len(line), 20)
	}
}

func Test_TokenLines(t *testing.T) {
	assert := assert.New(t)

	toks, err := lex.Tokenize("t", `var x = 12 + 1.5 * "s"`)
	require.NoError(t, err)

	expect := strings.Join([]string{
		"KEYWORD:var",
		"IDENTIFIER:x",
		"EQ",
		"INT:12",
		"PLUS",
		"FLOAT:1.5",
		"STAR",
		`STRING:"s"`,
		"EOF",
	}, "\n")

	assert.Equal(expect, TokenLines(toks))
}

func Test_TokenTable(t *testing.T) {
	assert := assert.New(t)

	toks, err := lex.Tokenize("t", "x -> 1")
	require.NoError(t, err)

	out := TokenTable(toks, 80)

	for _, want := range []string{"KIND", "VALUE", "START", "END", "IDENTIFIER", "ARROW", "INT", "EOF", "t:1:3", "t:1:4"} {
		assert.Contains(out, want)
	}
}

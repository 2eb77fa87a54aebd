package ecp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dekarrin/ecp/lex"
	"github.com/stretchr/testify/assert"
)

func Test_Shell_RunUntilQuit(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		opts          Options
		expectContain []string
		expectMissing []string
	}{
		{
			name:  "tokens of each line",
			input: "var x = 1\nx + 2.5\n",
			opts:  Options{ForceDirect: true, Format: FormatLines},
			expectContain: []string{
				"Ektoplasma Lexer\n(direct input mode)\n",
				"KEYWORD:var\nIDENTIFIER:x\nEQ\nINT:1\nEOF\n",
				"IDENTIFIER:x\nPLUS\nFLOAT:2.5\nEOF\n",
				"Goodbye\n",
			},
		},
		{
			name:  "error does not end the session",
			input: "$\n1\n",
			opts:  Options{ForceDirect: true, Format: FormatLines},
			expectContain: []string{
				"Illegal Character: '$'\nFile <stdin>, line 1\n\n$\n^\n",
				"INT:1\nEOF\n",
				"Goodbye\n",
			},
		},
		{
			name:          "quit stops reading",
			input:         "a\nquit\nb\n",
			opts:          Options{ForceDirect: true, Format: FormatLines},
			expectContain: []string{"IDENTIFIER:a\nEOF\n", "Goodbye\n"},
			expectMissing: []string{"IDENTIFIER:b"},
		},
		{
			name:          "custom keywords",
			input:         "import if\n",
			opts:          Options{ForceDirect: true, Format: FormatLines, Keywords: lex.NewKeywordSet("import")},
			expectContain: []string{"KEYWORD:import\nIDENTIFIER:if\nEOF\n"},
		},
		{
			name:          "table output",
			input:         "x\n",
			opts:          Options{ForceDirect: true, Language: "Mini"},
			expectContain: []string{"Mini Lexer\n", "IDENTIFIER", "<stdin>:1:1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var out bytes.Buffer
			sh, err := New(strings.NewReader(tc.input), &out, tc.opts)
			if !assert.NoError(err) {
				return
			}

			err = sh.RunUntilQuit()
			assert.NoError(err)
			assert.NoError(sh.Close())

			actual := out.String()
			for _, want := range tc.expectContain {
				assert.Contains(actual, want)
			}
			for _, notWant := range tc.expectMissing {
				assert.NotContains(actual, notWant)
			}
		})
	}
}

func Test_Shell_prompt(t *testing.T) {
	testCases := []struct {
		name     string
		language string
		expect   string
	}{
		{name: "default language", expect: "ecp> "},
		{name: "named language", language: "Ektoplasma", expect: "ecp> "},
		{name: "other language", language: "Mini", expect: "mini> "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			sh, err := New(strings.NewReader(""), &bytes.Buffer{}, Options{ForceDirect: true, Language: tc.language})
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, sh.in.Prompt())
			assert.NoError(sh.Close())
		})
	}
}

func Test_ParseFormat(t *testing.T) {
	testCases := []struct {
		input     string
		expect    Format
		expectErr bool
	}{
		{input: "table", expect: FormatTable},
		{input: "LINES", expect: FormatLines},
		{input: "json", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseFormat(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
			assert.Equal(strings.ToLower(tc.input), actual.String())
		})
	}
}

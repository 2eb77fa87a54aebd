package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_ReadLine(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "single line",
			input:  "var x = 1\n",
			expect: []string{"var x = 1"},
		},
		{
			name:   "last line without newline",
			input:  "a\nb",
			expect: []string{"a", "b"},
		},
		{
			name:   "blank lines skipped",
			input:  "a\n\n   \nb\n",
			expect: []string{"a", "b"},
		},
		{
			name:   "whitespace trimmed",
			input:  "  \tx + 1  \r\n",
			expect: []string{"x + 1"},
		},
		{
			name:   "empty input",
			input:  "",
			expect: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewDirectReader(strings.NewReader(tc.input))

			var actual []string
			for {
				line, err := r.ReadLine()
				if err == io.EOF {
					break
				}
				if !assert.NoError(err) {
					return
				}
				actual = append(actual, line)
			}

			assert.Equal(tc.expect, actual)
			assert.NoError(r.Close())
		})
	}
}

func Test_DirectReader_Prompt(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader(""))
	assert.Equal(DefaultPrompt, r.Prompt())

	r.SetPrompt("... ")
	assert.Equal("... ", r.Prompt())
}

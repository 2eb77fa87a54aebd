package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectKeywords []string
		expectName     string
		expectServer   Server
		expectErr      error
		expectAnyErr   bool
	}{
		{
			name:           "empty file gives defaults",
			input:          "",
			expectKeywords: defaultWords(),
			expectName:     "Ektoplasma",
		},
		{
			name: "extra keywords are added",
			input: `
[lexer]
extra_keywords = ["import", "as"]
`,
			expectKeywords: sortedWords(append(defaultWords(), "as", "import")...),
			expectName:     "Ektoplasma",
		},
		{
			name: "keywords replace the defaults",
			input: `
[lexer]
name = "mini"
keywords = ["let", "in"]
extra_keywords = ["fn"]
`,
			expectKeywords: []string{"fn", "in", "let"},
			expectName:     "mini",
		},
		{
			name: "empty keywords list means none",
			input: `
[lexer]
keywords = []
`,
			expectKeywords: []string{},
			expectName:     "Ektoplasma",
		},
		{
			name: "server section",
			input: `
[server]
listen = "localhost:9000"
db = "sqlite:./data"
unauth_delay_ms = 250
`,
			expectKeywords: defaultWords(),
			expectName:     "Ektoplasma",
			expectServer:   Server{Listen: "localhost:9000", DB: "sqlite:./data", UnauthDelayMillis: 250},
		},
		{
			name: "keyword with a dash",
			input: `
[lexer]
extra_keywords = ["not-ok"]
`,
			expectErr: ErrBadKeyword,
		},
		{
			name: "keyword starting with a digit",
			input: `
[lexer]
keywords = ["1st"]
`,
			expectErr: ErrBadKeyword,
		},
		{
			name: "unknown key",
			input: `
[lexer]
keywordz = ["x"]
`,
			expectErr: ErrUnknownKey,
		},
		{
			name: "negative delay",
			input: `
[server]
unauth_delay_ms = -1
`,
			expectAnyErr: true,
		},
		{
			name:         "not toml",
			input:        "[lexer\nname=",
			expectAnyErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse([]byte(tc.input))
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			} else if tc.expectAnyErr {
				assert.Error(err)
				return
			} else if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expectKeywords, actual.Keywords().Words())
			assert.Equal(tc.expectName, actual.LanguageName())
			assert.Equal(tc.expectServer, actual.Server)
		})
	}
}

func Test_Load(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "ecp.toml")
	err := os.WriteFile(path, []byte("[lexer]\nextra_keywords = [\"import\"]\n"), 0644)
	if !assert.NoError(err) {
		return
	}

	cfg, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.True(cfg.Keywords().Has("import"))
	assert.True(cfg.Keywords().Has("while"))

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(err, os.ErrNotExist)
}

func defaultWords() []string {
	return []string{
		"and", "break", "continue", "elif", "else", "end", "for", "fun", "if",
		"not", "or", "return", "step", "then", "to", "var", "while",
	}
}

func sortedWords(words ...string) []string {
	sort.Strings(words)
	return words
}

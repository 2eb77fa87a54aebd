// Package config loads ecp configuration from TOML files. A single file holds
// the settings for both the ecplex command and the ecpserver service; each
// only reads the section it needs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/ecp/lex"
)

var (
	// ErrUnknownKey is returned when a config file contains a key that is
	// not part of the schema.
	ErrUnknownKey = errors.New("unknown key")

	// ErrBadKeyword is returned when a configured keyword could not be lexed
	// as a single identifier.
	ErrBadKeyword = errors.New("not a valid keyword")
)

// Config is the complete contents of a config file.
type Config struct {
	Lexer  Lexer  `toml:"lexer"`
	Server Server `toml:"server"`
}

// Lexer holds the settings that change how source text is tokenized.
type Lexer struct {
	// Name is a label for the language being lexed, shown in the REPL banner
	// and the server info endpoint.
	Name string `toml:"name"`

	// Keywords replaces the default reserved words when it is set. An
	// explicitly empty list means there are no reserved words at all.
	Keywords []string `toml:"keywords"`

	// ExtraKeywords are added to the reserved words after Keywords is applied.
	ExtraKeywords []string `toml:"extra_keywords"`
}

// Server holds settings for ecpserver.
type Server struct {
	Listen            string `toml:"listen"`
	DB                string `toml:"db"`
	UnauthDelayMillis int    `toml:"unauth_delay_ms"`
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML config data and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i := range undecoded {
			keys[i] = undecoded[i].String()
		}
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every configured keyword is something the lexer could
// produce as a Keyword token.
func (cfg Config) Validate() error {
	all := append(append([]string{}, cfg.Lexer.Keywords...), cfg.Lexer.ExtraKeywords...)
	for _, w := range all {
		if !lex.IsIdentifier(w) {
			return fmt.Errorf("lexer: %q: %w", w, ErrBadKeyword)
		}
	}

	if cfg.Server.UnauthDelayMillis < 0 {
		return fmt.Errorf("server: unauth_delay_ms: must not be negative")
	}

	return nil
}

// Keywords gives the set of reserved words the config selects: the default
// set or the configured replacement, plus any extras.
func (cfg Config) Keywords() lex.KeywordSet {
	var ks lex.KeywordSet
	if cfg.Lexer.Keywords != nil {
		ks = lex.NewKeywordSet(cfg.Lexer.Keywords...)
	} else {
		ks = lex.DefaultKeywords()
	}

	for _, w := range cfg.Lexer.ExtraKeywords {
		ks.Add(w)
	}
	return ks
}

// LanguageName gives the configured language label, or "Ektoplasma" if none
// is set.
func (cfg Config) LanguageName() string {
	if cfg.Lexer.Name == "" {
		return "Ektoplasma"
	}
	return cfg.Lexer.Name
}

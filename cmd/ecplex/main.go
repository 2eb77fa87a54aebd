/*
Ecplex tokenizes Ektoplasma source text and prints the resulting tokens.

Usage:

	ecplex [flags] [FILE ...]

With one or more files given, each file is tokenized in turn and its tokens are
printed to stdout. If a file contains something that cannot be tokenized, a
description of the problem with the offending line is printed to stderr and
ecplex exits with a non-zero status.

With no files, ecplex starts an interactive session that reads source text one
line at a time and prints the tokens of each line. Errors are printed and the
session continues. To exit the session, type "QUIT" or send end of input.

The flags are:

	-v, --version
		Give the current version of ecplex and then exit.

	-c, --config FILE
		Load settings from the given TOML config file. If not given, the value
		of environment variable ECP_CONFIG is used if set.

	-k, --keyword WORD
		Treat WORD as a reserved word in addition to those already configured.
		May be given more than once.

	-f, --format FORMAT
		Print tokens in the given format, either "table" (the default) or
		"lines".

	-w, --width N
		Fit output to a console N characters wide. Defaults to 80.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/ecp"
	"github.com/dekarrin/ecp/internal/config"
	"github.com/dekarrin/ecp/internal/diag"
	"github.com/dekarrin/ecp/internal/version"
	"github.com/dekarrin/ecp/lex"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitLexError indicates that a source file could not be tokenized.
	ExitLexError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue with flags, config, or reading input.
	ExitInitError
)

// EnvConfig is the environment variable that gives the config file path when
// --config is not set.
const EnvConfig = "ECP_CONFIG"

var (
	returnCode int = ExitSuccess

	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of ecplex and then exit.")
	flagConfig   = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
	flagKeywords = pflag.StringArrayP("keyword", "k", nil, "Treat the given word as reserved. May be repeated.")
	flagFormat   = pflag.StringP("format", "f", "table", "Print tokens as 'table' or 'lines'.")
	flagWidth    = pflag.IntP("width", "w", diag.DefaultWidth, "Fit output to the given console width.")
	flagDirect   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	format, err := ecp.ParseFormat(*flagFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\nDo -h for help.\n", err.Error())
		returnCode = ExitInitError
		return
	}

	keywords := cfg.Keywords()
	for _, w := range *flagKeywords {
		if !lex.IsIdentifier(w) {
			fmt.Fprintf(os.Stderr, "ERROR: %q is not a valid keyword\nDo -h for help.\n", w)
			returnCode = ExitInitError
			return
		}
		keywords.Add(w)
	}

	files := pflag.Args()
	if len(files) > 0 {
		returnCode = lexFiles(files, keywords, format)
		return
	}

	sh, initErr := ecp.New(os.Stdin, os.Stdout, ecp.Options{
		Keywords:    keywords,
		Format:      format,
		Width:       *flagWidth,
		ForceDirect: *flagDirect,
		Language:    cfg.LanguageName(),
	})
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer sh.Close()

	if err := sh.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}
}

func loadConfig() (config.Config, error) {
	path := os.Getenv(EnvConfig)
	if pflag.Lookup("config").Changed {
		path = *flagConfig
	}
	if path == "" {
		return config.Config{}, nil
	}
	return config.Load(path)
}

// lexFiles tokenizes and prints each file, stopping at the first one that
// cannot be read or tokenized. It returns the exit code to use.
func lexFiles(files []string, keywords lex.KeywordSet, format ecp.Format) int {
	for i, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			return ExitInitError
		}

		toks, err := lex.Tokenize(path, string(data), lex.WithKeywords(keywords))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", diag.Render(err, *flagWidth))
			return ExitLexError
		}

		if len(files) > 1 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("==> %s <==\n", path)
		}
		fmt.Println(format.Render(toks, *flagWidth))
	}

	return ExitSuccess
}

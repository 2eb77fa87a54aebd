// Package ecp contains a CLI-driven shell that reads Ektoplasma source one line
// at a time and prints the tokens of each line until the user quits.
package ecp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/ecp/internal/diag"
	"github.com/dekarrin/ecp/internal/input"
	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/rosed"
)

// StdinName is the source name given to lines read by a Shell.
const StdinName = "<stdin>"

const defaultLanguage = "Ektoplasma"

// Format is a way of printing a token sequence.
type Format int

const (
	// FormatTable prints tokens as a table with one row per token.
	FormatTable Format = iota

	// FormatLines prints one KIND or KIND:VALUE line per token.
	FormatLines
)

// ParseFormat parses the name of a Format, "table" or "lines".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "table":
		return FormatTable, nil
	case "lines":
		return FormatLines, nil
	default:
		return FormatTable, fmt.Errorf("unknown format %q; must be one of 'table' or 'lines'", s)
	}
}

func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatLines:
		return "lines"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Render gives the text of tokens in format f, fit to width where the format
// allows it.
func (f Format) Render(tokens []lex.Token, width int) string {
	if f == FormatLines {
		return diag.TokenLines(tokens)
	}
	return diag.TokenTable(tokens, width)
}

// Options configures a Shell. The zero value is valid and gives the default
// keywords, table output, and a console width of diag.DefaultWidth.
type Options struct {
	// Keywords is the set of reserved words. If nil, lex.DefaultKeywords is
	// used.
	Keywords lex.KeywordSet

	// Format is how tokens are printed.
	Format Format

	// Width is the console width output is fit to.
	Width int

	// ForceDirect disables readline even when attached to a terminal.
	ForceDirect bool

	// Language is shown in the banner, and its lower-cased name is the input
	// prompt. Defaults to "Ektoplasma", which is prompted for with
	// input.DefaultPrompt.
	Language string

	// HistoryFile is where readline saves entered lines. Unused in direct
	// mode.
	HistoryFile string
}

// Shell contains the things needed to run an interactive lexing session
// attached to an input stream and an output stream.
type Shell struct {
	in          input.Reader
	out         *bufio.Writer
	keywords    lex.KeywordSet
	format      Format
	width       int
	language    string
	forceDirect bool
	running     bool
}

// New creates a new Shell ready to operate on the given input and output
// streams. It will immediately open a buffered reader on the input stream and
// a buffered writer on the output stream.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used. Readline is used for input only when the
// streams are stdin and stdout and opts.ForceDirect is not set.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Shell, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	sh := &Shell{
		out:         bufio.NewWriter(outputStream),
		keywords:    opts.Keywords,
		format:      opts.Format,
		width:       opts.Width,
		language:    opts.Language,
		forceDirect: opts.ForceDirect,
	}
	if sh.keywords == nil {
		sh.keywords = lex.DefaultKeywords()
	}
	if sh.width < 1 {
		sh.width = diag.DefaultWidth
	}
	if sh.language == "" {
		sh.language = defaultLanguage
	}

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		sh.in, err = input.NewInteractiveReader(opts.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		sh.in = input.NewDirectReader(inputStream)
	}
	sh.in.SetPrompt(promptFor(sh.language))

	return sh, nil
}

func promptFor(language string) string {
	if language == defaultLanguage {
		return input.DefaultPrompt
	}
	return strings.ToLower(language) + "> "
}

// Close closes all resources associated with the Shell, including any
// readline-related resources created for interactive mode.
func (sh *Shell) Close() error {
	if sh.running {
		return fmt.Errorf("cannot close a running shell")
	}

	if err := sh.in.Close(); err != nil {
		return fmt.Errorf("close line reader: %w", err)
	}

	return nil
}

// RunUntilQuit reads lines from the input stream and prints their tokens until
// the QUIT command is received or input ends. Lexical errors in a line are
// printed and do not stop the session.
func (sh *Shell) RunUntilQuit() error {
	introMsg := sh.language + " Lexer\n"
	if sh.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += strings.Repeat("=", len(sh.language)+6) + "\n"
	introMsg += "Enter source text to see its tokens. Type QUIT to exit.\n"

	if err := sh.write(introMsg); err != nil {
		return err
	}

	sh.running = true
	defer func() {
		sh.running = false
	}()

	for sh.running {
		line, err := sh.in.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return fmt.Errorf("read source line: %w", err)
		}

		if strings.ToUpper(line) == "QUIT" {
			sh.running = false
			break
		}

		if err := sh.write(sh.lexLine(line) + "\n"); err != nil {
			return err
		}
	}

	return sh.write("Goodbye\n")
}

// lexLine gives the output for a single line of input.
func (sh *Shell) lexLine(line string) string {
	toks, err := lex.Tokenize(StdinName, line, lex.WithKeywords(sh.keywords))
	if err != nil {
		var lexErr *lex.Error
		if errors.As(err, &lexErr) {
			return diag.Render(err, sh.width)
		}
		return rosed.Edit(err.Error()).Wrap(sh.width).String()
	}

	return sh.format.Render(toks, sh.width)
}

func (sh *Shell) write(s string) error {
	if _, err := sh.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := sh.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

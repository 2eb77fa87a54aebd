// Package input reads lines of source text for the ecplex REPL from a console
// or any other stream.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DefaultPrompt is the prompt shown before each line when none is set.
const DefaultPrompt = "ecp> "

// Reader reads one line of input at a time.
type Reader interface {
	// ReadLine blocks until a non-blank line is available. At end of input it
	// returns io.EOF.
	ReadLine() (string, error)

	// SetPrompt changes the text shown before each line.
	SetPrompt(p string)

	// Prompt returns the current prompt.
	Prompt() string

	Close() error
}

// DirectReader reads lines from any io.Reader. It does not sanitize the input
// of control and escape sequences and does not keep history.
//
// DirectReader should not be used directly; create one with [NewDirectReader].
type DirectReader struct {
	r      *bufio.Reader
	prompt string
}

// InteractiveReader reads lines from stdin using a Go implementation of GNU
// Readline, which keeps input clear of editing escape sequences and gives the
// user line history. It should only be used when stdin is a TTY.
//
// InteractiveReader should not be used directly; create one with
// [NewInteractiveReader].
type InteractiveReader struct {
	rl     *readline.Instance
	prompt string
}

// NewDirectReader creates a DirectReader that buffers r.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r:      bufio.NewReader(r),
		prompt: DefaultPrompt,
	}
}

// NewInteractiveReader initializes readline on stdin. If historyFile is not
// empty, lines entered are saved to it and reloaded on the next run. The
// returned reader must have Close called on it to restore the terminal.
func NewInteractiveReader(historyFile string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          DefaultPrompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "QUIT",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// Close releases resources held by the DirectReader. The underlying
// io.Reader is not closed.
func (dr *DirectReader) Close() error {
	return nil
}

// Close restores the terminal and releases readline resources.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line. Surrounding whitespace is trimmed and lines
// with nothing but whitespace are skipped.
//
// A final line with no trailing newline is still returned; the following call
// returns io.EOF.
func (dr *DirectReader) ReadLine() (string, error) {
	for {
		line, err := dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
}

// ReadLine reads the next line typed at the console. Surrounding whitespace is
// trimmed and lines with nothing but whitespace are skipped. Pressing Ctrl-C on an empty line is treated as end of input.
func (ir *InteractiveReader) ReadLine() (string, error) {
	for {
		line, err := ir.rl.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return "", io.EOF
			}
			continue
		}
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
}

// SetPrompt updates the prompt. A DirectReader does not print its prompt
// itself; callers that want one shown must write it.
func (dr *DirectReader) SetPrompt(p string) {
	dr.prompt = p
}

// SetPrompt updates the prompt shown by readline.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// Prompt returns the current prompt.
func (dr *DirectReader) Prompt() string {
	return dr.prompt
}

// Prompt returns the current prompt.
func (ir *InteractiveReader) Prompt() string {
	return ir.prompt
}

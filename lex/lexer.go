package lex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Option configures a Lexer.
type Option func(lx *Lexer)

// WithKeywords sets the reserved words that the Lexer recognizes. Identifiers
// whose text is in ks are lexed as Keyword tokens. The set is not copied; it
// must not be modified while the Lexer is in use.
func WithKeywords(ks KeywordSet) Option {
	return func(lx *Lexer) {
		lx.keywords = ks
	}
}

// Lexer converts the text of a single Source into Tokens. A Lexer holds its
// own cursor and is not safe for concurrent use, but any number of Lexers may
// run at the same time.
//
// The zero-value Lexer should not be used; create one with [New].
type Lexer struct {
	src      *Source
	keywords KeywordSet

	pos Position
	cur byte
}

// New creates a Lexer for the given text. name is used to label Positions in
// diagnostics. If no keywords are given with WithKeywords, the set returned by
// DefaultKeywords is used.
func New(name, text string, opts ...Option) *Lexer {
	lx := &Lexer{
		src: NewSource(name, text),
	}

	for _, o := range opts {
		o(lx)
	}
	if lx.keywords == nil {
		lx.keywords = DefaultKeywords()
	}

	lx.reset()
	return lx
}

// Tokenize is a convenience function that creates a Lexer with the given
// options and runs Tokenize on it.
func Tokenize(name, text string, opts ...Option) ([]Token, error) {
	return New(name, text, opts...).Tokenize()
}

// Source returns the Source that lx reads from.
func (lx *Lexer) Source() *Source {
	return lx.src
}

// Keywords returns the reserved words that lx recognizes.
func (lx *Lexer) Keywords() KeywordSet {
	return lx.keywords
}

// reset puts the cursor back on the first character.
func (lx *Lexer) reset() {
	lx.pos = startPosition(lx.src)
	lx.cur = 0
	lx.advance()
}

// advance moves the cursor one character forward. At the end of the text the
// current character becomes 0.
func (lx *Lexer) advance() {
	lx.pos.Advance(lx.cur)
	if lx.pos.Offset < len(lx.src.Text) {
		lx.cur = lx.src.Text[lx.pos.Offset]
	} else {
		lx.cur = 0
	}
}

// atEnd returns whether the cursor has passed the last character. A NUL byte
// inside the text is not the end.
func (lx *Lexer) atEnd() bool {
	return lx.pos.Offset >= len(lx.src.Text)
}

// peek returns the character after the current one.
func (lx *Lexer) peek() (byte, bool) {
	next := lx.pos.Offset + 1
	if next >= len(lx.src.Text) {
		return 0, false
	}
	return lx.src.Text[next], true
}

// Tokenize reads the entire text and returns its tokens in order, ending with
// a single EOF token. Lexing stops at the first character that cannot be
// classified, in which case the returned error is an *Error describing it and
// no tokens are returned.
//
// Each call starts over from the beginning of the text.
func (lx *Lexer) Tokenize() ([]Token, error) {
	lx.reset()

	var tokens []Token

	for !lx.atEnd() {
		c := lx.cur

		var tok Token
		var err error

		switch {
		case isIdentStart(c):
			tok = lx.scanIdentifier()
		case isDigit(c):
			tok, err = lx.scanNumber()
		case isBlank(c):
			lx.advance()
			continue
		case isLineBreak(c):
			tok = Token{Kind: Newline, Start: lx.pos.Snapshot(), End: lx.pos.Snapshot()}
			lx.advance()
		case c == '"':
			tok, err = lx.scanString()
		case isSymbolStart(c):
			tok, err = lx.scanSymbol()
		default:
			err = illegalCharError(lx.pos.Snapshot())
		}

		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	end := lx.pos.Snapshot()
	tokens = append(tokens, Token{Kind: EOF, Start: end, End: end})

	return tokens, nil
}

// Stream tokenizes the text and returns the result as a Stream.
func (lx *Lexer) Stream() (*Stream, error) {
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	return NewStream(toks), nil
}

func (lx *Lexer) scanIdentifier() Token {
	start := lx.pos.Snapshot()
	end := start

	for !lx.atEnd() && isIdentChar(lx.cur) {
		end = lx.pos.Snapshot()
		lx.advance()
	}

	text := lx.src.Text[start.Offset : end.Offset+1]

	kind := Identifier
	if lx.keywords.Has(text) {
		kind = Keyword
	}

	return Token{Kind: kind, Value: StrVal(text), Start: start, End: end}
}

// scanNumber reads digits and at most one decimal point. A second decimal
// point ends the literal and is left for the next token, so "1.2.3" is read as
// 1.2, '.', 3.
func (lx *Lexer) scanNumber() (Token, error) {
	start := lx.pos.Snapshot()
	end := start
	dots := 0

	for !lx.atEnd() && (isDigit(lx.cur) || lx.cur == '.') {
		if lx.cur == '.' {
			if dots == 1 {
				break
			}
			dots++
		}
		end = lx.pos.Snapshot()
		lx.advance()
	}

	lit := lx.src.Text[start.Offset : end.Offset+1]

	if dots == 0 {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return Token{}, numberRangeError(start, end, lit)
			}
			panic(fmt.Sprintf("digit-only literal %q did not parse as int: %v", lit, err))
		}
		return Token{Kind: Int, Value: IntVal(i), Start: start, End: end}, nil
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Token{}, numberRangeError(start, end, lit)
		}
		panic(fmt.Sprintf("decimal literal %q did not parse as float: %v", lit, err))
	}
	return Token{Kind: Float, Value: FloatVal(f), Start: start, End: end}, nil
}

// scanString reads a double-quoted string literal, opening and closing quotes
// included, and unescapes its contents.
func (lx *Lexer) scanString() (Token, error) {
	start := lx.pos.Snapshot()
	lx.advance()

	var sb strings.Builder
	for {
		if lx.atEnd() {
			return Token{}, unterminatedStringError(start)
		}

		switch lx.cur {
		case '"':
			end := lx.pos.Snapshot()
			lx.advance()
			return Token{Kind: String, Value: StrVal(sb.String()), Start: start, End: end}, nil
		case '\\':
			lx.advance()
			if lx.atEnd() {
				return Token{}, unterminatedStringError(start)
			}
			sb.WriteByte(unescape(lx.cur))
		default:
			sb.WriteByte(lx.cur)
		}
		lx.advance()
	}
}

// scanSymbol reads the longest fixed symbol starting at the current character
// using symbolTable.
func (lx *Lexer) scanSymbol() (Token, error) {
	rule := symbolTable[lx.cur]
	start := lx.pos.Snapshot()

	if next, ok := lx.peek(); ok {
		if k, ok := rule.pairs[next]; ok {
			lx.advance()
			end := lx.pos.Snapshot()
			lx.advance()
			return Token{Kind: k, Start: start, End: end}, nil
		}
	}

	if rule.single == noKind {
		return Token{}, expectedCharError(start, lowestKey(rule.pairs), lx.cur)
	}

	lx.advance()
	return Token{Kind: rule.single, Start: start, End: start}, nil
}

func lowestKey(m map[byte]Kind) byte {
	var low byte
	first := true
	for k := range m {
		if first || k < low {
			low = k
			first = false
		}
	}
	return low
}

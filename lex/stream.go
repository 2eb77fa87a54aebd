package lex

// Stream is a sequence of tokens read from source text, for use by a parser
// that walks the tokens one at a time. A Stream created by a Lexer always ends
// with an EOF token.
type Stream struct {
	tokens []Token
	cur    int
}

// NewStream creates a Stream over the given tokens.
func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Next returns the next token in the stream and advances the stream by one
// token. Once the stream is exhausted, Next keeps returning its final token
// (the EOF token, for a Stream created by a Lexer) without advancing.
func (s *Stream) Next() Token {
	if len(s.tokens) == 0 {
		return Token{Kind: EOF}
	}
	if s.cur >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	t := s.tokens[s.cur]
	s.cur++
	return t
}

// Peek returns the next token in the stream without advancing the stream.
func (s *Stream) Peek() Token {
	if len(s.tokens) == 0 {
		return Token{Kind: EOF}
	}
	if s.cur >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.cur]
}

// HasNext returns whether the stream has any additional tokens.
func (s *Stream) HasNext() bool {
	return s.Remaining() > 0
}

// Remaining returns the number of tokens that have not yet been returned by
// Next.
func (s *Stream) Remaining() int {
	return len(s.tokens) - s.cur
}

// Tokens returns all tokens in the stream, including those already read.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

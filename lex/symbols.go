package lex

// symbolRule is the transition out of the first character of a symbol. single
// is the Kind of the character on its own (noKind if it cannot stand alone),
// and pairs gives the Kind produced when it is followed by a particular second
// character.
type symbolRule struct {
	single Kind
	pairs  map[byte]Kind
}

// symbolTable holds every fixed symbol of the language. Adding a
// multi-character operator means adding an entry to the pairs of its first
// character.
var symbolTable = map[byte]symbolRule{
	'+': {single: Plus},
	'-': {single: Minus, pairs: map[byte]Kind{'>': Arrow}},
	'*': {single: Star},
	'/': {single: Div},
	'^': {single: Pow},
	'(': {single: LParen},
	')': {single: RParen},
	'[': {single: LSquare},
	']': {single: RSquare},
	'{': {single: LBrace},
	'}': {single: RBrace},
	',': {single: Comma},
	'.': {single: Dot},
	'&': {single: And},
	'=': {single: Eq, pairs: map[byte]Kind{'=': EE}},
	'!': {single: noKind, pairs: map[byte]Kind{'=': NE}},
	'<': {single: LT, pairs: map[byte]Kind{'=': LTE}},
	'>': {single: GT, pairs: map[byte]Kind{'=': GTE}},
}

func isSymbolStart(c byte) bool {
	_, ok := symbolTable[c]
	return ok
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentStart(c byte) bool {
	return isLetter(c) || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isLineBreak(c byte) bool {
	return c == '\n' || c == ';'
}

// escapes maps the character after a backslash in a string literal to the
// character it stands for. Any character not listed stands for itself.
var escapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'0':  0,
	'"':  '"',
	'\\': '\\',
}

func unescape(c byte) byte {
	if r, ok := escapes[c]; ok {
		return r
	}
	return c
}

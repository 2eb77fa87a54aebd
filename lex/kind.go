package lex

import (
	"fmt"
	"strings"
)

// Kind is the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Int
	Float
	String
	Identifier
	Keyword
	Plus
	Minus
	Star
	Div
	Pow
	Eq
	LParen
	RParen
	LSquare
	RSquare
	LBrace
	RBrace
	Comma
	Dot
	And
	EE
	NE
	LT
	GT
	LTE
	GTE
	Arrow
	Newline
)

// noKind marks a symbol-table entry whose character is not a token by itself.
const noKind Kind = -1

type kindInfo struct {
	id     string
	human  string
	symbol string
}

var kinds = [...]kindInfo{
	EOF:        {id: "EOF", human: "end of input"},
	Int:        {id: "INT", human: "integer"},
	Float:      {id: "FLOAT", human: "float"},
	String:     {id: "STRING", human: "string"},
	Identifier: {id: "IDENTIFIER", human: "identifier"},
	Keyword:    {id: "KEYWORD", human: "keyword"},
	Plus:       {id: "PLUS", human: "'+'", symbol: "+"},
	Minus:      {id: "MINUS", human: "'-'", symbol: "-"},
	Star:       {id: "STAR", human: "'*'", symbol: "*"},
	Div:        {id: "DIV", human: "'/'", symbol: "/"},
	Pow:        {id: "POW", human: "'^'", symbol: "^"},
	Eq:         {id: "EQ", human: "'='", symbol: "="},
	LParen:     {id: "LPAREN", human: "'('", symbol: "("},
	RParen:     {id: "RPAREN", human: "')'", symbol: ")"},
	LSquare:    {id: "LSQUARE", human: "'['", symbol: "["},
	RSquare:    {id: "RSQUARE", human: "']'", symbol: "]"},
	LBrace:     {id: "LBRACE", human: "'{'", symbol: "{"},
	RBrace:     {id: "RBRACE", human: "'}'", symbol: "}"},
	Comma:      {id: "COMMA", human: "','", symbol: ","},
	Dot:        {id: "DOT", human: "'.'", symbol: "."},
	And:        {id: "AND", human: "'&'", symbol: "&"},
	EE:         {id: "EE", human: "'=='", symbol: "=="},
	NE:         {id: "NE", human: "'!='", symbol: "!="},
	LT:         {id: "LT", human: "'<'", symbol: "<"},
	GT:         {id: "GT", human: "'>'", symbol: ">"},
	LTE:        {id: "LTE", human: "'<='", symbol: "<="},
	GTE:        {id: "GTE", human: "'>='", symbol: ">="},
	Arrow:      {id: "ARROW", human: "'->'", symbol: "->"},
	Newline:    {id: "NEWLINE", human: "newline"},
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kinds)
}

// String returns the upper-case ID of the Kind, such as "EE" or "IDENTIFIER".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].id
}

// Human returns a name for the Kind suitable for showing in error messages.
func (k Kind) Human() string {
	if !k.valid() {
		return k.String()
	}
	return kinds[k].human
}

// Symbol returns the fixed text of a symbol Kind, such as "->" for Arrow. For
// Kinds whose text varies (literals, identifiers, keywords) and for Newline and
// EOF, it returns the empty string.
func (k Kind) Symbol() string {
	if !k.valid() {
		return ""
	}
	return kinds[k].symbol
}

// ParseKind parses the ID of a Kind as returned by Kind.String. It is
// case-insensitive.
func ParseKind(s string) (Kind, error) {
	up := strings.ToUpper(s)
	for i := range kinds {
		if kinds[i].id == up {
			return Kind(i), nil
		}
	}
	return noKind, fmt.Errorf("not a token kind: %q", s)
}

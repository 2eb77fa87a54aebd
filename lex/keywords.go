package lex

import "sort"

// KeywordSet is a set of reserved words. An identifier whose text is in the
// set is lexed as a Keyword instead of an Identifier.
type KeywordSet map[string]bool

// defaultKeywords are the reserved words of Ektoplasma.
var defaultKeywords = []string{
	"var",
	"and", "or", "not",
	"if", "then", "elif", "else",
	"for", "to", "step", "while",
	"fun", "end", "return", "continue", "break",
}

// NewKeywordSet creates a KeywordSet containing the given words.
func NewKeywordSet(words ...string) KeywordSet {
	ks := KeywordSet{}
	for _, w := range words {
		ks[w] = true
	}
	return ks
}

// DefaultKeywords returns a new KeywordSet holding the reserved words of the
// language. Each call returns an independent set that the caller may modify.
func DefaultKeywords() KeywordSet {
	return NewKeywordSet(defaultKeywords...)
}

// Has returns whether word is in the set.
func (ks KeywordSet) Has(word string) bool {
	return ks[word]
}

// Add adds word to the set.
func (ks KeywordSet) Add(word string) {
	ks[word] = true
}

// Remove removes word from the set. Removing a word not in the set has no
// effect.
func (ks KeywordSet) Remove(word string) {
	delete(ks, word)
}

// Len returns the number of words in the set.
func (ks KeywordSet) Len() int {
	return len(ks)
}

// Copy returns a new KeywordSet with the same words as ks.
func (ks KeywordSet) Copy() KeywordSet {
	cp := make(KeywordSet, len(ks))
	for w := range ks {
		cp[w] = true
	}
	return cp
}

// Words returns the words in the set in sorted order.
func (ks KeywordSet) Words() []string {
	words := make([]string, 0, len(ks))
	for w := range ks {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// IsIdentifier returns whether s would be lexed as a single identifier (or
// keyword): a non-empty run of ASCII letters, digits, and underscores that
// does not begin with a digit.
func IsIdentifier(s string) bool {
	if s == "" || isDigit(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

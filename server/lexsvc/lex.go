package lexsvc

import (
	"errors"

	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/ecp/server/serr"
)

// Lex tokenizes text using the service's keywords. name labels the positions
// of the returned tokens.
//
// If text cannot be tokenized, the returned error will match serr.ErrLex with
// errors.Is, and errors.As will find the *lex.Error describing the problem.
func (svc Service) Lex(name, text string) ([]lex.Token, error) {
	toks, err := lex.Tokenize(name, text, lex.WithKeywords(svc.ActiveKeywords()))
	if err != nil {
		var lexErr *lex.Error
		if errors.As(err, &lexErr) {
			return nil, serr.New("", lexErr, serr.ErrLex)
		}
		return nil, err
	}

	return toks, nil
}

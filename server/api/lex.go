package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/ecp/internal/diag"
	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/ecp/server/result"
	"github.com/dekarrin/ecp/server/serr"
)

// DefaultSourceName labels the positions of text lexed without a name.
const DefaultSourceName = "<request>"

// HTTPLex returns a HandlerFunc that tokenizes the source text in the request
// body without storing it. Logging in is not required.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPLex() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epLex)
}

func (api API) epLex(req *http.Request) result.Result {
	user, loggedIn := requireUser(req)

	var lexReq LexRequest
	err := parseJSON(req, &lexReq)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	name := lexReq.Name
	if name == "" {
		name = DefaultSourceName
	}

	toks, err := api.Backend.Lex(name, lexReq.Source)
	if err != nil {
		return lexErrorResult(err)
	}

	userStr := "unauthed client"
	if loggedIn {
		userStr = "user '" + user.Username + "'"
	}
	return result.OK(LexResponse{Tokens: tokenModels(toks)}, "%s lexed %d bytes into %d tokens", userStr, len(lexReq.Source), len(toks))
}

// lexErrorResult converts an error from tokenizing into the Result sent to
// the client. Errors that are not lexing errors become an HTTP-500.
func lexErrorResult(err error) result.Result {
	var lexErr *lex.Error
	if !errors.Is(err, serr.ErrLex) || !errors.As(err, &lexErr) {
		return result.InternalServerError("could not lex: " + err.Error())
	}

	resp := LexErrorResponse{
		Error:      lexErr.Error(),
		Status:     http.StatusUnprocessableEntity,
		Line:       lexErr.Line() + 1,
		Column:     lexErr.Column() + 1,
		Offset:     lexErr.Start.Offset,
		Diagnostic: diag.Render(lexErr, diag.DefaultWidth),
	}
	return result.Unprocessable(resp, "lex error: %s", lexErr.Error())
}

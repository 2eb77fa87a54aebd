package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/result"
	"github.com/dekarrin/ecp/server/serr"
)

type createSourceRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// HTTPCreateSource returns a HandlerFunc that stores a new source document
// owned by the logged-in user.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPCreateSource() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epCreateSource)
}

func (api API) epCreateSource(req *http.Request) result.Result {
	user, _ := requireUser(req)

	var create createSourceRequest
	err := parseJSON(req, &create)
	if err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if create.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}

	src, err := api.Backend.CreateSource(req.Context(), user.ID, create.Name, create.Text)
	if err != nil {
		if errors.Is(err, serr.ErrBadArgument) {
			return result.BadRequest(err.Error(), err.Error())
		}
		return result.InternalServerError("could not create source: " + err.Error())
	}

	return result.Created(sourceModel(src), "user '%s' created source %s", user.Username, src.ID)
}

// HTTPGetAllSources returns a HandlerFunc that lists the sources owned by the
// logged-in user. An admin may pass the query parameter all=true to list the
// sources of every user.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the logged-in user of the client making the request.
func (api API) HTTPGetAllSources() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetAllSources)
}

func (api API) epGetAllSources(req *http.Request) result.Result {
	user, _ := requireUser(req)

	var all bool
	if allStr := req.URL.Query().Get("all"); allStr != "" {
		var err error
		all, err = strconv.ParseBool(allStr)
		if err != nil {
			return result.BadRequest("all: must be true or false", "bad all param %q", allStr)
		}
	}

	if all && user.Role != dao.Admin {
		return result.Forbidden("user '%s' (role %s) get all sources: forbidden", user.Username, user.Role)
	}

	var srcs []dao.Source
	var err error
	if all {
		srcs, err = api.Backend.GetAllSources(req.Context())
	} else {
		srcs, err = api.Backend.GetSources(req.Context(), user.ID)
	}
	if err != nil {
		return result.InternalServerError(err.Error())
	}

	resp := make([]SourceModel, len(srcs))
	for i := range srcs {
		resp[i] = sourceModel(srcs[i])
	}

	return result.OK(resp, "user '%s' got %d sources", user.Username, len(resp))
}

// HTTPGetSource returns a HandlerFunc that gets a single source document. Only
// its owner or an admin may retrieve it.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the source and the logged-in user of the client making the request.
func (api API) HTTPGetSource() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetSource)
}

func (api API) epGetSource(req *http.Request) result.Result {
	src, user, errResult := api.ownedSource(req, "get")
	if errResult != nil {
		return *errResult
	}

	return result.OK(sourceModel(src), "user '%s' got source %s", user.Username, src.ID)
}

// HTTPDeleteSource returns a HandlerFunc that deletes a source document and
// its cached tokens. Only its owner or an admin may delete it.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the source and the logged-in user of the client making the request.
func (api API) HTTPDeleteSource() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epDeleteSource)
}

func (api API) epDeleteSource(req *http.Request) result.Result {
	src, user, errResult := api.ownedSource(req, "delete")
	if errResult != nil {
		return *errResult
	}

	_, err := api.Backend.DeleteSource(req.Context(), src.ID.String())
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete source: " + err.Error())
	}

	return result.NoContent("user '%s' deleted source %s", user.Username, src.ID)
}

// HTTPGetSourceTokens returns a HandlerFunc that gets the tokens of a stored
// source document. Only its owner or an admin may retrieve them. A source whose
// text does not tokenize gets an HTTP-422 describing the problem.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// the ID of the source and the logged-in user of the client making the request.
func (api API) HTTPGetSourceTokens() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetSourceTokens)
}

func (api API) epGetSourceTokens(req *http.Request) result.Result {
	src, user, errResult := api.ownedSource(req, "get tokens of")
	if errResult != nil {
		return *errResult
	}

	cached := src.Tokens != nil

	toks, err := api.Backend.SourceTokens(req.Context(), src)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return result.NotFound()
		}
		return lexErrorResult(err)
	}

	how := "lexed"
	if cached {
		how = "cached"
	}
	return result.OK(LexResponse{Tokens: tokenModels(toks)}, "user '%s' got %d %s tokens of source %s", user.Username, len(toks), how, src.ID)
}

// ownedSource gets the source named by the id URL parameter and checks that
// the logged-in user may access it. If not, the returned Result is the
// response to send.
func (api API) ownedSource(req *http.Request, action string) (dao.Source, dao.User, *result.Result) {
	id := requireIDParam(req)
	user, _ := requireUser(req)

	src, err := api.Backend.GetSource(req.Context(), id.String())
	if err != nil {
		var r result.Result
		if errors.Is(err, serr.ErrNotFound) {
			r = result.NotFound()
		} else {
			r = result.InternalServerError("could not get source: " + err.Error())
		}
		return dao.Source{}, user, &r
	}

	if src.OwnerID != user.ID && user.Role != dao.Admin {
		r := result.Forbidden("user '%s' (role %s) %s source %s: forbidden", user.Username, user.Role, action, id)
		return dao.Source{}, user, &r
	}

	return src, user, nil
}

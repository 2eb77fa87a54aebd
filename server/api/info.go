package api

import (
	"net/http"

	"github.com/dekarrin/ecp/internal/version"
	"github.com/dekarrin/ecp/server/result"
)

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API and
// server, including the reserved words the server tokenizes with.
//
// The handler has requirements for the request context it receives, and if the
// requirements are not met it may return an HTTP-500. The context must contain
// a value denoting whether the client making the request is logged-in.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return httpEndpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	user, loggedIn := requireUser(req)

	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Lexer = version.Current
	resp.Keywords = api.Backend.ActiveKeywords().Words()

	userStr := "unauthed client"
	if loggedIn {
		userStr = "user '" + user.Username + "'"
	}
	return result.OK(resp, "%s got API info", userStr)
}

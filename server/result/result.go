// Package result contains results that are used to write out API responses.
// Every Result carries two messages: the response sent to the client and an
// internal message that is only logged.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every JSON error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// internal builds the internal message from the optional format-and-args
// given to the constructors in this package, using def when none is given.
func internal(def string, internalMsg []interface{}) string {
	if len(internalMsg) < 1 {
		return def
	}
	format, ok := internalMsg[0].(string)
	if !ok {
		return fmt.Sprint(internalMsg...)
	}
	return fmt.Sprintf(format, internalMsg[1:]...)
}

// OK returns a Result containing an HTTP-200 along with a more detailed
// message (if desired; if none is provided it defaults to a generic one) that
// is not displayed to the user.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusOK, respObj, internal("OK", internalMsg))
}

// Created returns a Result containing an HTTP-201 along with a more detailed
// message that is not displayed to the user.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusCreated, respObj, internal("created", internalMsg))
}

// NoContent returns a Result containing an HTTP-204 along with a more detailed
// message that is not displayed to the user.
func NoContent(internalMsg ...interface{}) Result {
	return Response(http.StatusNoContent, nil, internal("no content", internalMsg))
}

// Unprocessable returns a Result containing an HTTP-422 with a JSON body
// describing why the request could not be processed. It is used when a
// request is well-formed but its content is rejected, such as source text
// that does not tokenize.
func Unprocessable(respObj interface{}, internalMsg ...interface{}) Result {
	r := Response(http.StatusUnprocessableEntity, respObj, internal("unprocessable entity", internalMsg))
	r.IsErr = true
	return r
}

// BadRequest returns a Result containing an HTTP-400 along with a more
// detailed message that is not displayed to the user.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return Err(http.StatusBadRequest, userMsg, internal("bad request", internalMsg))
}

// Conflict returns a Result containing an HTTP-409 along with a more detailed
// message that is not displayed to the user.
func Conflict(userMsg string, internalMsg ...interface{}) Result {
	return Err(http.StatusConflict, userMsg, internal("conflict", internalMsg))
}

// MethodNotAllowed returns a Result containing an HTTP-405 along with a more
// detailed message that is not displayed to the user.
func MethodNotAllowed(req *http.Request, internalMsg ...interface{}) Result {
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return Err(http.StatusMethodNotAllowed, userMsg, internal("method not allowed", internalMsg))
}

// NotFound returns a Result containing an HTTP-404 response along with a more
// detailed message that is not displayed to the user.
func NotFound(internalMsg ...interface{}) Result {
	return Err(http.StatusNotFound, "The requested resource was not found", internal("not found", internalMsg))
}

// Forbidden returns a Result containing an HTTP-403 response along with a more
// detailed message that is not displayed to the user.
func Forbidden(internalMsg ...interface{}) Result {
	return Err(http.StatusForbidden, "You don't have permission to do that", internal("forbidden", internalMsg))
}

// Unauthorized returns a Result containing an HTTP-401 response along with the
// proper WWW-Authenticate header. If userMsg is empty, a generic one is used.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}

	return Err(http.StatusUnauthorized, userMsg, internal("unauthorized", internalMsg)).
		WithHeader("WWW-Authenticate", `Bearer realm="ecp server", charset="utf-8"`)
}

// InternalServerError returns a Result containing an HTTP-500 response along
// with a more detailed message that is not displayed to the user.
func InternalServerError(internalMsg ...interface{}) Result {
	return Err(http.StatusInternalServerError, "An internal server error occurred", internal("internal server error", internalMsg))
}

// Response returns a successful JSON Result. If status is
// http.StatusNoContent, respObj will not be read and may be nil.
func Response(status int, respObj interface{}, internalMsg string) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: internalMsg,
		resp:        respObj,
	}
}

// Err returns a JSON error Result with an ErrorResponse body.
func Err(status int, userMsg, internalMsg string) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: internalMsg,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// Redirection returns a Result that permanently redirects to uri.
func Redirection(uri string) Result {
	return Result{
		Status:      http.StatusPermanentRedirect,
		InternalMsg: fmt.Sprintf("redirect -> %s", uri),
		redir:       uri,
	}
}

// TextErr is like Err but it avoids JSON encoding of any kind and writes the
// output as plain text.
func TextErr(status int, userMsg, internalMsg string) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: internalMsg,
		resp:        userMsg,
	}
}

// Result is a response to an API request that has not yet been written.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp  interface{}
	redir string
	hdrs  [][2]string

	// set by calling PrepareMarshaledResponse.
	respJSONBytes []byte
}

// WithHeader returns a copy of r that also sets the given header when
// written.
func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = make([][2]string, len(r.hdrs), len(r.hdrs)+1)
	copy(cp.hdrs, r.hdrs)
	cp.hdrs = append(cp.hdrs, [2]string{name, val})
	return cp
}

// PrepareMarshaledResponse marshals the response body if it is JSON. Calling
// it before WriteResponse lets the caller handle a marshaling error instead of
// WriteResponse panicking. Once it has succeeded, later calls do nothing.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}

	if r.IsJSON && r.Status != http.StatusNoContent && r.redir == "" {
		var err error
		r.respJSONBytes, err = json.Marshal(r.resp)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteResponse writes r to w. It panics if r was never populated or its body
// cannot be marshaled.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte

	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		if r.redir == "" {
			respBytes = r.respJSONBytes
		}
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent && r.redir == "" {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if r.redir != "" {
		w.Header().Set("Location", r.redir)
	}

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.Status)

	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}
}

// Package middle contains middleware for use with the ecp server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/result"
	"github.com/dekarrin/ecp/server/token"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthUser
)

// AuthHandler is middleware that will accept a request, extract the token used
// for authentication, and make calls to get a User entity that represents the
// logged in user from the token.
//
// Keys are added to the request context before the request is passed to the
// next step in the chain. AuthUser will contain the logged-in user, and
// AuthLoggedIn will return whether the user is logged in (only applies for
// optional logins; for non-optional, not being logged in will result in an
// HTTP error being returned before the request is passed to the next handler).
type AuthHandler struct {
	db            dao.UserRepository
	secret        []byte
	required      bool
	defaultUser   dao.User
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	user := ah.defaultUser

	tok, err := token.Get(req)
	if err != nil {
		if ah.required {
			// no token, or one that is not in Bearer format
			ah.reject(w, err)
			return
		}
	} else {
		lookupUser, err := token.Validate(req.Context(), tok, ah.secret, ah.db)
		if err != nil {
			if ah.required {
				ah.reject(w, err)
				return
			}
		} else {
			user = lookupUser
			loggedIn = true
		}
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthUser, user)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

func (ah *AuthHandler) reject(w http.ResponseWriter, err error) {
	r := result.Unauthorized("", err.Error())
	time.Sleep(ah.unauthedDelay)
	r.WriteResponse(w)
}

// RequireAuth returns middleware that responds with an HTTP-401 to any request
// that does not carry a valid token.
func RequireAuth(db dao.UserRepository, secret []byte, unauthDelay time.Duration, defaultUser dao.User) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			defaultUser:   defaultUser,
			required:      true,
			next:          next,
		}
	}
}

// OptionalAuth returns middleware that lets every request through, marking it
// as logged in only if it carries a valid token. Requests without one get
// defaultUser as their AuthUser.
func OptionalAuth(db dao.UserRepository, secret []byte, unauthDelay time.Duration, defaultUser dao.User) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			defaultUser:   defaultUser,
			required:      false,
			next:          next,
		}
	}
}

// User returns the user that the auth middleware attached to req, and whether
// that user is logged in.
func User(req *http.Request) (dao.User, bool) {
	user, _ := req.Context().Value(AuthUser).(dao.User)
	loggedIn, _ := req.Context().Value(AuthLoggedIn).(bool)
	return user, loggedIn
}

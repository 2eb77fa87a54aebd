package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/middle"
	"github.com/stretchr/testify/assert"
)

func Test_requireUser(t *testing.T) {
	t.Run("no auth middleware", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Panics(t, func() { requireUser(req) })
	})

	t.Run("default user from optional auth", func(t *testing.T) {
		assert := assert.New(t)

		guest := dao.User{Username: "guest", Role: dao.Guest}

		var gotUser dao.User
		var gotLoggedIn bool
		next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			gotUser, gotLoggedIn = requireUser(req)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		middle.OptionalAuth(nil, []byte("secret"), 0, guest)(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal("guest", gotUser.Username)
		assert.False(gotLoggedIn)
	})
}

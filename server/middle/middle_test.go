package middle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/dao/inmem"
	"github.com/dekarrin/ecp/server/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middleware-test-secret-middleware-test")

func Test_Auth(t *testing.T) {
	ctx := context.Background()
	repo := inmem.NewUsersRepository()
	u, err := repo.Create(ctx, dao.User{Username: "nepeta", Password: "aGFzaA==", Role: dao.Normal})
	require.NoError(t, err)

	validTok, err := token.Generate(testSecret, u)
	require.NoError(t, err)

	guest := dao.User{Username: "guest", Role: dao.Guest}

	testCases := []struct {
		name           string
		required       bool
		authHeader     string
		expectStatus   int
		expectLoggedIn bool
		expectUsername string
	}{
		{name: "required, no token", required: true, expectStatus: http.StatusUnauthorized},
		{name: "required, bad token", required: true, authHeader: "Bearer nope", expectStatus: http.StatusUnauthorized},
		{name: "required, valid token", required: true, authHeader: "Bearer " + validTok, expectStatus: http.StatusOK, expectLoggedIn: true, expectUsername: "nepeta"},
		{name: "optional, no token", expectStatus: http.StatusOK, expectUsername: "guest"},
		{name: "optional, bad token", authHeader: "Bearer nope", expectStatus: http.StatusOK, expectUsername: "guest"},
		{name: "optional, valid token", authHeader: "Bearer " + validTok, expectStatus: http.StatusOK, expectLoggedIn: true, expectUsername: "nepeta"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var gotUser dao.User
			var gotLoggedIn bool
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				called = true
				gotUser, gotLoggedIn = User(req)
				w.WriteHeader(http.StatusOK)
			})

			mw := OptionalAuth(repo, testSecret, 0, guest)
			if tc.required {
				mw = RequireAuth(repo, testSecret, 0, guest)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()

			mw(next).ServeHTTP(w, req)

			assert.Equal(tc.expectStatus, w.Code)
			if tc.expectStatus != http.StatusOK {
				assert.False(called)
				assert.NotEmpty(w.Header().Get("WWW-Authenticate"))
				return
			}
			assert.True(called)
			assert.Equal(tc.expectLoggedIn, gotLoggedIn)
			assert.Equal(tc.expectUsername, gotUser.Username)
		})
	}
}

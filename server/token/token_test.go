package token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/dao/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("a-test-secret-that-is-long-enough-to-use!")

func Test_Get(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		expect    string
		expectErr bool
	}{
		{name: "no header", header: "", expectErr: true},
		{name: "bearer", header: "Bearer abc.def.ghi", expect: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", expect: "abc"},
		{name: "extra spaces", header: "  Bearer   abc  ", expect: "abc"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", expectErr: true},
		{name: "no token", header: "Bearer", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			actual, err := Get(req)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (dao.UserRepository, dao.User) {
		repo := inmem.NewUsersRepository()
		u, err := repo.Create(ctx, dao.User{Username: "kanaya", Password: "aGFzaA=="})
		require.NoError(t, err)
		return repo, u
	}

	t.Run("valid token", func(t *testing.T) {
		assert := assert.New(t)
		repo, u := setup(t)

		tok, err := Generate(testSecret, u)
		require.NoError(t, err)

		actual, err := Validate(ctx, tok, testSecret, repo)
		require.NoError(t, err)
		assert.Equal(u.ID, actual.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		repo, u := setup(t)

		tok, err := Generate(testSecret, u)
		require.NoError(t, err)

		_, err = Validate(ctx, tok, []byte("some-other-secret-some-other-secret"), repo)
		assert.Error(t, err)
	})

	t.Run("invalidated by logout", func(t *testing.T) {
		repo, u := setup(t)

		tok, err := Generate(testSecret, u)
		require.NoError(t, err)

		u.LastLogoutTime = u.LastLogoutTime.Add(2 * time.Second)
		_, err = repo.Update(ctx, u.ID, u)
		require.NoError(t, err)

		_, err = Validate(ctx, tok, testSecret, repo)
		assert.Error(t, err)
	})

	t.Run("user deleted", func(t *testing.T) {
		repo, u := setup(t)

		tok, err := Generate(testSecret, u)
		require.NoError(t, err)

		_, err = repo.Delete(ctx, u.ID)
		require.NoError(t, err)

		_, err = Validate(ctx, tok, testSecret, repo)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		repo, _ := setup(t)

		_, err := Validate(ctx, "not-a-jwt", testSecret, repo)
		assert.Error(t, err)
	})
}

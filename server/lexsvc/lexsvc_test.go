package lexsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/dekarrin/ecp/lex"
	"github.com/dekarrin/ecp/server/dao"
	"github.com/dekarrin/ecp/server/dao/inmem"
	"github.com/dekarrin/ecp/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() Service {
	return Service{
		DB:           inmem.NewDatastore(),
		PasswordCost: bcrypt.MinCost,
	}
}

func Test_CreateUser(t *testing.T) {
	testCases := []struct {
		name      string
		username  string
		password  string
		email     string
		expectErr error
	}{
		{name: "valid", username: "feferi", password: "glub"},
		{name: "valid with email", username: "feferi", password: "glub", email: "feferi@example.com"},
		{name: "blank username", username: "", password: "glub", expectErr: serr.ErrBadArgument},
		{name: "blank password", username: "feferi", password: "", expectErr: serr.ErrBadArgument},
		{name: "bad email", username: "feferi", password: "glub", email: "not an email", expectErr: serr.ErrBadArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := newTestService()

			actual, err := svc.CreateUser(context.Background(), tc.username, tc.password, tc.email, dao.Normal)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(tc.username, actual.Username)
			assert.NotEqual(tc.password, actual.Password)
			assert.Equal(dao.Normal, actual.Role)
			if tc.email != "" {
				require.NotNil(t, actual.Email)
				assert.Equal(tc.email, actual.Email.Address)
			}
		})
	}
}

func Test_CreateUser_Duplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "eridan", "pass", "", dao.Normal)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "eridan", "other", "", dao.Normal)
	assert.ErrorIs(t, err, serr.ErrAlreadyExists)
}

func Test_LoginLogout(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "gamzee", "honk", "", dao.Normal)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "gamzee", "wrong")
	assert.ErrorIs(err, serr.ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody", "honk")
	assert.ErrorIs(err, serr.ErrBadCredentials)

	loggedIn, err := svc.Login(ctx, "gamzee", "honk")
	require.NoError(t, err)
	assert.Equal(created.ID, loggedIn.ID)
	assert.False(loggedIn.LastLoginTime.IsZero())

	loggedOut, err := svc.Logout(ctx, created.ID)
	require.NoError(t, err)
	assert.Greater(loggedOut.LastLogoutTime.Unix(), created.LastLogoutTime.Unix())

	_, err = svc.Logout(ctx, uuid.New())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_GetUser(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "tavros", "pupa", "", dao.Normal)
	require.NoError(t, err)

	actual, err := svc.GetUser(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal("tavros", actual.Username)

	_, err = svc.GetUser(ctx, "not-a-uuid")
	assert.ErrorIs(err, serr.ErrBadArgument)

	_, err = svc.GetUser(ctx, uuid.New().String())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_DeleteUser_RemovesSources(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "aradia", "ribbit", "", dao.Normal)
	require.NoError(t, err)
	_, err = svc.CreateSource(ctx, u.ID, "a", "x")
	require.NoError(t, err)

	_, err = svc.DeleteUser(ctx, u.ID.String())
	require.NoError(t, err)

	all, err := svc.GetAllSources(ctx)
	require.NoError(t, err)
	assert.Empty(all)
}

func Test_Lex(t *testing.T) {
	t.Run("valid text", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()

		toks, err := svc.Lex("main", "var x = 1")
		require.NoError(t, err)

		var kinds []lex.Kind
		for _, tk := range toks {
			kinds = append(kinds, tk.Kind)
		}
		assert.Equal([]lex.Kind{lex.Keyword, lex.Identifier, lex.Eq, lex.Int, lex.EOF}, kinds)
	})

	t.Run("custom keywords", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()
		svc.Keywords = lex.NewKeywordSet("x")

		toks, err := svc.Lex("main", "VAR x")
		require.NoError(t, err)
		require.Len(t, toks, 3)
		assert.Equal(lex.Identifier, toks[0].Kind)
		assert.Equal(lex.Keyword, toks[1].Kind)
	})

	t.Run("lex error", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()

		_, err := svc.Lex("main", "a $ b")
		assert.ErrorIs(err, serr.ErrLex)
		assert.ErrorIs(err, lex.ErrIllegalCharacter)

		var lexErr *lex.Error
		require.True(t, errors.As(err, &lexErr))
		assert.Equal(2, lexErr.Column())
	})
}

func Test_CreateSource(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "equius", "strong", "", dao.Normal)
	require.NoError(t, err)

	_, err = svc.CreateSource(ctx, u.ID, "", "x")
	assert.ErrorIs(err, serr.ErrBadArgument)

	_, err = svc.CreateSource(ctx, uuid.New(), "a", "x")
	assert.ErrorIs(err, serr.ErrNotFound)

	src, err := svc.CreateSource(ctx, u.ID, "main.ecp", "var x = 1")
	require.NoError(t, err)
	assert.Equal(u.ID, src.OwnerID)

	mine, err := svc.GetSources(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(src.ID, mine[0].ID)

	got, err := svc.GetSource(ctx, src.ID.String())
	require.NoError(t, err)
	assert.Equal("var x = 1", got.Text)

	_, err = svc.DeleteSource(ctx, src.ID.String())
	require.NoError(t, err)
	_, err = svc.GetSource(ctx, src.ID.String())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_SourceTokens(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, text string) (Service, dao.Source) {
		svc := newTestService()
		u, err := svc.CreateUser(ctx, "karkat", "crab", "", dao.Normal)
		require.NoError(t, err)
		src, err := svc.CreateSource(ctx, u.ID, "main.ecp", text)
		require.NoError(t, err)
		return svc, src
	}

	t.Run("tokenizes and caches", func(t *testing.T) {
		assert := assert.New(t)
		svc, src := setup(t, "x = \"hi\"\n")

		toks, err := svc.SourceTokens(ctx, src)
		require.NoError(t, err)
		require.Len(t, toks, 5)
		assert.Equal("hi", toks[2].Value.Str())

		cached, err := svc.GetSource(ctx, src.ID.String())
		require.NoError(t, err)
		require.NotNil(t, cached.Tokens)

		fromCache, err := svc.SourceTokens(ctx, cached)
		require.NoError(t, err)
		require.Len(t, fromCache, len(toks))
		for i := range toks {
			assert.Equal(toks[i].Kind, fromCache[i].Kind)
			assert.Equal(toks[i].Value, fromCache[i].Value)
			assert.Equal(toks[i].Start.Offset, fromCache[i].Start.Offset)
			assert.Equal(toks[i].End.Offset, fromCache[i].End.Offset)
		}
		assert.Equal("\"hi\"", fromCache[2].Lexeme())
	})

	t.Run("corrupt cache is rebuilt", func(t *testing.T) {
		assert := assert.New(t)
		svc, src := setup(t, "a b")

		src, err := svc.DB.Sources().SetTokens(ctx, src.ID, []byte{0xff})
		require.NoError(t, err)

		toks, err := svc.SourceTokens(ctx, src)
		require.NoError(t, err)
		assert.Len(toks, 3)
	})

	t.Run("cache from other keywords is rebuilt", func(t *testing.T) {
		assert := assert.New(t)
		svc, src := setup(t, "var x")

		toks, err := svc.SourceTokens(ctx, src)
		require.NoError(t, err)
		assert.Equal(lex.Keyword, toks[0].Kind)
		assert.Equal(lex.Identifier, toks[1].Kind)

		cached, err := svc.GetSource(ctx, src.ID.String())
		require.NoError(t, err)
		require.NotNil(t, cached.Tokens)

		restarted := svc
		restarted.Keywords = lex.NewKeywordSet("x")

		toks, err = restarted.SourceTokens(ctx, cached)
		require.NoError(t, err)
		assert.Equal(lex.Identifier, toks[0].Kind)
		assert.Equal(lex.Keyword, toks[1].Kind)

		recached, err := restarted.GetSource(ctx, src.ID.String())
		require.NoError(t, err)
		assert.NotEqual(cached.Tokens, recached.Tokens)

		fromCache, err := restarted.SourceTokens(ctx, recached)
		require.NoError(t, err)
		assert.Equal(lex.Keyword, fromCache[1].Kind)
	})

	t.Run("lex error is not cached", func(t *testing.T) {
		assert := assert.New(t)
		svc, src := setup(t, "a ! b")

		_, err := svc.SourceTokens(ctx, src)
		assert.ErrorIs(err, serr.ErrLex)
		assert.ErrorIs(err, lex.ErrExpectedChar)

		after, err := svc.GetSource(ctx, src.ID.String())
		require.NoError(t, err)
		assert.Nil(after.Tokens)
	})
}

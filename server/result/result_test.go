package result

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Result_WriteResponse(t *testing.T) {
	testCases := []struct {
		name         string
		r            Result
		expectStatus int
		expectBody   string
		expectCT     string
		expectErr    bool
		expectHeader [2]string
	}{
		{
			name:         "ok with body",
			r:            OK(map[string]int{"count": 2}),
			expectStatus: http.StatusOK,
			expectBody:   `{"count":2}`,
			expectCT:     "application/json",
		},
		{
			name:         "no content",
			r:            NoContent("user %s logged out", "x"),
			expectStatus: http.StatusNoContent,
			expectBody:   "",
			expectCT:     "application/json",
		},
		{
			name:         "not found",
			r:            NotFound(),
			expectStatus: http.StatusNotFound,
			expectBody:   `{"error":"The requested resource was not found","status":404}`,
			expectCT:     "application/json",
			expectErr:    true,
		},
		{
			name:         "unauthorized sets header",
			r:            Unauthorized(""),
			expectStatus: http.StatusUnauthorized,
			expectBody:   `{"error":"You are not authorized to do that","status":401}`,
			expectCT:     "application/json",
			expectErr:    true,
			expectHeader: [2]string{"WWW-Authenticate", `Bearer realm="ecp server", charset="utf-8"`},
		},
		{
			name:         "unprocessable carries its own body",
			r:            Unprocessable(map[string]string{"error": "illegal character"}),
			expectStatus: http.StatusUnprocessableEntity,
			expectBody:   `{"error":"illegal character"}`,
			expectCT:     "application/json",
			expectErr:    true,
		},
		{
			name:         "text error",
			r:            TextErr(http.StatusInternalServerError, "oops", "panic"),
			expectStatus: http.StatusInternalServerError,
			expectBody:   "oops",
			expectCT:     "text/plain; charset=utf-8",
			expectErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			w := httptest.NewRecorder()
			tc.r.WriteResponse(w)

			assert.Equal(tc.expectStatus, w.Code)
			assert.Equal(tc.expectBody, w.Body.String())
			assert.Equal(tc.expectCT, w.Header().Get("Content-Type"))
			assert.Equal(tc.expectErr, tc.r.IsErr)
			if tc.expectHeader[0] != "" {
				assert.Equal(tc.expectHeader[1], w.Header().Get(tc.expectHeader[0]))
			}
		})
	}
}

func Test_internalMessages(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("OK", OK(nil).InternalMsg)
	assert.Equal("user 'bob' got 3 things", OK(nil, "user '%s' got %d things", "bob", 3).InternalMsg)
	assert.Equal("forbidden", Forbidden().InternalMsg)
}

func Test_Result_WithHeader_doesNotShare(t *testing.T) {
	assert := assert.New(t)

	base := OK(nil).WithHeader("A", "1")
	one := base.WithHeader("B", "2")
	two := base.WithHeader("C", "3")

	w1 := httptest.NewRecorder()
	one.WriteResponse(w1)
	w2 := httptest.NewRecorder()
	two.WriteResponse(w2)

	assert.Equal("", w1.Header().Get("C"))
	assert.Equal("", w2.Header().Get("B"))
	assert.Equal("1", w2.Header().Get("A"))
}

func Test_Err_body(t *testing.T) {
	assert := assert.New(t)

	w := httptest.NewRecorder()
	BadRequest("name: missing").WriteResponse(w)

	var body ErrorResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(ErrorResponse{Error: "name: missing", Status: 400}, body)
}

package invoker

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/gohb/core/models"
	"github.com/tristendillon/gohb/core/state"
)

type countingDoer struct {
	calls atomic.Int32
}

func (d *countingDoer) Do(*http.Request) (*http.Response, error) {
	d.calls.Add(1)
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}, nil
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

type captured struct {
	method string
	path   string
	auth   string
	ctype  string
	body   string
}

func recordingServer(t *testing.T, status int, respBody string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.EscapedPath()
		got.auth = r.Header.Get("Authorization")
		got.ctype = r.Header.Get("Content-Type")
		got.body = string(b)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestInvoke_MissingTokenMakesNoCall(t *testing.T) {
	doer := &countingDoer{}
	inv := New("http://localhost:8080", doer, 0)

	res, err := inv.Invoke(context.Background(), models.Route{Method: "POST", Path: "/users"}, `{"a":1}`, "")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Equal(t, int32(0), doer.calls.Load())
}

func TestInvoke_PostSendsBodyAndHeaders(t *testing.T) {
	srv, got := recordingServer(t, http.StatusCreated, `{"id":7}`)
	inv := New(srv.URL, srv.Client(), 0)

	res, err := inv.Invoke(context.Background(), models.Route{Method: "POST", Path: "/users/:id/notes"}, `{"text":"hi"}`, "tok")
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.Status)
	assert.Equal(t, `{"id":7}`, res.BodyPreview)
	assert.Equal(t, "POST", got.method)
	assert.Equal(t, "/users/:id/notes", got.path, "placeholders stay literal")
	assert.Equal(t, "Bearer tok", got.auth)
	assert.Equal(t, "application/json", got.ctype)
	assert.Equal(t, `{"text":"hi"}`, got.body)
}

func TestInvoke_GetNeverSendsStoredBody(t *testing.T) {
	srv, got := recordingServer(t, http.StatusOK, "ok")
	store := state.NewMemoryStore()
	route := models.Route{Method: "GET", Path: "/users", Line: 4}
	require.NoError(t, store.SetBody(route, `{"ignored":true}`))
	require.NoError(t, store.SetToken("tok"))

	res, err := New(srv.URL, srv.Client(), 0).Invoke(context.Background(), route, store.GetBody(route), store.GetToken())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "GET", got.method)
	assert.Empty(t, got.body)
}

func TestInvoke_LowerCaseMethod(t *testing.T) {
	srv, got := recordingServer(t, http.StatusAccepted, "")
	res, err := New(srv.URL, srv.Client(), 0).Invoke(context.Background(), models.Route{Method: "put", Path: "/x"}, `{"v":1}`, "tok")
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, res.Status)
	assert.Equal(t, "PUT", got.method)
	assert.Equal(t, `{"v":1}`, got.body)
}

func TestInvoke_PreviewIsTruncated(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusOK, strings.Repeat("x", 5000))
	res, err := New(srv.URL, srv.Client(), 16).Invoke(context.Background(), models.Route{Method: "GET", Path: "/big"}, "", "tok")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 16), res.BodyPreview)

	res, err = New(srv.URL, srv.Client(), 0).Invoke(context.Background(), models.Route{Method: "GET", Path: "/big"}, "", "tok")
	require.NoError(t, err)
	assert.Len(t, res.BodyPreview, DefaultPreviewLimit)
}

func TestInvoke_ErrorStatusIsAResult(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusNotFound, "not found")
	res, err := New(srv.URL, srv.Client(), 0).Invoke(context.Background(), models.Route{Method: "DELETE", Path: "/gone"}, `{"x":1}`, "tok")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestInvoke_TransportFailure(t *testing.T) {
	inv := New("http://localhost:8080", failingDoer{}, 0)

	_, err := inv.Invoke(context.Background(), models.Route{Method: "GET", Path: "/"}, "", "tok")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInvoke_BadHost(t *testing.T) {
	_, err := New("http://bad host", &countingDoer{}, 0).Invoke(context.Background(), models.Route{Method: "GET", Path: "/"}, "", "tok")
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestSendsBody(t *testing.T) {
	for _, m := range []string{"POST", "put", "Patch"} {
		assert.True(t, SendsBody(m), m)
	}
	for _, m := range []string{"GET", "DELETE", "HEAD", "OPTIONS"} {
		assert.False(t, SendsBody(m), m)
	}
}

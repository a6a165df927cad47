package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
)

const DefaultPreviewLimit = 1000

// ErrMissingToken is returned before any network I/O when no bearer token
// has been set.
var ErrMissingToken = errors.New("missing bearer token")

// bodyMethods carry the stored request body; every other method is sent
// without one.
var bodyMethods = map[string]bool{
	http.MethodPost:  true,
	http.MethodPut:   true,
	http.MethodPatch: true,
}

// Doer is the part of *http.Client the invoker needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportError wraps a failure to build, send or read a request.
type TransportError struct {
	Route models.Route
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s failed: %v", e.Route, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Result struct {
	Status      int
	BodyPreview string
}

// Invoker fires a route against Host. Client has no timeout of its own;
// callers bound the call through ctx.
type Invoker struct {
	Host         string
	Client       Doer
	PreviewLimit int
}

func New(host string, client Doer, previewLimit int) *Invoker {
	if client == nil {
		client = &http.Client{}
	}
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}
	return &Invoker{Host: host, Client: client, PreviewLimit: previewLimit}
}

// SendsBody reports whether requests for method include the stored body.
func SendsBody(method string) bool {
	return bodyMethods[strings.ToUpper(method)]
}

// URL joins Host and the route path verbatim. Parameter placeholders such
// as `:id` are sent as written.
func (i *Invoker) URL(route models.Route) string {
	return i.Host + route.Path
}

func (i *Invoker) Invoke(ctx context.Context, route models.Route, body, token string) (*Result, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	method := strings.ToUpper(route.Method)
	var payload io.Reader
	if SendsBody(method) && body != "" {
		payload = bytes.NewBufferString(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, i.URL(route), payload)
	if err != nil {
		return nil, &TransportError{Route: route, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("Invoking %s %s", method, req.URL)
	resp, err := i.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Route: route, Err: err}
	}
	defer resp.Body.Close()

	limit := i.PreviewLimit
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	preview, err := io.ReadAll(io.LimitReader(resp.Body, int64(limit)))
	if err != nil {
		return nil, &TransportError{Route: route, Err: err}
	}

	return &Result{Status: resp.StatusCode, BodyPreview: string(preview)}, nil
}

// Package state holds the request configuration users attach to routes:
// one raw JSON body per (method, path) and a single bearer token shared by
// every route. Values survive restarts.
package state

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tristendillon/gohb/core/models"
)

const (
	bodyKeyPrefix = "requestBody"
	// TokenKey keeps the historical spelling so existing state files load.
	TokenKey = "baererToken"
)

// Store is injected into every consumer that reads or writes request state.
// It performs no validation; callers check body text with ValidateBody
// before calling SetBody.
type Store interface {
	GetBody(route models.Route) string
	SetBody(route models.Route, text string) error
	GetToken() string
	SetToken(text string) error
}

// BodyKey is the storage key of a route's request body. Only method and
// path take part, so equal routes in different files or projects share it.
func BodyKey(route models.Route) string {
	return fmt.Sprintf("%s:%s:%s", bodyKeyPrefix, route.Method, route.Path)
}

// ValidateBody accepts empty text (no body) or well-formed JSON.
func ValidateBody(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if !json.Valid([]byte(text)) {
		var v any
		err := json.Unmarshal([]byte(text), &v)
		return fmt.Errorf("request body is not valid JSON: %w", err)
	}
	return nil
}

package models

import (
	"fmt"
	"strings"
)

// Route is one HTTP endpoint declaration reported by the route parser.
// Method keeps the case it was parsed with.
type Route struct {
	Method string   `json:"method"`
	Path   string   `json:"path"`
	Line   int      `json:"line"`
	Groups []string `json:"groups,omitempty"`
}

// Key identifies a route for request state. File and line are not part
// of it, so the same method and path declared twice share one key.
func (r Route) Key() string {
	return fmt.Sprintf("%s:%s", r.Method, r.Path)
}

func (r Route) String() string {
	return fmt.Sprintf("%s %s", r.Method, r.Path)
}

// Valid reports whether the record carries the fields every parser
// output must have.
func (r Route) Valid() bool {
	return strings.TrimSpace(r.Method) != "" && r.Line > 0
}

// FileRoute ties a route to the absolute path of the file it was found in.
type FileRoute struct {
	Route
	File string `json:"__file"`
}

// ProjectRoot is a directory holding the configured entry file.
type ProjectRoot struct {
	Label    string `json:"label"`
	FullPath string `json:"full_path"`
}

// ProjectRoutes is one refreshed project with every route found under it.
type ProjectRoutes struct {
	Root   ProjectRoot
	Routes []FileRoute
}

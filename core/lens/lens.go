package lens

import (
	"context"
	"fmt"
	"sort"

	"github.com/tristendillon/gohb/core/models"
	"github.com/tristendillon/gohb/core/parser"
	"github.com/tristendillon/gohb/core/state"
)

// Lens is the inline annotation shown above a route declaration.
type Lens struct {
	Line  int
	Route models.Route
	Title string
}

// ForFile parses file and returns one lens per route, ordered by line.
// Markers reflect whether a body and a token are already stored.
func ForFile(ctx context.Context, p parser.Parser, store state.Store, file string) []Lens {
	routes := p.Parse(ctx, file)
	lenses := make([]Lens, 0, len(routes))
	for _, r := range routes {
		lenses = append(lenses, Lens{Line: r.Line, Route: r, Title: Title(r, store)})
	}
	sort.SliceStable(lenses, func(i, j int) bool { return lenses[i].Line < lenses[j].Line })
	return lenses
}

func Title(r models.Route, store state.Store) string {
	body, token := "[request body]", "[baerer]"
	if store != nil {
		if store.GetBody(r) != "" {
			body = "[request body*]"
		}
		if store.GetToken() != "" {
			token = "[baerer*]"
		}
	}
	return fmt.Sprintf("%s %s   %s  %s  [run]", r.Method, r.Path, body, token)
}

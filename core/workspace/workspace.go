package workspace

import (
	"context"
	"strings"
	"sync"

	"github.com/tristendillon/gohb/core/aggregator"
	"github.com/tristendillon/gohb/core/discovery"
	"github.com/tristendillon/gohb/core/grouper"
	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
	"github.com/tristendillon/gohb/core/walker"
)

// Workspace recomputes projects and their routes on every Refresh and
// keeps the latest result. Nothing carries over between refreshes.
type Workspace struct {
	Dir        string
	EntryFile  string
	Walker     walker.Walker
	Aggregator *aggregator.Aggregator

	mu       sync.RWMutex
	projects []models.ProjectRoutes
}

func New(dir, entryFile string, w walker.Walker, agg *aggregator.Aggregator) *Workspace {
	return &Workspace{Dir: dir, EntryFile: entryFile, Walker: w, Aggregator: agg}
}

// Refresh discovers project roots and aggregates their routes. Discovery
// failures degrade to an empty workspace. Overlapping refreshes are not
// cancelled; whichever finishes last is kept.
func (ws *Workspace) Refresh(ctx context.Context) []models.ProjectRoutes {
	roots, err := discovery.DiscoverRoots(ws.Dir, discovery.Options{
		EntryFile: ws.EntryFile,
		Walker:    ws.Walker,
	})
	if err != nil {
		logger.Warn("Project discovery failed in %s: %v", ws.Dir, err)
		roots = nil
	}

	projects := make([]models.ProjectRoutes, 0, len(roots))
	for _, root := range roots {
		if ctx.Err() != nil {
			break
		}
		projects = append(projects, models.ProjectRoutes{
			Root:   root,
			Routes: ws.Aggregator.Aggregate(ctx, root),
		})
	}

	ws.mu.Lock()
	ws.projects = projects
	ws.mu.Unlock()

	logger.Debug("Refreshed %d projects in %s", len(projects), ws.Dir)
	return projects
}

func (ws *Workspace) Projects() []models.ProjectRoutes {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.projects
}

// Tree groups the last refresh into one project node per root.
func (ws *Workspace) Tree() []*models.Node {
	return grouper.Tree(ws.Projects())
}

// Find returns every route in the last refresh matching method and path.
// Method comparison ignores case.
func (ws *Workspace) Find(method, path string) []models.FileRoute {
	var out []models.FileRoute
	for _, p := range ws.Projects() {
		for _, r := range p.Routes {
			if strings.EqualFold(r.Method, method) && r.Path == path {
				out = append(out, r)
			}
		}
	}
	return out
}

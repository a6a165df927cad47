package aggregator

import (
	"context"
	"runtime"
	"sort"

	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
	"github.com/tristendillon/gohb/core/parser"
	"github.com/tristendillon/gohb/core/walker"
	"golang.org/x/sync/errgroup"
)

const sourceExt = ".go"

type Aggregator struct {
	Parser      parser.Parser
	Walker      walker.Walker
	Concurrency int
}

func New(p parser.Parser, w walker.Walker, concurrency int) *Aggregator {
	return &Aggregator{Parser: p, Walker: w, Concurrency: concurrency}
}

// Aggregate parses every source file under root and returns all routes
// tagged with their file. A file that fails to parse contributes nothing;
// it never stops its siblings. The result is ordered by file then line.
func (a *Aggregator) Aggregate(ctx context.Context, root models.ProjectRoot) []models.FileRoute {
	files, err := a.Walker.Files(root.FullPath, walker.MatchExt(sourceExt))
	if err != nil {
		logger.Warn("Failed to list source files in %s: %v", root.FullPath, err)
		return []models.FileRoute{}
	}

	// Each task owns one slot, so completion order does not matter.
	perFile := make([][]models.Route, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit())
	for i, file := range files {
		g.Go(func() error {
			perFile[i] = a.Parser.Parse(gctx, file)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.FileRoute, 0, len(files))
	for i, routes := range perFile {
		for _, r := range routes {
			out = append(out, models.FileRoute{Route: r, File: files[i]})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Line < out[j].Line
	})

	logger.Debug("Aggregated %d routes from %d files in %s", len(out), len(files), root.Label)
	return out
}

func (a *Aggregator) limit() int {
	if a.Concurrency > 0 {
		return a.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

package discovery

import (
	"path/filepath"
	"sort"

	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
	"github.com/tristendillon/gohb/core/walker"
)

type Options struct {
	EntryFile string
	Walker    walker.Walker
}

// DiscoverRoots returns one ProjectRoot per directory under workspace that
// directly contains opts.EntryFile. Directories are deduplicated by
// absolute path and returned sorted by it.
func DiscoverRoots(workspace string, opts Options) ([]models.ProjectRoot, error) {
	absWorkspace, err := filepath.Abs(workspace)
	if err != nil {
		return nil, err
	}

	entries, err := opts.Walker.Files(absWorkspace, walker.MatchName(opts.EntryFile))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(entries))
	roots := make([]models.ProjectRoot, 0, len(entries))
	for _, entry := range entries {
		dir := filepath.Dir(entry)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		roots = append(roots, models.ProjectRoot{
			Label:    label(absWorkspace, dir),
			FullPath: dir,
		})
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].FullPath < roots[j].FullPath
	})

	logger.Debug("Discovered %d project roots under %s", len(roots), absWorkspace)
	return roots, nil
}

func label(workspace, dir string) string {
	rel, err := filepath.Rel(workspace, dir)
	if err != nil {
		return dir
	}
	return filepath.ToSlash(rel)
}

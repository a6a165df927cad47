// Package grouper turns flat route lists into the resource tree shown to
// the user. Grouping is pure: the same input always yields the same tree,
// in the same order.
package grouper

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tristendillon/gohb/core/models"
)

// fileSuffixes are stripped from a file's base name when it has to stand
// in for a group name, longest first.
var fileSuffixes = []string{"_handlers", "_handler", "_routes", "_route"}

// Group builds the tree level at depth. Routes carrying a non-empty group
// at depth are bucketed under one group node per distinct name, sorted by
// name. The rest become leaves after the groups, sorted by method then
// path. Each recursion only receives routes with more than depth groups,
// so it ends once no route has a group at the current depth.
func Group(routes []models.FileRoute, depth int) []*models.Node {
	buckets := make(map[string][]models.FileRoute)
	var leaves []models.FileRoute

	for _, r := range routes {
		if name, ok := groupAt(r, depth); ok {
			buckets[name] = append(buckets[name], r)
		} else {
			leaves = append(leaves, r)
		}
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	nodes := make([]*models.Node, 0, len(names)+len(leaves))
	for _, name := range names {
		nodes = append(nodes, models.NewGroupNode(name, Group(buckets[name], depth+1)))
	}

	sortLeaves(leaves)
	for _, r := range leaves {
		nodes = append(nodes, models.NewRouteNode(r))
	}
	return nodes
}

func groupAt(r models.FileRoute, depth int) (string, bool) {
	groups := EffectiveGroups(r)
	if depth >= len(groups) || groups[depth] == "" {
		return "", false
	}
	return groups[depth], true
}

func sortLeaves(leaves []models.FileRoute) {
	sort.SliceStable(leaves, func(i, j int) bool {
		a, b := leaves[i], leaves[j]
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
}

// EffectiveGroups returns the explicit groups of r, or when it has none a
// single group inferred from its path or, for root-like paths, its file.
func EffectiveGroups(r models.FileRoute) []string {
	if len(r.Groups) > 0 {
		return r.Groups
	}
	if name := InferGroup(r.Path, r.File); name != "" {
		return []string{name}
	}
	return nil
}

// InferGroup picks the first path segment that is not a parameter. When
// the path has none, the file name minus its extension and a conventional
// suffix is used, so `course_routes.go` serves `course`.
func InferGroup(path, file string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || isParam(seg) {
			continue
		}
		return seg
	}
	return fileGroup(file)
}

func isParam(seg string) bool {
	return strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "{") || strings.HasPrefix(seg, "*")
}

func fileGroup(file string) string {
	if file == "" {
		return ""
	}
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, suffix := range fileSuffixes {
		if trimmed := strings.TrimSuffix(base, suffix); trimmed != base && trimmed != "" {
			return trimmed
		}
	}
	return base
}

package grouper

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tristendillon/gohb/core/logger"
	"github.com/tristendillon/gohb/core/models"
)

const NoRoutesLabel = "No routes found."

// Tree wraps the grouped routes of each project in a project node.
func Tree(projects []models.ProjectRoutes) []*models.Node {
	nodes := make([]*models.Node, 0, len(projects))
	for _, p := range projects {
		nodes = append(nodes, models.NewProjectNode(p.Root, Group(p.Routes, 0)))
	}
	return nodes
}

// ByFile lists a project's routes per source file instead of per group.
// Files are labelled relative to root.
func ByFile(root models.ProjectRoot, routes []models.FileRoute) *models.Node {
	perFile := make(map[string][]models.FileRoute)
	for _, r := range routes {
		perFile[r.File] = append(perFile[r.File], r)
	}

	files := make([]string, 0, len(perFile))
	for f := range perFile {
		files = append(files, f)
	}
	sort.Strings(files)

	children := make([]*models.Node, 0, len(files))
	for _, f := range files {
		rs := perFile[f]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Line < rs[j].Line })
		leaves := make([]*models.Node, 0, len(rs))
		for _, r := range rs {
			leaves = append(leaves, models.NewRouteNode(r))
		}
		children = append(children, models.NewFileNode(f, relLabel(root.FullPath, f), leaves))
	}
	return models.NewProjectNode(root, children)
}

func relLabel(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return file
	}
	return filepath.ToSlash(rel)
}

// Print logs the tree at level, two spaces of indent per depth. Route
// leaves show where they were declared so they can be opened directly.
func Print(nodes []*models.Node, level logger.LogLevel) {
	log := logger.GetLogFromLevel(level)
	for _, root := range nodes {
		root.Walk(func(n *models.Node, depth int) {
			prefix := strings.Repeat("  ", depth)
			if n.Kind == models.KindRoute {
				log("%s%s  %s:%d", prefix, n.Label(), n.Route.File, n.Route.Line)
				return
			}
			log("%s%s", prefix, n.Label())
			if n.Kind == models.KindProject && len(n.Children) == 0 {
				log("%s  %s", prefix, NoRoutesLabel)
			}
		})
	}
}

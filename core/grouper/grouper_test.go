package grouper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/gohb/core/models"
)

func fr(method, path, file string, groups ...string) models.FileRoute {
	return models.FileRoute{
		Route: models.Route{Method: method, Path: path, Line: 1, Groups: groups},
		File:  file,
	}
}

// shape renders a tree as indented lines so whole trees compare at once.
func shape(nodes []*models.Node) []string {
	var out []string
	for _, root := range nodes {
		root.Walk(func(n *models.Node, depth int) {
			out = append(out, fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), n.Kind, n.Name))
		})
	}
	return out
}

func TestGroup_EndToEndScenario(t *testing.T) {
	routes := []models.FileRoute{
		fr("POST", "/profile", "/app/user_routes.go", "user"),
		fr("GET", "/", "/app/course_routes.go"),
	}

	nodes := Group(routes, 0)

	require.Len(t, nodes, 2)
	assert.Equal(t, "course", nodes[0].Name)
	assert.Equal(t, "user", nodes[1].Name)
	assert.Equal(t, []string{
		"Group course",
		"  Route GET /",
		"Group user",
		"  Route POST /profile",
	}, shape(nodes))
}

func TestGroup_NestedExplicitGroups(t *testing.T) {
	nodes := Group([]models.FileRoute{fr("GET", "/list", "/app/a.go", "user", "admin")}, 0)

	assert.Equal(t, []string{
		"Group user",
		"  Group admin",
		"    Route GET /list",
	}, shape(nodes))
}

func TestGroup_OrderingAtEveryLevel(t *testing.T) {
	routes := []models.FileRoute{
		fr("POST", "/b", "/app/x.go", "zeta"),
		fr("GET", "/b", "/app/x.go", "alpha"),
		fr("GET", "/a", "/app/x.go", "alpha"),
		fr("DELETE", "/z", "/app/x.go", "alpha"),
		fr("GET", "/c", "/app/x.go", "alpha", "inner"),
		fr("PUT", "/q", "/app/x.go", "", "skipped"),
		fr("GET", "/q", "/app/x.go", ""),
	}

	assert.Equal(t, []string{
		"Group alpha",
		"  Group inner",
		"    Route GET /c",
		"  Route DELETE /z",
		"  Route GET /a",
		"  Route GET /b",
		"Group zeta",
		"  Route POST /b",
		"Route GET /q",
		"Route PUT /q",
	}, shape(Group(routes, 0)))
}

func TestGroup_Deterministic(t *testing.T) {
	routes := []models.FileRoute{
		fr("GET", "/users/:id", "/app/users.go"),
		fr("POST", "/users", "/app/users.go"),
		fr("GET", "/", "/app/health_handler.go"),
		fr("PATCH", "/x", "/app/a.go", "v1", "orders", "items"),
		fr("GET", "/y", "/app/a.go", "v1", "orders"),
		fr("GET", "/y", "/app/b.go", "v1", "orders"),
	}

	first := shape(Group(routes, 0))
	reversed := make([]models.FileRoute, len(routes))
	for i, r := range routes {
		reversed[len(routes)-1-i] = r
	}

	assert.Equal(t, first, shape(Group(routes, 0)))
	assert.Equal(t, first, shape(Group(reversed, 0)))
}

func TestGroup_DeepAndEmptyGroups(t *testing.T) {
	deep := make([]string, 200)
	for i := range deep {
		deep[i] = fmt.Sprintf("g%03d", i)
	}
	routes := []models.FileRoute{
		fr("GET", "/deep", "/app/a.go", deep...),
		{Route: models.Route{Method: "GET", Path: "/empty", Line: 1, Groups: []string{}}, File: "/app/a.go"},
	}

	nodes := Group(routes, 0)

	require.Len(t, nodes, 2)
	// An empty groups slice falls back to inference from the path.
	assert.Equal(t, "empty", nodes[0].Name)

	depth := 0
	n := nodes[1]
	for n.Kind == models.KindGroup {
		depth++
		n = n.Children[0]
	}
	assert.Equal(t, 200, depth)
	assert.Equal(t, "GET /deep", n.Name)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil, 0))
}

func TestInferGroup(t *testing.T) {
	tests := []struct {
		path, file, want string
	}{
		{"/users/:id", "/app/x.go", "users"},
		{"/:tenant/orders", "/app/x.go", "orders"},
		{"/{id}/items", "/app/x.go", "items"},
		{"/", "/app/course_routes.go", "course"},
		{"", "/app/course_route.go", "course"},
		{"/:id", "/app/payment_handlers.go", "payment"},
		{"/", "/app/main.go", "main"},
		{"/", "/app/_routes.go", "_routes"},
		{"/", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.path+"|"+tc.file, func(t *testing.T) {
			assert.Equal(t, tc.want, InferGroup(tc.path, tc.file))
		})
	}
}

func TestTreeAndByFile(t *testing.T) {
	root := models.ProjectRoot{Label: "api", FullPath: "/ws/api"}
	routes := []models.FileRoute{
		{Route: models.Route{Method: "POST", Path: "/profile", Line: 8, Groups: []string{"user"}}, File: "/ws/api/user_routes.go"},
		{Route: models.Route{Method: "GET", Path: "/profile", Line: 3, Groups: []string{"user"}}, File: "/ws/api/user_routes.go"},
		{Route: models.Route{Method: "GET", Path: "/", Line: 5}, File: "/ws/api/course_routes.go"},
	}

	tree := Tree([]models.ProjectRoutes{{Root: root, Routes: routes}, {Root: models.ProjectRoot{Label: "empty", FullPath: "/ws/empty"}}})
	require.Len(t, tree, 2)
	assert.Equal(t, models.KindProject, tree[0].Kind)
	assert.Equal(t, []string{"course", "user"}, []string{tree[0].Children[0].Name, tree[0].Children[1].Name})
	assert.Empty(t, tree[1].Children)

	byFile := ByFile(root, routes)
	assert.Equal(t, []string{
		"Project api",
		"  File course_routes.go",
		"    Route GET /",
		"  File user_routes.go",
		"    Route GET /profile",
		"    Route POST /profile",
	}, shape([]*models.Node{byFile}))
}

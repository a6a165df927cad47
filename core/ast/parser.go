package ast

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"strings"

	"github.com/tristendillon/gohb/core/models"
	"golang.org/x/tools/go/ast/inspector"
)

var routeMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "OPTIONS": true, "HEAD": true,
}

// ParseFile reads a Go source file and returns every route registration
// found in it.
func ParseFile(path string) ([]models.Route, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, parser.AllErrors)
	if err != nil {
		return nil, err
	}

	return ExtractRoutes(fset, f), nil
}

// ExtractRoutes finds calls of the form `x.GET("/path", ...)`. Groups are
// taken from `.Group("/prefix")` calls the receiver was built from, either
// chained directly or through a variable assigned earlier in the file.
func ExtractRoutes(fset *token.FileSet, f *ast.File) []models.Route {
	routes := []models.Route{}
	groups := make(map[string][]string)

	insp := inspector.New([]*ast.File{f})
	filter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.ValueSpec)(nil),
		(*ast.CallExpr)(nil),
	}

	insp.Preorder(filter, func(n ast.Node) {
		switch node := n.(type) {
		case *ast.AssignStmt:
			if len(node.Lhs) != len(node.Rhs) {
				return
			}
			for i, lhs := range node.Lhs {
				trackGroup(groups, lhs, node.Rhs[i])
			}
		case *ast.ValueSpec:
			if len(node.Names) != len(node.Values) {
				return
			}
			for i, name := range node.Names {
				trackGroup(groups, name, node.Values[i])
			}
		case *ast.CallExpr:
			sel, ok := node.Fun.(*ast.SelectorExpr)
			if !ok || !routeMethods[sel.Sel.Name] {
				return
			}
			routes = append(routes, models.Route{
				Method: sel.Sel.Name,
				Path:   stringArg(node, 0),
				Line:   fset.Position(node.Pos()).Line,
				Groups: groupsOf(groups, sel.X),
			})
		}
	})

	return routes
}

func trackGroup(groups map[string][]string, lhs ast.Expr, rhs ast.Expr) {
	ident, ok := lhs.(*ast.Ident)
	if !ok || ident.Name == "_" {
		return
	}
	if g := groupsOf(groups, rhs); len(g) > 0 {
		groups[ident.Name] = g
	} else {
		delete(groups, ident.Name)
	}
}

func groupsOf(groups map[string][]string, expr ast.Expr) []string {
	switch e := expr.(type) {
	case *ast.Ident:
		if g, ok := groups[e.Name]; ok {
			return append([]string(nil), g...)
		}
	case *ast.ParenExpr:
		return groupsOf(groups, e.X)
	case *ast.CallExpr:
		sel, ok := e.Fun.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Group" {
			return nil
		}
		parent := groupsOf(groups, sel.X)
		if name := strings.Trim(stringArg(e, 0), "/"); name != "" {
			return append(parent, name)
		}
		return parent
	}
	return nil
}

func stringArg(call *ast.CallExpr, i int) string {
	if len(call.Args) <= i {
		return ""
	}
	lit, ok := call.Args[i].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return ""
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return ""
	}
	return s
}

package models

import "fmt"

type NodeKind int

const (
	KindProject NodeKind = iota
	KindFile
	KindGroup
	KindRoute
)

func (k NodeKind) String() string {
	switch k {
	case KindProject:
		return "Project"
	case KindFile:
		return "File"
	case KindGroup:
		return "Group"
	case KindRoute:
		return "Route"
	default:
		return "Unknown"
	}
}

// Node is one entry of the presentation tree. Route is only set for
// KindRoute nodes; FullPath only for KindProject and KindFile nodes.
type Node struct {
	Kind     NodeKind
	Name     string
	FullPath string
	Route    *FileRoute
	Children []*Node
}

func NewGroupNode(name string, children []*Node) *Node {
	return &Node{Kind: KindGroup, Name: name, Children: children}
}

func NewRouteNode(route FileRoute) *Node {
	r := route
	return &Node{Kind: KindRoute, Name: r.Route.String(), Route: &r}
}

func NewProjectNode(root ProjectRoot, children []*Node) *Node {
	return &Node{Kind: KindProject, Name: root.Label, FullPath: root.FullPath, Children: children}
}

func NewFileNode(path, label string, children []*Node) *Node {
	return &Node{Kind: KindFile, Name: label, FullPath: path, Children: children}
}

func (n *Node) IsLeaf() bool {
	return n.Kind == KindRoute
}

// Label is the single line shown for the node in a printed tree.
func (n *Node) Label() string {
	switch n.Kind {
	case KindRoute:
		return fmt.Sprintf("%s (Line %d)", n.Name, n.Route.Line)
	case KindProject, KindFile:
		return fmt.Sprintf("%s -> %s", n.Name, n.FullPath)
	default:
		return n.Name
	}
}

// Walk visits n and its descendants depth first, passing each node's depth.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(node *Node, depth int), depth int) {
	fn(n, depth)
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

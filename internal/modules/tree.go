package modules

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Node is an entry of the module tree. Path is the full module path; a node
// without children is a leaf.
type Node struct {
	Path     string `json:"path" yaml:"path"`
	Children Tree   `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Tree is an ordered list of sibling nodes.
type Tree []*Node

// Walk calls fn for every node depth-first, parents before children.
func (t Tree) Walk(fn func(n *Node, depth int)) {
	t.walk(fn, 0)
}

func (t Tree) walk(fn func(n *Node, depth int), depth int) {
	for _, n := range t {
		fn(n, depth)
		n.Children.walk(fn, depth+1)
	}
}

// Paths returns every node path depth-first.
func (t Tree) Paths() []string {
	var paths []string
	t.Walk(func(n *Node, _ int) { paths = append(paths, n.Path) })
	return paths
}

func (t Tree) get(path string) (*Node, bool) {
	for _, n := range t {
		if n.Path == path {
			return n, true
		}
	}
	return nil, false
}

// set replaces the children of an existing path or appends a new node.
func (t Tree) set(path string, children Tree) Tree {
	if n, ok := t.get(path); ok {
		n.Children = children
		return t
	}
	return append(t, &Node{Path: path, Children: children})
}

// SortNames orders module names by depth, then by locale collation within
// the same depth. The input is not modified.
func SortNames(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)

	col := collate.New(language.English)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := strings.Count(sorted[i], "/"), strings.Count(sorted[j], "/")
		if di != dj {
			return di < dj
		}
		return col.CompareString(sorted[i], sorted[j]) < 0
	})

	return sorted
}

// verboseNode is one path segment of the unflattened tree.
type verboseNode struct {
	name     string
	children []*verboseNode
	index    map[string]*verboseNode
}

func (v *verboseNode) child(name string) *verboseNode {
	if c, ok := v.index[name]; ok {
		return c
	}
	c := &verboseNode{name: name, index: make(map[string]*verboseNode)}
	v.children = append(v.children, c)
	v.index[name] = c
	return c
}

// BuildTree builds the display tree for the given module names.
//
// The names are first split on "/" into one node per segment. The result is
// then flattened: a segment that is not itself a module and has a single
// child is merged into that child, and a segment that is not a module but
// has several children hands them to its parent. For
// ["a", "a/b/c", "x/y/z"] the result is {a: {a/b/c}, x/y/z}.
//
// Sibling order follows SortNames, so the tree is a deterministic function
// of the set of names.
func BuildTree(names []string) Tree {
	if len(names) == 0 {
		return Tree{}
	}

	sorted := SortNames(names)
	isModule := make(map[string]bool, len(sorted))
	root := &verboseNode{index: make(map[string]*verboseNode)}

	for _, name := range sorted {
		isModule[name] = true
		parent := root
		for _, part := range strings.Split(name, "/") {
			parent = parent.child(part)
		}
	}

	return flatten(root, nil, isModule)
}

func flatten(node *verboseNode, prefix []string, isModule map[string]bool) Tree {
	path := strings.Join(prefix, "/")

	if len(node.children) == 0 {
		return Tree{{Path: path}}
	}
	if len(node.children) == 1 && !isModule[path] {
		only := node.children[0]
		return flatten(only, appendPart(prefix, only.name), isModule)
	}

	flattened := Tree{}
	for _, child := range node.children {
		childParts := appendPart(prefix, child.name)
		childPath := strings.Join(childParts, "/")
		childTree := flatten(child, childParts, isModule)

		if isModule[childPath] {
			children := childTree
			if n, ok := childTree.get(childPath); ok {
				children = n.Children
			}
			flattened = flattened.set(childPath, children)
			continue
		}

		for _, n := range childTree {
			flattened = flattened.set(n.Path, n.Children)
		}
	}

	// A module keeps its own node even when reached through a merged chain.
	if isModule[path] {
		return Tree{{Path: path, Children: flattened}}
	}
	return flattened
}

func appendPart(prefix []string, part string) []string {
	parts := make([]string, len(prefix), len(prefix)+1)
	copy(parts, prefix)
	return append(parts, part)
}

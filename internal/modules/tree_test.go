package modules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func leaf(path string) *Node { return &Node{Path: path} }

func branch(path string, children ...*Node) *Node {
	return &Node{Path: path, Children: Tree(children)}
}

func TestBuildTree(t *testing.T) {
	testCases := []struct {
		name  string
		names []string
		want  Tree
	}{
		{
			name:  "collapses chains",
			names: []string{"a", "a/b/c", "x/y/z"},
			want:  Tree{branch("a", leaf("a/b/c")), leaf("x/y/z")},
		},
		{
			name:  "single module",
			names: []string{"@api/Commands"},
			want:  Tree{leaf("@api/Commands")},
		},
		{
			name:  "modules nest under real parents",
			names: []string{"@api/Commands", "@api", "@utils/misc", "@utils"},
			want: Tree{
				branch("@api", leaf("@api/Commands")),
				branch("@utils", leaf("@utils/misc")),
			},
		},
		{
			name:  "non-module parent hands children up",
			names: []string{"@api/Commands", "@api/Settings", "@utils/misc"},
			want: Tree{
				leaf("@api/Commands"),
				leaf("@api/Settings"),
				leaf("@utils/misc"),
			},
		},
		{
			name:  "single root prefix is merged",
			names: []string{"@webpack/common/react", "@webpack/common/utils"},
			want: Tree{
				leaf("@webpack/common/react"),
				leaf("@webpack/common/utils"),
			},
		},
		{
			name: "deep mixture",
			names: []string{
				"@components/Flex",
				"@components/settings/tabs/plugins",
				"@components/settings/tabs/themes",
				"@components/settings",
				"@main",
			},
			want: Tree{
				leaf("@main"),
				leaf("@components/Flex"),
				branch("@components/settings",
					leaf("@components/settings/tabs/plugins"),
					leaf("@components/settings/tabs/themes"),
				),
			},
		},
		{
			name:  "module at the end of a merged chain keeps its node",
			names: []string{"a", "a/b"},
			want:  Tree{branch("a", leaf("a/b"))},
		},
		{
			name:  "merged prefix ending in a module with children",
			names: []string{"x", "@webpack/common", "@webpack/common/react"},
			want: Tree{
				leaf("x"),
				branch("@webpack/common", leaf("@webpack/common/react")),
			},
		},
		{
			name:  "repeated segment below a merged prefix",
			names: []string{"settings/@utils/@utils", "settings/@utils"},
			want:  Tree{branch("settings/@utils", leaf("settings/@utils/@utils"))},
		},
		{
			name:  "empty",
			names: nil,
			want:  Tree{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildTree(tc.names)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("BuildTree(%v) mismatch (-want +got):\n%s", tc.names, diff)
			}
		})
	}
}

func TestBuildTreeIgnoresInputOrder(t *testing.T) {
	a := BuildTree([]string{"x/y/z", "a/b/c", "a"})
	b := BuildTree([]string{"a", "a/b/c", "x/y/z"})

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("tree depends on input order (-a +b):\n%s", diff)
	}
}

func TestBuildTreeKeepsEveryModule(t *testing.T) {
	names := []string{
		"a", "a/b", "x", "@webpack/common", "@webpack/common/react",
		"@components/settings", "@components/settings/tabs/plugins",
	}

	counts := make(map[string]int)
	BuildTree(names).Walk(func(n *Node, _ int) { counts[n.Path]++ })
	for _, name := range names {
		assert.Equal(t, 1, counts[name], "module %s", name)
	}
}

func TestSortNames(t *testing.T) {
	in := []string{"b", "a/z", "C", "a"}
	got := SortNames(in)

	assert.Equal(t, []string{"a", "b", "C", "a/z"}, got)
	assert.Equal(t, []string{"b", "a/z", "C", "a"}, in, "input must not be modified")
}

func TestTreeWalkAndPaths(t *testing.T) {
	tree := BuildTree([]string{"a", "a/b/c", "x/y/z"})

	assert.Equal(t, []string{"a", "a/b/c", "x/y/z"}, tree.Paths())

	depths := map[string]int{}
	tree.Walk(func(n *Node, depth int) { depths[n.Path] = depth })
	assert.Equal(t, map[string]int{"a": 0, "a/b/c": 1, "x/y/z": 0}, depths)

	assert.False(t, tree[0].IsLeaf())
	assert.True(t, tree[1].IsLeaf())
}

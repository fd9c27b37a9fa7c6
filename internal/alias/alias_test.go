package alias

import (
	"testing"
	"testing/fstest"

	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/tsconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectFS() fstest.MapFS {
	file := &fstest.MapFile{Data: []byte("export {};\n")}
	return fstest.MapFS{
		"src/api/Commands/index.ts":   file,
		"src/api/Commands/types.ts":   file,
		"src/api/Settings.ts":         file,
		"src/api/Badges/index.tsx":    file,
		"src/api/util/helpers.tsx":    file,
		"src/api/README.md":           file,
		"src/utils/index.ts":          file,
		"src/plugins.ts":              file,
		"src/components/Button.tsx":   file,
		"src/components/Flex/Flex.ts": file,
	}
}

func TestBuild(t *testing.T) {
	cfg := &tsconfig.Config{
		BaseURL: "./src/",
		Paths: []tsconfig.PathMapping{
			{Alias: "@api/*", Targets: []string{"./api/*"}},
			{Alias: "@utils", Targets: []string{"./utils"}},
			{Alias: "@plugins", Targets: []string{"./plugins"}},
			{Alias: "@components/*", Targets: []string{"./components/*", "./ignored/*"}},
			{Alias: "@empty", Targets: nil},
		},
	}

	table, err := Build(projectFS(), cfg)
	require.NoError(t, err)

	expected := map[string]string{
		"src/api/Commands/index.ts":   "@api/Commands",
		"src/api/Commands/types.ts":   "@api/Commands/types",
		"src/api/Settings.ts":         "@api/Settings",
		"src/api/Badges/index.tsx":    "@api/Badges",
		"src/api/util/helpers.tsx":    "@api/util/helpers",
		"src/utils/index.ts":          "@utils",
		"src/plugins.ts":              "@plugins",
		"src/components/Button.tsx":   "@components/Button",
		"src/components/Flex/Flex.ts": "@components/Flex/Flex",
	}

	for filePath, module := range expected {
		got, ok := table.Get(filePath)
		require.True(t, ok, filePath)
		assert.Equal(t, module, got, filePath)

		back, ok := table.Get(module)
		require.True(t, ok, module)
		assert.Equal(t, filePath, back, module)
	}

	assert.Equal(t, len(expected), table.Len())
	_, ok := table.Get("src/api/README.md")
	assert.False(t, ok)
}

func TestBuildStaticPathNotFound(t *testing.T) {
	cfg := &tsconfig.Config{
		BaseURL: ".",
		Paths:   []tsconfig.PathMapping{{Alias: "@missing", Targets: []string{"./src/missing"}}},
	}

	_, err := Build(projectFS(), cfg)
	require.Error(t, err)
	assert.True(t, docerrors.HasCode(err, docerrors.ErrCodePathNotFound))
	assert.Contains(t, err.Error(), "path not found: src/missing")
}

func TestBuildStaticPrefersIndex(t *testing.T) {
	file := &fstest.MapFile{Data: []byte("")}
	fsys := fstest.MapFS{
		"lib/index.ts": file,
		"lib.ts":       file,
	}
	cfg := &tsconfig.Config{BaseURL: ".", Paths: []tsconfig.PathMapping{{Alias: "@lib", Targets: []string{"lib"}}}}

	table, err := Build(fsys, cfg)
	require.NoError(t, err)

	got, _ := table.Get("@lib")
	assert.Equal(t, "lib/index.ts", got)
}

func TestBuildLaterAliasWinsForSharedFile(t *testing.T) {
	fsys := fstest.MapFS{"lib/index.ts": &fstest.MapFile{}}
	cfg := &tsconfig.Config{
		BaseURL: ".",
		Paths: []tsconfig.PathMapping{
			{Alias: "@first", Targets: []string{"lib"}},
			{Alias: "@second", Targets: []string{"lib"}},
		},
	}

	table, err := Build(fsys, cfg)
	require.NoError(t, err)

	alias, ok := table.Get("lib/index.ts")
	require.True(t, ok)
	assert.Equal(t, "@second", alias)

	for _, a := range []string{"@first", "@second"} {
		got, ok := table.Get(a)
		require.True(t, ok, a)
		assert.Equal(t, "lib/index.ts", got, a)
	}
	assert.Equal(t, []Entry{
		{Alias: "@first", Path: "lib/index.ts"},
		{Alias: "@second", Path: "lib/index.ts"},
	}, table.Entries())
}

func TestBuildEmptyWildcardDir(t *testing.T) {
	cfg := &tsconfig.Config{
		BaseURL: ".",
		Paths:   []tsconfig.PathMapping{{Alias: "@nothing/*", Targets: []string{"nothing/*"}}},
	}

	table, err := Build(projectFS(), cfg)
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestModuleName(t *testing.T) {
	testCases := map[string][2]string{
		"@api/Commands":       {"@api", "/Commands/index.ts"},
		"@api/Badges":         {"@api", "/Badges/index.tsx"},
		"@api/Settings":       {"@api", "/Settings.ts"},
		"@api/indexer":        {"@api", "/indexer.ts"},
		"@api/types.d":        {"@api", "/types.d.ts"},
		"@webpack/common/foo": {"@webpack", "/common/foo.tsx"},
	}

	for want, in := range testCases {
		assert.Equal(t, want, ModuleName(in[0], in[1]))
	}
}

func TestEntriesSorted(t *testing.T) {
	table := NewTable()
	table.Set("src/b.ts", "@b")
	table.Set("src/a.ts", "@a")
	table.Set("src/c/index.ts", "@c")

	assert.Equal(t, []Entry{
		{Alias: "@a", Path: "src/a.ts"},
		{Alias: "@b", Path: "src/b.ts"},
		{Alias: "@c", Path: "src/c/index.ts"},
	}, table.Entries())

	a, ok := table.AliasOf("src/a.ts")
	assert.True(t, ok)
	assert.Equal(t, "@a", a)
}

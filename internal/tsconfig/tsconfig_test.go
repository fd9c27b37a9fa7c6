package tsconfig

import (
	"os"
	"path/filepath"
	"testing"

	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vencordLike = `{
    // comments are allowed
    "compilerOptions": {
        "baseUrl": "./src/",
        "paths": {
            "@main/*": ["./main/*"],
            "@api/*": ["./api/*"],
            "@utils": ["./utils"],
            "@components/*": ["./components/*"], // trailing commas too
        },
    },
    "include": ["src/**/*"],
}`

func TestParseKeepsOrder(t *testing.T) {
	cfg, err := Parse([]byte(vencordLike))
	require.NoError(t, err)

	assert.Equal(t, "./src/", cfg.BaseURL)
	require.Len(t, cfg.Paths, 4)

	aliases := make([]string, 0, len(cfg.Paths))
	for _, p := range cfg.Paths {
		aliases = append(aliases, p.Alias)
	}
	assert.Equal(t, []string{"@main/*", "@api/*", "@utils", "@components/*"}, aliases)
	assert.Equal(t, []string{"./utils"}, cfg.Paths[2].Targets)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"compilerOptions": {}}`))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.BaseURL)
	assert.Empty(t, cfg.Paths)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`{"compilerOptions": `))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"compilerOptions": {"paths": ["x"]}}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"compilerOptions": {"paths": {"@a": "not-an-array"}}}`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsconfig.json")
	require.NoError(t, os.WriteFile(path, []byte(vencordLike), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Len(t, cfg.Paths, 4)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, docerrors.HasCode(err, docerrors.ErrCodeFileNotFound))
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsconfig.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, docerrors.HasCode(err, docerrors.ErrCodeTSConfigInvalid))
}

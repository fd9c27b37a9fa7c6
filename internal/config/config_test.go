package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docerrors "github.com/conneroisu/docsite/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "./dist/docs/", cfg.Site.OutDir)
	assert.Equal(t, "Modules", cfg.TypeScript.ModulesGroup)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".docsite.yml")
	content := `
site:
  src_dir: ./site
  out_dir: ./public-out
  pages:
    - "guides/**/*.md"
typescript:
  reflection: build/api.json
markdown:
  highlight_style: dracula
  with_classes: false
watch:
  debounce: 1s
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, "./site", cfg.Site.SrcDir)
	assert.Equal(t, "./public-out", cfg.Site.OutDir)
	assert.Equal(t, []string{"guides/**/*.md"}, cfg.Site.Pages)
	assert.Equal(t, "build/api.json", cfg.TypeScript.Reflection)
	assert.Equal(t, "tsconfig.json", cfg.TypeScript.TSConfig)
	assert.Equal(t, "dracula", cfg.Markdown.HighlightStyle)
	assert.False(t, cfg.Markdown.WithClasses)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLogLevelFlagOverridesFile(t *testing.T) {
	v := viper.New()
	v.Set("log.level", "warn")
	v.Set("log-level", "debug")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromNormalizesBase(t *testing.T) {
	testCases := []struct {
		base, want string
	}{
		{"/docs", "/docs/"},
		{"/docs/", "/docs/"},
		{"/", "/"},
		{"", "/"},
	}

	for _, tc := range testCases {
		v := viper.New()
		v.Set("site.base", tc.base)

		cfg, err := LoadFrom(v)
		require.NoError(t, err, tc.base)
		assert.Equal(t, tc.want, cfg.Site.Base, tc.base)
	}
}

func TestTraversalErrorCode(t *testing.T) {
	v := viper.New()
	v.Set("site.out_dir", "../../etc")

	_, err := LoadFrom(v)
	require.Error(t, err)
	assert.True(t, docerrors.HasCode(err, docerrors.ErrCodePathTraversal), "got %v", err)

	cfg := Default()
	cfg.Site.Pages = []string{"docs/../../*.md"}
	assert.True(t, docerrors.HasCode(validateConfig(cfg), docerrors.ErrCodePathTraversal))
}

func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty out dir", func(c *Config) { c.Site.OutDir = "" }, "out_dir must not be empty"},
		{"absolute out dir", func(c *Config) { c.Site.OutDir = "/tmp/out" }, "relative path"},
		{"traversal out dir", func(c *Config) { c.Site.OutDir = "../out" }, "path traversal"},
		{"root out dir", func(c *Config) { c.Site.OutDir = "./" }, "project root"},
		{"base without slash", func(c *Config) { c.Site.Base = "docs" }, "must start with /"},
		{"traversal page glob", func(c *Config) { c.Site.Pages = []string{"../**/*.md"} }, "path traversal"},
		{"empty page glob", func(c *Config) { c.Site.Pages = []string{""} }, "empty pattern"},
		{"missing tsconfig", func(c *Config) { c.TypeScript.TSConfig = "" }, "tsconfig must not be empty"},
		{"missing group", func(c *Config) { c.TypeScript.ModulesGroup = "" }, "modules_group"},
		{"missing stylesheet", func(c *Config) { c.Responsive.Stylesheet = "" }, "stylesheet"},
		{"missing icons", func(c *Config) { c.Icons.SourceDir = "" }, "icons config"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "debounce"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "unknown format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := validateConfig(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

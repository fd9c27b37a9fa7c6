// Package config provides configuration management for docsite using Viper
// for loading from files, environment variables and command-line flags.
//
// The defaults describe the layout of a typical Astro documentation site:
// sources under ./docs, output under ./dist/docs/, TypeScript path aliases in
// tsconfig.json and the reflection tree produced by `typedoc --json`.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	docerrors "github.com/conneroisu/docsite/internal/errors"
)

type Config struct {
	Site       SiteConfig       `yaml:"site" mapstructure:"site"`
	TypeScript TypeScriptConfig `yaml:"typescript" mapstructure:"typescript"`
	Markdown   MarkdownConfig   `yaml:"markdown" mapstructure:"markdown"`
	Responsive ResponsiveConfig `yaml:"responsive" mapstructure:"responsive"`
	Icons      IconsConfig      `yaml:"icons" mapstructure:"icons"`
	Watch      WatchConfig      `yaml:"watch" mapstructure:"watch"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

type SiteConfig struct {
	URL       string   `yaml:"url" mapstructure:"url"`
	Base      string   `yaml:"base" mapstructure:"base"`
	SrcDir    string   `yaml:"src_dir" mapstructure:"src_dir"`
	PublicDir string   `yaml:"public_dir" mapstructure:"public_dir"`
	OutDir    string   `yaml:"out_dir" mapstructure:"out_dir"`
	Pages     []string `yaml:"pages" mapstructure:"pages"`
}

type TypeScriptConfig struct {
	TSConfig     string `yaml:"tsconfig" mapstructure:"tsconfig"`
	Reflection   string `yaml:"reflection" mapstructure:"reflection"`
	ModulesGroup string `yaml:"modules_group" mapstructure:"modules_group"`
}

type MarkdownConfig struct {
	HighlightStyle string `yaml:"highlight_style" mapstructure:"highlight_style"`
	WithClasses    bool   `yaml:"with_classes" mapstructure:"with_classes"`
}

type ResponsiveConfig struct {
	Stylesheet string `yaml:"stylesheet" mapstructure:"stylesheet"`
}

type IconsConfig struct {
	SourceDir   string `yaml:"source_dir" mapstructure:"source_dir"`
	Spritesheet string `yaml:"spritesheet" mapstructure:"spritesheet"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			URL:       "https://vendicated.github.io/",
			Base:      "/",
			SrcDir:    "./docs",
			PublicDir: "./docs/public",
			OutDir:    "./dist/docs/",
			Pages:     []string{"**/*.md"},
		},
		TypeScript: TypeScriptConfig{
			TSConfig:     "tsconfig.json",
			Reflection:   "dist/typedoc.json",
			ModulesGroup: "Modules",
		},
		Markdown: MarkdownConfig{
			HighlightStyle: "catppuccin-mocha",
			WithClasses:    true,
		},
		Responsive: ResponsiveConfig{
			Stylesheet: "docs/assets/responsive.scss",
		},
		Icons: IconsConfig{
			SourceDir:   "node_modules/@vscode/codicons/src/icons",
			Spritesheet: "node_modules/@vscode/codicons/dist/codicon.svg",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers Default() with viper so environment variables for
// unset keys are still picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("site.url", d.Site.URL)
	v.SetDefault("site.base", d.Site.Base)
	v.SetDefault("site.src_dir", d.Site.SrcDir)
	v.SetDefault("site.public_dir", d.Site.PublicDir)
	v.SetDefault("site.out_dir", d.Site.OutDir)
	v.SetDefault("site.pages", d.Site.Pages)
	v.SetDefault("typescript.tsconfig", d.TypeScript.TSConfig)
	v.SetDefault("typescript.reflection", d.TypeScript.Reflection)
	v.SetDefault("typescript.modules_group", d.TypeScript.ModulesGroup)
	v.SetDefault("markdown.highlight_style", d.Markdown.HighlightStyle)
	v.SetDefault("markdown.with_classes", d.Markdown.WithClasses)
	v.SetDefault("responsive.stylesheet", d.Responsive.Stylesheet)
	v.SetDefault("icons.source_dir", d.Icons.SourceDir)
	v.SetDefault("icons.spritesheet", d.Icons.Spritesheet)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v, applying defaults and validation.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Handle pages set via env (workaround for viper slice handling)
	if v.IsSet("site.pages") && len(config.Site.Pages) == 0 {
		config.Site.Pages = v.GetStringSlice("site.pages")
	}
	if len(config.Site.Pages) == 0 {
		config.Site.Pages = Default().Site.Pages
	}

	config.Site.Base = normalizeBase(config.Site.Base)

	// The global --log-level flag is bound to the top-level key.
	if lvl := v.GetString("log-level"); lvl != "" {
		config.Log.Level = lvl
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for correctness
func validateConfig(config *Config) error {
	if err := validateSiteConfig(&config.Site); err != nil {
		return fmt.Errorf("site config: %w", err)
	}
	if err := validateTypeScriptConfig(&config.TypeScript); err != nil {
		return fmt.Errorf("typescript config: %w", err)
	}
	if config.Responsive.Stylesheet == "" {
		return fmt.Errorf("responsive config: stylesheet must not be empty")
	}
	if config.Icons.SourceDir == "" || config.Icons.Spritesheet == "" {
		return fmt.Errorf("icons config: source_dir and spritesheet must not be empty")
	}
	if config.Watch.Debounce < 0 {
		return fmt.Errorf("watch config: debounce must not be negative")
	}
	switch config.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log config: unknown format %q", config.Log.Format)
	}

	return nil
}

func validateSiteConfig(config *SiteConfig) error {
	if config.SrcDir == "" {
		return fmt.Errorf("src_dir must not be empty")
	}
	if config.OutDir == "" {
		return fmt.Errorf("out_dir must not be empty")
	}
	if err := validateOutputPath(config.OutDir); err != nil {
		return fmt.Errorf("out_dir: %w", err)
	}
	if config.Base != "" && !strings.HasPrefix(config.Base, "/") {
		return fmt.Errorf("base %q must start with /", config.Base)
	}
	for _, pattern := range config.Pages {
		if pattern == "" {
			return fmt.Errorf("pages contains an empty pattern")
		}
		if strings.Contains(pattern, "..") {
			return docerrors.NewValidationError(docerrors.ErrCodePathTraversal,
				"page pattern contains path traversal: "+pattern)
		}
	}

	return nil
}

func validateTypeScriptConfig(config *TypeScriptConfig) error {
	if config.TSConfig == "" {
		return fmt.Errorf("tsconfig must not be empty")
	}
	if config.Reflection == "" {
		return fmt.Errorf("reflection must not be empty")
	}
	if config.ModulesGroup == "" {
		return fmt.Errorf("modules_group must not be empty")
	}

	return nil
}

// validateOutputPath rejects output locations that escape the project.
func validateOutputPath(path string) error {
	cleanPath := filepath.Clean(path)

	if filepath.IsAbs(cleanPath) {
		return fmt.Errorf("must be a relative path: %s", path)
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return docerrors.NewValidationError(docerrors.ErrCodePathTraversal,
			"contains path traversal: "+path)
	}
	if cleanPath == "." {
		return fmt.Errorf("must not be the project root")
	}

	return nil
}

// normalizeBase makes the site base end in "/" so routes can be appended
// to it. An empty base is the site root.
func normalizeBase(base string) string {
	if base == "" {
		return "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

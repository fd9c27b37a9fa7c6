// Package site builds the documentation site: markdown pages, one page per
// TypeScript module, the module manifest and the highlight stylesheet.
package site

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/docsite/internal/alias"
	"github.com/conneroisu/docsite/internal/codicon"
	"github.com/conneroisu/docsite/internal/config"
	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/logging"
	"github.com/conneroisu/docsite/internal/markdown"
	"github.com/conneroisu/docsite/internal/modules"
	"github.com/conneroisu/docsite/internal/responsive"
	"github.com/conneroisu/docsite/internal/tsconfig"
	"github.com/conneroisu/docsite/internal/typedoc"
)

// Builder performs documentation builds. A Builder may be reused for
// successive builds, as the watch command does.
type Builder struct {
	config   *config.Config
	logger   logging.Logger
	renderer *markdown.Renderer
	sprites  *codicon.Spritesheet
}

// BuildOptions contains options for a single build.
type BuildOptions struct {
	// OutDir overrides site.out_dir when set.
	OutDir string
	// Clean removes the output directory first.
	Clean bool
}

// Result summarises a build.
type Result struct {
	OutDir      string        `json:"outDir"`
	Pages       []string      `json:"pages"`
	ModulePages int           `json:"modulePages"`
	Modules     int           `json:"modules"`
	Fresh       int           `json:"fresh"`
	Breakpoint  string        `json:"breakpoint"`
	Duration    time.Duration `json:"duration"`
}

// NewBuilder creates a Builder for cfg.
func NewBuilder(cfg *config.Config, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Builder{
		config: cfg,
		logger: logger.WithComponent("site"),
		renderer: markdown.New(markdown.Options{
			HighlightStyle: cfg.Markdown.HighlightStyle,
			WithClasses:    cfg.Markdown.WithClasses,
		}),
		sprites: codicon.NewSpritesheet(cfg.Icons.SourceDir, cfg.Icons.Spritesheet),
	}
}

// Build performs one complete build.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) (*Result, error) {
	start := time.Now()

	outDir := b.config.Site.OutDir
	if opts.OutDir != "" {
		outDir = opts.OutDir
	}
	result := &Result{OutDir: outDir}

	if opts.Clean {
		b.logger.Info(ctx, "Cleaning output directory", "dir", outDir)
		if err := os.RemoveAll(outDir); err != nil {
			return nil, docerrors.NewIOError(docerrors.ErrCodeWriteFailed, "cannot clean output directory", err).
				WithFile(outDir)
		}
	}

	bp, err := responsive.ReadBreakpoint(b.config.Responsive.Stylesheet)
	if err != nil {
		return nil, err
	}
	result.Breakpoint = bp.Value
	b.logger.Debug(ctx, "Read breakpoint", "value", bp.Value)

	symbols, err := LoadSymbols(b.config)
	if err != nil {
		return nil, err
	}
	result.Modules = symbols.Modules.Len()
	result.Fresh = len(symbols.Fresh)
	b.logger.Info(ctx, "Loaded modules",
		"aliases", symbols.Aliases.Len(),
		"modules", result.Modules,
		"fresh", result.Fresh)

	// Icons are tracked per build so removed pages do not keep theirs.
	b.sprites.Reset()

	out := &writer{dir: outDir}

	pages, err := b.renderPages(ctx, bp, out)
	if err != nil {
		return nil, err
	}
	result.Pages = pages

	n, err := b.renderModulePages(ctx, bp, symbols, out)
	if err != nil {
		return nil, err
	}
	result.ModulePages = n

	if err := writeManifest(out, symbols); err != nil {
		return nil, err
	}
	if err := b.writeStylesheet(out); err != nil {
		return nil, err
	}
	if err := copyPublic(out, b.config.Site.PublicDir); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	b.logger.Info(ctx, "Build completed",
		"pages", len(result.Pages),
		"module_pages", result.ModulePages,
		"duration", result.Duration)

	return result, nil
}

// Symbols is the TypeScript side of the site: aliases, modules, the module
// tree and the modules contributing new exports.
type Symbols struct {
	Aliases *alias.Table
	Modules *modules.Set
	Tree    modules.Tree
	Fresh   []*modules.Module
}

// LoadAliases reads tsconfig and resolves every path alias relative to the
// tsconfig's directory.
func LoadAliases(cfg *config.Config) (*alias.Table, error) {
	ts, err := tsconfig.Load(cfg.TypeScript.TSConfig)
	if err != nil {
		return nil, err
	}
	root := os.DirFS(filepath.Dir(cfg.TypeScript.TSConfig))
	return alias.Build(root, ts)
}

// LoadSymbols loads aliases and the reflection tree.
func LoadSymbols(cfg *config.Config) (*Symbols, error) {
	aliases, err := LoadAliases(cfg)
	if err != nil {
		return nil, err
	}

	project, err := typedoc.Load(cfg.TypeScript.Reflection)
	if err != nil {
		return nil, err
	}

	set, err := modules.Load(project, aliases, cfg.TypeScript.ModulesGroup)
	if err != nil {
		return nil, err
	}

	fresh, err := set.Fresh()
	if err != nil {
		return nil, err
	}

	return &Symbols{
		Aliases: aliases,
		Modules: set,
		Tree:    modules.BuildTree(set.Names()),
		Fresh:   fresh,
	}, nil
}

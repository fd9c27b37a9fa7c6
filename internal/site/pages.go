package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/conneroisu/docsite/internal/codicon"
	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/modules"
	"github.com/conneroisu/docsite/internal/responsive"
)

// FindPages lists the markdown sources under srcDir matching any of the
// patterns, sorted and without duplicates.
func FindPages(srcDir string, patterns []string) ([]string, error) {
	fsys := os.DirFS(srcDir)

	seen := make(map[string]bool)
	var pages []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, docerrors.NewConfigError(docerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid page pattern %q", pattern), err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				pages = append(pages, m)
			}
		}
	}
	sort.Strings(pages)

	return pages, nil
}

// Route returns the URL path of a page relative to the site base, and the
// file it is written to. "index.md" maps to "", "guide/setup.md" to
// "guide/setup/".
func Route(source string) (route, file string) {
	trimmed := strings.TrimSuffix(source, path.Ext(source))
	switch {
	case trimmed == "index":
		return "", "index.html"
	case path.Base(trimmed) == "index":
		dir := path.Dir(trimmed)
		return dir + "/", dir + "/index.html"
	default:
		return trimmed + "/", trimmed + "/index.html"
	}
}

func (b *Builder) renderPages(ctx context.Context, bp responsive.Breakpoint, out *writer) ([]string, error) {
	sources, err := FindPages(b.config.Site.SrcDir, b.config.Site.Pages)
	if err != nil {
		return nil, err
	}

	fsys := os.DirFS(b.config.Site.SrcDir)
	written := make([]string, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := b.renderPage(ctx, fsys, src, bp, out)
		if err != nil {
			return nil, err
		}
		written = append(written, file)
	}

	return written, nil
}

func (b *Builder) renderPage(ctx context.Context, fsys fs.FS, src string, bp responsive.Breakpoint, out *writer) (string, error) {
	data, err := fs.ReadFile(fsys, src)
	if err != nil {
		return "", docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read page", err).WithFile(src)
	}

	doc, err := b.renderer.Render(ctx, data)
	if err != nil {
		return "", wrapFile(err, src)
	}

	route, file := Route(src)
	page := b.config.Site.Base + route

	for _, name := range frontMatterIcons(doc.FrontMatter) {
		if err := b.sprites.AddIcon(page, name); err != nil {
			return "", wrapFile(err, src)
		}
	}
	sprites, err := b.sprites.SpritesheetForPage(page)
	if err != nil {
		return "", wrapFile(err, src)
	}

	var buf bytes.Buffer
	err = Shell(PageData{
		Title:      doc.Title(),
		Base:       b.config.Site.Base,
		SiteURL:    canonical(b.config.Site.URL, page),
		Breakpoint: bp,
		Sprites:    sprites,
		Outline:    doc.Outline,
		Content:    templ.Raw(doc.HTML),
	}).Render(ctx, &buf)
	if err != nil {
		return "", docerrors.NewBuildError(docerrors.ErrCodeRenderFailed, "cannot render page", err).WithFile(src)
	}

	if err := out.write(file, buf.Bytes()); err != nil {
		return "", err
	}
	b.logger.Debug(ctx, "Rendered page", "source", src, "file", file)

	return file, nil
}

// frontMatterIcons reads the optional "icons" list of a page.
func frontMatterIcons(fm map[string]any) []string {
	list, ok := fm["icons"].([]any)
	if !ok {
		return nil
	}
	icons := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			icons = append(icons, s)
		}
	}
	return icons
}

// ModuleRoute returns the route and file of a module page.
func ModuleRoute(name string) (route, file string) {
	return "modules/" + name + "/", "modules/" + name + "/index.html"
}

func (b *Builder) renderModulePages(ctx context.Context, bp responsive.Breakpoint, symbols *Symbols, out *writer) (int, error) {
	links := moduleLinks{base: b.config.Site.Base, pages: make(map[*modules.Module]bool, len(symbols.Fresh))}
	for _, m := range symbols.Fresh {
		links.pages[m] = true
	}

	for _, m := range symbols.Fresh {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		exports, err := symbols.Modules.Exports(m)
		if err != nil {
			return 0, err
		}

		route, file := ModuleRoute(m.Name)
		page := b.config.Site.Base + route
		for _, e := range exports {
			if err := b.sprites.AddIcon(page, codicon.KindIcon(e.Kind)); err != nil {
				return 0, err
			}
		}
		sprites, err := b.sprites.SpritesheetForPage(page)
		if err != nil {
			return 0, err
		}

		var buf bytes.Buffer
		err = Shell(PageData{
			Title:      m.Name,
			Base:       b.config.Site.Base,
			SiteURL:    canonical(b.config.Site.URL, page),
			Breakpoint: bp,
			Sprites:    sprites,
			Content:    moduleContent(m, exports, links),
		}).Render(ctx, &buf)
		if err != nil {
			return 0, docerrors.NewBuildError(docerrors.ErrCodeRenderFailed, "cannot render module page", err).
				WithContext("module", m.Name)
		}

		if err := out.write(file, buf.Bytes()); err != nil {
			return 0, err
		}
		b.logger.Debug(ctx, "Rendered module page", "module", m.Name, "exports", len(exports))
	}

	return len(symbols.Fresh), nil
}

// moduleLinks knows which modules got a page of their own.
type moduleLinks struct {
	base  string
	pages map[*modules.Module]bool
}

// href returns the URL of m's page, or "" when m has none.
func (l moduleLinks) href(m *modules.Module) string {
	if !l.pages[m] {
		return ""
	}
	route, _ := ModuleRoute(m.Name)
	return l.base + route
}

func moduleContent(m *modules.Module, exports []modules.ModuleExport, links moduleLinks) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1><code>`+templ.EscapeString(m.Name)+`</code></h1>`+
			`<p class="source">`+templ.EscapeString(m.Src)+`</p><ul class="exports">`); err != nil {
			return err
		}

		for _, e := range exports {
			if _, err := io.WriteString(w, `<li class="export-`+e.Kind.String()+`">`); err != nil {
				return err
			}
			if err := Icon(codicon.KindIcon(e.Kind)).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<code>`+templ.EscapeString(e.Name)+`</code>`); err != nil {
				return err
			}
			if origin := e.Source.Module; origin != nil && origin != m {
				name := `<code>` + templ.EscapeString(origin.Name) + `</code>`
				if href := links.href(origin); href != "" {
					name = `<a href="` + templ.EscapeString(href) + `">` + templ.EscapeString(origin.Name) + `</a>`
				}
				if _, err := io.WriteString(w, ` <span class="origin">from `+name+`</span>`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</li>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</ul>`)
		return err
	})
}

func canonical(siteURL, page string) string {
	return strings.TrimSuffix(siteURL, "/") + page
}

func wrapFile(err error, file string) error {
	var de *docerrors.DocsiteError
	if errors.As(err, &de) && de.FilePath == "" {
		return de.WithFile(file)
	}
	return err
}

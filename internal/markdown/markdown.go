// Package markdown renders documentation pages to HTML.
//
// Pages may open with YAML front matter. The body is GitHub-flavoured
// markdown; fenced code blocks are highlighted with chroma. Raw HTML in the
// source is not passed through.
package markdown

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"go.abhg.dev/goldmark/frontmatter"

	docerrors "github.com/conneroisu/docsite/internal/errors"
)

// Options configures a Renderer.
type Options struct {
	// HighlightStyle names a chroma style.
	HighlightStyle string
	// WithClasses emits CSS classes on highlighted code instead of inline
	// styles. The matching rules come from WriteStylesheet.
	WithClasses bool
}

// DefaultOptions returns the options used by MD.
func DefaultOptions() Options {
	return Options{
		HighlightStyle: "catppuccin-mocha",
		WithClasses:    true,
	}
}

// Document is a rendered page.
type Document struct {
	HTML        string         `json:"html"`
	FrontMatter map[string]any `json:"frontMatter"`
	Outline     []Heading      `json:"outline"`
}

// Title returns the front matter title, falling back to the first h1.
func (d *Document) Title() string {
	if title, ok := d.FrontMatter["title"].(string); ok && title != "" {
		return title
	}
	for _, h := range d.Outline {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md   goldmark.Markdown
	opts Options
}

// New builds a Renderer.
func New(opts Options) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&frontmatter.Extender{},
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.HighlightStyle),
				highlighting.WithFormatOptions(
					html.WithClasses(opts.WithClasses),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &Renderer{md: md, opts: opts}
}

// Render converts source to a Document.
func (r *Renderer) Render(ctx context.Context, source []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pctx := parser.NewContext()
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf, parser.WithContext(pctx)); err != nil {
		return nil, docerrors.NewBuildError(docerrors.ErrCodeRenderFailed, "markdown conversion failed", err)
	}

	meta := map[string]any{}
	if fm := frontmatter.Get(pctx); fm != nil {
		if err := fm.Decode(&meta); err != nil {
			return nil, docerrors.NewBuildError(docerrors.ErrCodeRenderFailed, "invalid front matter", err)
		}
	}

	doc := &Document{HTML: buf.String(), FrontMatter: meta}

	outline, err := Outline(doc.HTML)
	if err != nil {
		return nil, docerrors.NewBuildError(docerrors.ErrCodeRenderFailed, "cannot read heading outline", err)
	}
	doc.Outline = outline

	return doc, nil
}

// WriteStylesheet writes the CSS rules for the configured highlight style.
// Nothing is written when code is highlighted with inline styles.
func (r *Renderer) WriteStylesheet(w io.Writer) error {
	if !r.opts.WithClasses {
		return nil
	}
	formatter := html.New(html.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(r.opts.HighlightStyle))
}

var defaultRenderer = sync.OnceValue(func() *Renderer {
	return New(DefaultOptions())
})

// MD renders source with the default options and returns only the HTML.
func MD(ctx context.Context, source string) (string, error) {
	doc, err := defaultRenderer().Render(ctx, []byte(source))
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

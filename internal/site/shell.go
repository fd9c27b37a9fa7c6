package site

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/conneroisu/docsite/internal/markdown"
	"github.com/conneroisu/docsite/internal/responsive"
)

// PageData is everything the page shell needs.
type PageData struct {
	Title      string
	// Base is the site root ending in "/". Site links are rooted at it;
	// in-page fragments stay relative to the page.
	Base       string
	SiteURL    string
	Breakpoint responsive.Breakpoint
	Sprites    string
	Outline    []markdown.Heading
	Content    templ.Component
}

// Shell wraps page content in the site layout: head, inline icon sprites,
// table of contents and main column.
func Shell(p PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(p.Title)+`</title>`+
			`<link rel="canonical" href="`+templ.EscapeString(p.SiteURL)+`">`+
			`<link rel="stylesheet" href="`+templ.EscapeString(p.Base+"highlight.css")+`">`+
			`<style>`+
			`@media `+p.Breakpoint.MediaMobile()+`{nav.toc{display:none}}`+
			`@media `+p.Breakpoint.MediaDesktop()+`{nav.toc{position:sticky;top:0}}`+
			`</style></head><body>`); err != nil {
			return err
		}

		if p.Sprites != "" {
			if _, err := io.WriteString(w, `<svg xmlns="http://www.w3.org/2000/svg" style="display:none">`+
				p.Sprites+`</svg>`); err != nil {
				return err
			}
		}

		if len(p.Outline) > 0 {
			if err := tableOfContents(p.Outline).Render(ctx, w); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<main>`); err != nil {
			return err
		}
		if p.Content != nil {
			if err := p.Content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func tableOfContents(headings []markdown.Heading) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav class="toc"><ul>`); err != nil {
			return err
		}
		for _, h := range headings {
			if h.ID == "" {
				continue
			}
			if _, err := io.WriteString(w, `<li class="toc-h`+strconv.Itoa(h.Level)+`">`+
				`<a href="#`+templ.EscapeString(h.ID)+`">`+templ.EscapeString(h.Text)+`</a></li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></nav>`)
		return err
	})
}

// Icon renders a reference to a sprite in the page's spritesheet.
func Icon(name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<svg class="codicon" aria-hidden="true"><use href="#`+
			templ.EscapeString(name)+`"></use></svg>`)
		return err
	})
}

// Package codicon collects the codicons used by each page and renders the
// inline SVG spritesheets that pages reference with <use href="#name">.
package codicon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	docerrors "github.com/conneroisu/docsite/internal/errors"
)

// Spritesheet records icon usage per page.
type Spritesheet struct {
	iconDir   string
	fullSheet string

	mu    sync.Mutex
	pages map[string]*iconSet
}

type iconSet struct {
	order []string
	seen  map[string]bool
}

// NewSpritesheet returns an empty Spritesheet. iconDir holds one <name>.svg
// per icon and fullSheet is the combined codicon sheet.
func NewSpritesheet(iconDir, fullSheet string) *Spritesheet {
	return &Spritesheet{
		iconDir:   iconDir,
		fullSheet: fullSheet,
		pages:     make(map[string]*iconSet),
	}
}

// AddIcon records that page uses the icon name.
func (s *Spritesheet) AddIcon(page, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.pages[page]
	if !ok {
		set = &iconSet{seen: make(map[string]bool)}
		s.pages[page] = set
	}
	if !set.seen[name] {
		set.seen[name] = true
		set.order = append(set.order, name)
	}
	return nil
}

// IconsForPage returns the icons used by page in first-use order.
func (s *Spritesheet) IconsForPage(page string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.pages[page]
	if !ok {
		return []string{}
	}
	icons := make([]string, len(set.order))
	copy(icons, set.order)
	return icons
}

// Reset forgets all recorded usage.
func (s *Spritesheet) Reset() {
	s.mu.Lock()
	s.pages = make(map[string]*iconSet)
	s.mu.Unlock()
}

// SpritesheetForPage returns the <symbol> elements for every icon used by
// page, concatenated in first-use order.
func (s *Spritesheet) SpritesheetForPage(page string) (string, error) {
	var sb strings.Builder
	for _, name := range s.IconsForPage(page) {
		path := filepath.Join(s.iconDir, name+".svg")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", docerrors.NewIOError(docerrors.ErrCodeIconNotFound,
				fmt.Sprintf("icon %q not found", name), err).
				WithFile(path).
				WithContext("page", page)
		}
		sb.WriteString(toSymbol(name, string(data)))
	}
	return sb.String(), nil
}

// FullSpritesheet returns every symbol of the combined codicon sheet,
// without its enclosing <svg> element.
func (s *Spritesheet) FullSpritesheet() (string, error) {
	data, err := os.ReadFile(s.fullSheet)
	if err != nil {
		return "", docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read spritesheet", err).
			WithFile(s.fullSheet)
	}

	svg := string(data)
	start := strings.Index(svg, "<symbol")
	end := strings.Index(svg, "</svg")
	if start == -1 || end == -1 || end < start {
		return "", docerrors.NewValidationError(docerrors.ErrCodeSpritesheetFormat,
			"spritesheet has no symbols").
			WithFile(s.fullSheet)
	}
	return svg[start:end], nil
}

// toSymbol turns a standalone icon into a <symbol> with the icon's name as id.
func toSymbol(name, svg string) string {
	svg = strings.Replace(svg, "<svg", `<symbol id="`+name+`"`, 1)
	if i := strings.LastIndex(svg, "</svg>"); i != -1 {
		svg = svg[:i] + "</symbol>" + svg[i+len("</svg>"):]
	}
	return svg
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return docerrors.NewValidationError(docerrors.ErrCodeInvalidIconName,
			fmt.Sprintf("invalid icon name %q", name))
	}
	return nil
}

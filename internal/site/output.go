package site

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/modules"
)

// writer places build output under dir. Every file is replaced atomically
// so a server reading the output never sees a partial page.
type writer struct {
	dir string
}

func (w *writer) write(name string, data []byte) error {
	path := filepath.Join(w.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return docerrors.NewIOError(docerrors.ErrCodeWriteFailed, "cannot create output directory", err).
			WithFile(path)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return docerrors.NewIOError(docerrors.ErrCodeWriteFailed, "cannot create pending file", err).
			WithFile(path)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return docerrors.NewIOError(docerrors.ErrCodeWriteFailed, "cannot write output", err).WithFile(path)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return docerrors.NewIOError(docerrors.ErrCodeWriteFailed, "cannot replace output", err).WithFile(path)
	}
	return nil
}

// Manifest is the content of modules.json.
type Manifest struct {
	Tree    modules.Tree    `json:"tree"`
	Modules []ManifestEntry `json:"modules"`
}

// ManifestEntry describes one module.
type ManifestEntry struct {
	Name    string   `json:"name"`
	Src     string   `json:"src"`
	Fresh   bool     `json:"fresh"`
	Exports []string `json:"exports"`
}

// NewManifest builds the manifest for symbols.
func NewManifest(symbols *Symbols) (*Manifest, error) {
	fresh := make(map[*modules.Module]bool, len(symbols.Fresh))
	for _, m := range symbols.Fresh {
		fresh[m] = true
	}

	manifest := &Manifest{Tree: symbols.Tree, Modules: []ManifestEntry{}}
	for _, m := range symbols.Modules.All() {
		exports, err := symbols.Modules.Exports(m)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(exports))
		for i, e := range exports {
			names[i] = e.Name
		}
		manifest.Modules = append(manifest.Modules, ManifestEntry{
			Name:    m.Name,
			Src:     m.Src,
			Fresh:   fresh[m],
			Exports: names,
		})
	}
	return manifest, nil
}

func writeManifest(out *writer, symbols *Symbols) error {
	manifest, err := NewManifest(symbols)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return docerrors.NewBuildError(docerrors.ErrCodeWriteFailed, "cannot encode module manifest", err)
	}
	return out.write("modules.json", append(data, '\n'))
}

func (b *Builder) writeStylesheet(out *writer) error {
	var buf bytes.Buffer
	if err := b.renderer.WriteStylesheet(&buf); err != nil {
		return docerrors.NewBuildError(docerrors.ErrCodeRenderFailed, "cannot write highlight stylesheet", err)
	}
	if buf.Len() == 0 {
		return nil
	}
	return out.write("highlight.css", buf.Bytes())
}

// copyPublic copies static assets verbatim. A missing directory is not an
// error.
func copyPublic(out *writer, dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	return fs.WalkDir(os.DirFS(dir), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read public directory", err).
				WithFile(filepath.Join(dir, p))
		}
		if d.IsDir() {
			return nil
		}

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(p)))
		if err != nil {
			return docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read public file", err).
				WithFile(p)
		}
		return out.write(p, data)
	})
}

// Package alias builds the two-way map between source files and the import
// aliases declared in compilerOptions.paths.
//
//	table.Get("src/api/Commands/index.ts") // "@api/Commands"
//	table.Get("@api/Commands")             // "src/api/Commands/index.ts"
package alias

import (
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/tsconfig"
)

var moduleSuffix = regexp.MustCompile(`(?:/index)?\.(tsx?)$`)

// staticCandidates are tried in order for a non-wildcard target.
var staticCandidates = []string{"/index.ts", "/index.tsx", ".ts", ".tsx"}

// Table is a bidirectional path/alias map.
type Table struct {
	byPath  map[string]string
	byAlias map[string]string
}

// Entry is one alias and the file it resolves to.
type Entry struct {
	Alias string `json:"alias" yaml:"alias"`
	Path  string `json:"path" yaml:"path"`
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		byPath:  make(map[string]string),
		byAlias: make(map[string]string),
	}
}

// Set records path <-> alias.
func (t *Table) Set(filePath, alias string) {
	t.byPath[filePath] = alias
	t.byAlias[alias] = filePath
}

// Get resolves key in either direction: a source path yields its alias and
// an alias yields its source path.
func (t *Table) Get(key string) (string, bool) {
	if v, ok := t.byPath[key]; ok {
		return v, true
	}
	v, ok := t.byAlias[key]
	return v, ok
}

// AliasOf returns the alias recorded for a source path.
func (t *Table) AliasOf(filePath string) (string, bool) {
	v, ok := t.byPath[filePath]
	return v, ok
}

// Len returns the number of aliases.
func (t *Table) Len() int {
	return len(t.byAlias)
}

// Entries lists every alias with its path, sorted by alias.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.byAlias))
	for a, p := range t.byAlias {
		entries = append(entries, Entry{Alias: a, Path: p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Alias < entries[j].Alias })
	return entries
}

// Build resolves every path mapping of cfg against fsys, whose root is the
// directory containing the tsconfig.
func Build(fsys fs.FS, cfg *tsconfig.Config) (*Table, error) {
	table := NewTable()

	for _, mapping := range cfg.Paths {
		if len(mapping.Targets) == 0 {
			continue
		}
		pattern := path.Join(cfg.BaseURL, mapping.Targets[0])

		if !strings.HasSuffix(pattern, "/*") {
			filePath, ok := resolveStatic(fsys, pattern)
			if !ok {
				return nil, docerrors.NewAliasError(docerrors.ErrCodePathNotFound,
					"path not found: "+pattern).WithContext("alias", mapping.Alias)
			}
			table.Set(filePath, mapping.Alias)
			continue
		}

		if err := resolveWildcard(fsys, table, mapping.Alias, pattern); err != nil {
			return nil, err
		}
	}

	return table, nil
}

func resolveStatic(fsys fs.FS, pattern string) (string, bool) {
	for _, suffix := range staticCandidates {
		candidate := pattern + suffix
		info, err := fs.Stat(fsys, candidate)
		if err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func resolveWildcard(fsys fs.FS, table *Table, alias, pattern string) error {
	moduleDir := strings.TrimSuffix(pattern, "/*")

	matches, err := doublestar.Glob(fsys, moduleDir+"/**/*.{ts,tsx}", doublestar.WithFilesOnly())
	if err != nil {
		return docerrors.NewIOError(docerrors.ErrCodePathNotFound, "glob "+pattern, err).
			WithContext("alias", alias)
	}
	sort.Strings(matches)

	aliasPrefix := strings.TrimSuffix(alias, "/*")
	for _, filePath := range matches {
		if !strings.HasPrefix(filePath, moduleDir) {
			return docerrors.NewAliasError(docerrors.ErrCodeAliasOutsideDir,
				"path "+filePath+" does not start with "+moduleDir).WithContext("alias", alias)
		}

		module := ModuleName(aliasPrefix, filePath[len(moduleDir):])
		table.Set(filePath, module)
	}

	return nil
}

// ModuleName joins an alias prefix with the file path below the alias
// directory and drops the extension and a trailing /index.
func ModuleName(aliasPrefix, rest string) string {
	return moduleSuffix.ReplaceAllString(aliasPrefix+rest, "")
}

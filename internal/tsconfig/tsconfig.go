// Package tsconfig reads the compiler path mappings of a TypeScript project.
//
// Only compilerOptions.baseUrl and compilerOptions.paths are read. The file
// may contain comments and trailing commas, as tsc accepts them. The order of
// the paths object is kept because later aliases overwrite earlier ones when
// they resolve to the same file.
package tsconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/tailscale/hujson"
)

// PathMapping is one entry of compilerOptions.paths.
type PathMapping struct {
	Alias   string
	Targets []string
}

// Config is the subset of tsconfig.json used for alias resolution.
type Config struct {
	File    string
	BaseURL string
	Paths   []PathMapping
}

type rawConfig struct {
	CompilerOptions struct {
		BaseURL string          `json:"baseUrl"`
		Paths   json.RawMessage `json:"paths"`
	} `json:"compilerOptions"`
}

// Load reads and parses the tsconfig file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read tsconfig", err).
			WithFile(path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, docerrors.NewConfigError(docerrors.ErrCodeTSConfigInvalid, "invalid tsconfig", err).
			WithFile(path)
	}
	cfg.File = path

	return cfg, nil
}

// Parse parses tsconfig content.
func Parse(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(std, &raw); err != nil {
		return nil, err
	}

	cfg := &Config{BaseURL: raw.CompilerOptions.BaseURL}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "."
	}

	if len(raw.CompilerOptions.Paths) > 0 && !bytes.Equal(raw.CompilerOptions.Paths, []byte("null")) {
		paths, err := orderedPaths(raw.CompilerOptions.Paths)
		if err != nil {
			return nil, fmt.Errorf("compilerOptions.paths: %w", err)
		}
		cfg.Paths = paths
	}

	return cfg, nil
}

// orderedPaths decodes the paths object key by key so declaration order
// survives.
func orderedPaths(data json.RawMessage) ([]PathMapping, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object")
	}

	var mappings []PathMapping
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		alias, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key %v", tok)
		}

		var targets []string
		if err := dec.Decode(&targets); err != nil {
			return nil, fmt.Errorf("alias %q: %w", alias, err)
		}
		mappings = append(mappings, PathMapping{Alias: alias, Targets: targets})
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return nil, err
	}

	return mappings, nil
}

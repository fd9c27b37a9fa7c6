package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// FuzzLoadFrom tests configuration loading with malformed YAML
func FuzzLoadFrom(f *testing.F) {
	f.Add(`site:
  out_dir: ./public
  pages:
    - "**/*.md"`)
	f.Add(`site:
  out_dir: ../../etc`)
	f.Add(`site:
  base: no-slash`)
	f.Add(`watch:
  debounce: -5s`)
	f.Add(`log:
  format: xml`)
	f.Add(`malformed: yaml: content`)
	f.Add(``)
	f.Add(`---
typescript:
  tsconfig: tsconfig.base.json
  modules_group: ""`)

	f.Fuzz(func(t *testing.T, yamlContent string) {
		if len(yamlContent) > 20000 {
			t.Skip("config content too large")
		}

		configFile := filepath.Join(t.TempDir(), ".docsite.yml")
		if err := os.WriteFile(configFile, []byte(yamlContent), 0o644); err != nil {
			t.Skip("could not write config file")
		}

		v := viper.New()
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return
		}

		cfg, err := LoadFrom(v)
		if err != nil {
			return
		}

		// Anything that loads must satisfy validation.
		if filepath.IsAbs(cfg.Site.OutDir) {
			t.Errorf("absolute out_dir accepted: %q", cfg.Site.OutDir)
		}
		if clean := filepath.Clean(cfg.Site.OutDir); clean == ".." || strings.HasPrefix(clean, "../") {
			t.Errorf("traversing out_dir accepted: %q", cfg.Site.OutDir)
		}
		if cfg.Site.Base != "" && !strings.HasPrefix(cfg.Site.Base, "/") {
			t.Errorf("base without leading slash accepted: %q", cfg.Site.Base)
		}
		if cfg.Watch.Debounce < 0 {
			t.Errorf("negative debounce accepted: %s", cfg.Watch.Debounce)
		}
		if len(cfg.Site.Pages) == 0 {
			t.Error("pages must never be empty after loading")
		}
	})
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// formatValue is a --format flag restricted to a fixed set of values.
type formatValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(def string, allowed ...string) *formatValue {
	return &formatValue{value: def, allowed: allowed}
}

func (f *formatValue) String() string { return f.value }

func (f *formatValue) Set(s string) error {
	for _, a := range f.allowed {
		if s == a {
			f.value = s
			return nil
		}
	}
	return fmt.Errorf("invalid format %q, must be one of: %s", s, strings.Join(f.allowed, ", "))
}

func (f *formatValue) Type() string { return "format" }

// addFormatFlag registers --format/-f on cmd.
func addFormatFlag(cmd *cobra.Command, def string, allowed ...string) *formatValue {
	v := newFormatValue(def, allowed...)
	cmd.Flags().VarP(v, "format", "f", "Output format ("+strings.Join(allowed, "|")+")")
	return v
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

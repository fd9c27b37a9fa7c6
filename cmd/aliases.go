package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conneroisu/docsite/internal/site"
)

var aliasesCmd = &cobra.Command{
	Use:     "aliases",
	Aliases: []string{"a"},
	Short:   "List resolved tsconfig path aliases",
	Long: `Resolve every compilerOptions.paths entry of tsconfig.json against the
source tree and list the alias of each file, sorted by alias.

Examples:
  docsite aliases                 # Table of alias and file
  docsite aliases -f yaml         # YAML list`,
	RunE: runAliases,
}

var aliasesFormat *formatValue

func init() {
	rootCmd.AddCommand(aliasesCmd)

	aliasesFormat = addFormatFlag(aliasesCmd, "table", "table", "json", "yaml")
}

func runAliases(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	table, err := site.LoadAliases(cfg)
	if err != nil {
		return err
	}
	entries := table.Entries()

	out := cmd.OutOrStdout()
	switch aliasesFormat.String() {
	case "json":
		return writeJSON(out, entries)
	case "yaml":
		return writeYAML(out, entries)
	default:
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ALIAS\tPATH")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", e.Alias, e.Path)
		}
		return w.Flush()
	}
}

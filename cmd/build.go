package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/docsite/internal/site"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the documentation site",
	Long: `Build the documentation site into the output directory.

Reads the responsive breakpoint, resolves tsconfig path aliases, loads the
TypeDoc reflection tree, renders every markdown page and one page per module,
and writes modules.json and highlight.css.

Examples:
  docsite build                   # Build into site.out_dir
  docsite build --out public      # Build into ./public
  docsite build --clean           # Remove the output directory first`,
	RunE: runBuild,
}

var (
	buildOut   string
	buildClean bool
)

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Output directory (overrides site.out_dir)")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Remove the output directory before building")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildOut != "" {
		cfg.Site.OutDir = buildOut
	}

	builder := site.NewBuilder(cfg, loggerFor(cfg))
	result, err := builder.Build(commandContext(cmd), site.BuildOptions{Clean: buildClean})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Built %d pages and %d module pages into %s in %s\n",
		len(result.Pages), result.ModulePages, result.OutDir, result.Duration.Round(time.Millisecond))
	return nil
}

package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conneroisu/docsite/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for docsite: version, commit, build time,
Go version and platform.

Examples:
  docsite version              # Show version
  docsite version --short      # Version only
  docsite version -f json      # Output as JSON`,
	RunE: runVersionCommand,
}

var (
	versionFormat *formatValue
	versionShort  bool
)

func init() {
	rootCmd.AddCommand(versionCmd)

	versionFormat = addFormatFlag(versionCmd, "text", "text", "json")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	info := version.Get()
	out := cmd.OutOrStdout()

	if versionFormat.String() == "json" {
		return writeJSON(out, info)
	}
	if versionShort {
		fmt.Fprintln(out, info.Short())
		return nil
	}

	fmt.Fprintf(out, "docsite %s\n", color.New(color.FgGreen, color.Bold).Sprint(info.Short()))
	if !info.BuildTime.IsZero() {
		fmt.Fprintf(out, "Built: %s\n", info.BuildTime.UTC().Format(time.DateTime))
	}
	fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
	return nil
}

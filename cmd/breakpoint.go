package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/docsite/internal/responsive"
)

var breakpointCmd = &cobra.Command{
	Use:   "breakpoint",
	Short: "Show the responsive breakpoint",
	Long: `Read the mobile breakpoint declared at the top of the responsive stylesheet
and print it with the media queries derived from it.`,
	RunE: runBreakpoint,
}

var breakpointFormat *formatValue

func init() {
	rootCmd.AddCommand(breakpointCmd)

	breakpointFormat = addFormatFlag(breakpointCmd, "text", "text", "json")
}

func runBreakpoint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bp, err := responsive.ReadBreakpoint(cfg.Responsive.Stylesheet)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if breakpointFormat.String() == "json" {
		return writeJSON(out, map[string]interface{}{
			"breakpoint":    bp,
			"media_mobile":  bp.MediaMobile(),
			"media_desktop": bp.MediaDesktop(),
		})
	}

	fmt.Fprintf(out, "Breakpoint: %s\n", bp.Value)
	fmt.Fprintf(out, "Mobile:     %s\n", bp.MediaMobile())
	fmt.Fprintf(out, "Desktop:    %s\n", bp.MediaDesktop())
	return nil
}

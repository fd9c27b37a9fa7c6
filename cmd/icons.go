package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/docsite/internal/codicon"
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Render codicon spritesheets",
}

var iconsSheetCmd = &cobra.Command{
	Use:   "sheet NAME...",
	Short: "Print the spritesheet for a set of icons",
	Long: `Print the <symbol> elements for the named codicons in the order given,
as a page using them would embed them.

Examples:
  docsite icons sheet github copy link`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIconsSheet,
}

var iconsFullCmd = &cobra.Command{
	Use:   "full",
	Short: "Print every symbol of the codicon spritesheet",
	Args:  cobra.NoArgs,
	RunE:  runIconsFull,
}

var iconsPage string

func init() {
	rootCmd.AddCommand(iconsCmd)
	iconsCmd.AddCommand(iconsSheetCmd, iconsFullCmd)

	iconsSheetCmd.Flags().StringVarP(&iconsPage, "page", "p", "/", "Page the icons are recorded for")
}

func runIconsSheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sprites := codicon.NewSpritesheet(cfg.Icons.SourceDir, cfg.Icons.Spritesheet)
	for _, name := range args {
		if err := sprites.AddIcon(iconsPage, name); err != nil {
			return err
		}
	}

	sheet, err := sprites.SpritesheetForPage(iconsPage)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sheet)
	return nil
}

func runIconsFull(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sheet, err := codicon.NewSpritesheet(cfg.Icons.SourceDir, cfg.Icons.Spritesheet).FullSpritesheet()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sheet)
	return nil
}

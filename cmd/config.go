package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/docsite/internal/config"
	docerrors "github.com/conneroisu/docsite/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect docsite configuration",
	Long: `Inspect docsite configuration files and settings.

Examples:
  docsite config show                  # Show resolved configuration as YAML
  docsite config show -f json          # Show it as JSON
  docsite config validate              # Validate .docsite.yml
  docsite config validate --file site.yml`,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a docsite configuration file: required paths, output directory
traversal, page patterns, log format.`,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the configuration after defaults, the configuration file and
DOCSITE_* environment variables have been applied.`,
	RunE: runConfigShow,
}

var (
	configFile   string
	configFormat *formatValue
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd, configShowCmd)

	configValidateCmd.Flags().StringVar(&configFile, "file", "", "Configuration file to validate (default: .docsite.yml)")
	configFormat = addFormatFlag(configShowCmd, "yaml", "yaml", "json")
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	target := configFile
	if target == "" {
		target = ".docsite.yml"
	}
	if _, err := os.Stat(target); err != nil {
		return docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "configuration file not found", err).
			WithFile(target)
	}

	v := viper.New()
	v.SetConfigFile(target)
	if err := v.ReadInConfig(); err != nil {
		return docerrors.NewConfigError(docerrors.ErrCodeConfigInvalid, "cannot read configuration file", err).
			WithFile(target)
	}
	if _, err := config.LoadFrom(v); err != nil {
		return docerrors.NewConfigError(docerrors.ErrCodeConfigInvalid, "configuration is invalid", err).
			WithFile(target)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", target)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if configFormat.String() == "json" {
		return writeJSON(cmd.OutOrStdout(), cfg)
	}
	return writeYAML(cmd.OutOrStdout(), cfg)
}

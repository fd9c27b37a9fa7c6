// Package cmd provides the command-line interface for docsite.
//
// Configuration System:
//
//	The CLI reads configuration from several sources, highest priority first:
//	1. Command-line flags (--config, --log-level, --out, ...)
//	2. DOCSITE_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (DOCSITE_SITE_OUT_DIR, ...)
//	4. Configuration file (.docsite.yml)
//
// Environment Variables:
//
//	DOCSITE_CONFIG_FILE: Path to custom configuration file
//	DOCSITE_SITE_OUT_DIR: Override the output directory
//	DOCSITE_TYPESCRIPT_REFLECTION: Override the TypeDoc JSON path
//	And the rest following the DOCSITE_<SECTION>_<OPTION> pattern
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/docsite/internal/config"
	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "Build tooling for the documentation site",
	Long: `docsite builds the project documentation: markdown pages, one page per
TypeScript module resolved through tsconfig path aliases and the TypeDoc
reflection tree, and the per-page codicon spritesheets.

Quick Start:
  docsite build                   Build the whole site
  docsite modules                 Show the module tree
  docsite aliases                 List resolved path aliases
  docsite render page.md          Render a single markdown file
  docsite watch                   Rebuild on change`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Errors are logged before being returned.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger := newLogger(viper.GetString("log-level"), viper.GetString("log.format"))
		docerrors.NewErrorHandler(logger).Handle(context.Background(), err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .docsite.yml, can also use DOCSITE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag
//  2. DOCSITE_CONFIG_FILE environment variable
//  3. .docsite.yml in the current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("DOCSITE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".docsite")
	}

	// DOCSITE_SITE_OUT_DIR overrides site.out_dir, and so on.
	viper.SetEnvPrefix("DOCSITE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// A missing config file is fine; defaults apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, docerrors.NewConfigError(docerrors.ErrCodeConfigInvalid, "cannot load configuration", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Unknown levels fall back to info.
func newLogger(level, format string) logging.Logger {
	lc := logging.DefaultConfig()
	if lvl, err := logging.ParseLevel(level); err == nil {
		lc.Level = lvl
	}
	if format != "" {
		lc.Format = format
	}
	return logging.NewLogger(lc)
}

func loggerFor(cfg *config.Config) logging.Logger {
	return newLogger(cfg.Log.Level, cfg.Log.Format)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/docsite/internal/config"
	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/site"
	"github.com/conneroisu/docsite/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"w"},
	Short:   "Rebuild the site when sources change",
	Long: `Build the site, then watch markdown pages, stylesheets, tsconfig.json and
the TypeDoc reflection file and rebuild after every batch of changes.

Examples:
  docsite watch                   # Watch with the configured debounce
  docsite watch --verbose         # Print every changed file`,
	RunE: runWatch,
}

var watchVerbose bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Verbose output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := loggerFor(cfg)
	out := cmd.OutOrStdout()

	builder := site.NewBuilder(cfg, logger)

	fileWatcher, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot create file watcher", err)
	}
	defer fileWatcher.Stop()

	for _, f := range watchFilters(cfg) {
		fileWatcher.AddFilter(f)
	}

	fileWatcher.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		if watchVerbose {
			for _, event := range events {
				fmt.Fprintf(out, "   %s: %s\n", event.Type, event.Path)
			}
		}
		fmt.Fprintf(out, "%d file(s) changed, rebuilding\n", len(events))

		result, err := builder.Build(ctx, site.BuildOptions{})
		if err != nil {
			docerrors.NewErrorHandler(logger).Handle(ctx, err)
			return nil
		}
		fmt.Fprintf(out, "Built %d pages and %d module pages\n", len(result.Pages), result.ModulePages)
		return nil
	})

	for _, dir := range watchDirs(cfg) {
		if err := fileWatcher.AddRecursive(dir); err != nil {
			logger.Warn(context.Background(), err, "Cannot watch path", "path", dir)
			continue
		}
		fmt.Fprintf(out, "   - Watching: %s\n", dir)
	}

	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if _, err := builder.Build(ctx, site.BuildOptions{}); err != nil {
		// Keep watching; the next change may fix it.
		docerrors.NewErrorHandler(logger).Handle(ctx, err)
	}

	if err := fileWatcher.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Watching for changes... (Press Ctrl+C to stop)")

	<-ctx.Done()
	fmt.Fprintln(out, "Stopping file watcher...")
	return nil
}

// watchDirs lists the directories holding the build inputs.
func watchDirs(cfg *config.Config) []string {
	dirs := []string{
		cfg.Site.SrcDir,
		filepath.Dir(cfg.Responsive.Stylesheet),
		filepath.Dir(cfg.TypeScript.TSConfig),
		filepath.Dir(cfg.TypeScript.Reflection),
	}

	seen := make(map[string]bool, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// watchFilters accepts markdown and stylesheets plus the exact tsconfig and
// reflection files, outside the output directory. The tsconfig directory is
// usually the project root, so nothing else there may trigger a rebuild.
func watchFilters(cfg *config.Config) []watcher.FileFilter {
	return []watcher.FileFilter{
		watcher.NoHiddenFilter,
		watcher.ExcludeDirFilter(cfg.Site.OutDir),
		watcher.AnyFilter(
			watcher.ExtFilter(".md", ".scss", ".css"),
			watcher.FileSetFilter(cfg.TypeScript.TSConfig, cfg.TypeScript.Reflection),
		),
	}
}

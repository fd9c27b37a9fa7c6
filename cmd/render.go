package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	docerrors "github.com/conneroisu/docsite/internal/errors"
	"github.com/conneroisu/docsite/internal/markdown"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a markdown file to HTML",
	Long: `Render a single markdown file with the site's markdown pipeline and print
the HTML. Use "-" to read from standard input.

Examples:
  docsite render docs/index.md
  docsite render --outline docs/plugins.md`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderOutline bool

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVar(&renderOutline, "outline", false, "Print the heading outline as JSON instead of HTML")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var source []byte
	if args[0] == "-" {
		source, err = io.ReadAll(cmd.InOrStdin())
	} else {
		source, err = os.ReadFile(args[0])
	}
	if err != nil {
		return docerrors.NewIOError(docerrors.ErrCodeFileNotFound, "cannot read markdown", err).WithFile(args[0])
	}

	renderer := markdown.New(markdown.Options{
		HighlightStyle: cfg.Markdown.HighlightStyle,
		WithClasses:    cfg.Markdown.WithClasses,
	})
	doc, err := renderer.Render(commandContext(cmd), source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderOutline {
		return writeJSON(out, doc.Outline)
	}
	fmt.Fprint(out, doc.HTML)
	return nil
}

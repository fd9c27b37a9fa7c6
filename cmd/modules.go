package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conneroisu/docsite/internal/modules"
	"github.com/conneroisu/docsite/internal/site"
)

var modulesCmd = &cobra.Command{
	Use:     "modules",
	Aliases: []string{"m"},
	Short:   "Show the module tree",
	Long: `Show the TypeScript modules documented by the site.

By default prints the collapsed module tree. With --fresh, lists only the
modules that contribute exports not already provided by an earlier module.

Examples:
  docsite modules                 # Module tree
  docsite modules --fresh         # Modules that get their own page
  docsite modules -f json         # Tree as JSON`,
	RunE: runModules,
}

var (
	modulesFormat *formatValue
	modulesFresh  bool

	moduleColor = color.New(color.FgCyan, color.Bold)
	branchColor = color.New(color.FgHiBlack)
)

func init() {
	rootCmd.AddCommand(modulesCmd)

	modulesFormat = addFormatFlag(modulesCmd, "text", "text", "json", "yaml")
	modulesCmd.Flags().BoolVar(&modulesFresh, "fresh", false, "List only modules with new exports")
}

func runModules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	symbols, err := site.LoadSymbols(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if modulesFresh {
		names := make([]string, len(symbols.Fresh))
		for i, m := range symbols.Fresh {
			names[i] = m.Name
		}
		switch modulesFormat.String() {
		case "json":
			return writeJSON(out, names)
		case "yaml":
			return writeYAML(out, names)
		default:
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}
	}

	switch modulesFormat.String() {
	case "json":
		return writeJSON(out, symbols.Tree)
	case "yaml":
		return writeYAML(out, symbols.Tree)
	default:
		printTree(out, symbols.Tree, "")
		return nil
	}
}

// printTree draws t with box-drawing branches. Each node shows the part of
// its path below its parent.
func printTree(w io.Writer, t modules.Tree, parent string) {
	printLevel(w, t, parent, "")
}

func printLevel(w io.Writer, t modules.Tree, parent, indent string) {
	for i, n := range t {
		last := i == len(t)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}

		label := n.Path
		if parent != "" {
			label = strings.TrimPrefix(n.Path, parent+"/")
		}
		fmt.Fprintf(w, "%s%s%s\n", branchColor.Sprint(indent), branchColor.Sprint(branch), moduleColor.Sprint(label))

		if !n.IsLeaf() {
			printLevel(w, n.Children, n.Path, indent+next)
		}
	}
}

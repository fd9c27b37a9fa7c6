// Package cmd provides the command-line interface for docsite.
//
// # Available Commands
//
//   - build: Build the documentation site
//   - modules: Show the module tree or the modules that get a page
//   - aliases: List resolved tsconfig path aliases
//   - breakpoint: Show the responsive breakpoint and media queries
//   - icons: Render codicon spritesheets
//   - render: Render one markdown file
//   - watch: Rebuild when sources change
//   - config: Show or validate configuration
//   - version: Show version information
//
// # Command Examples
//
//	// Build into a custom directory
//	docsite build --out public --clean
//
//	// Module tree as YAML
//	docsite modules --format yaml
//
//	// Symbols for two icons
//	docsite icons sheet github copy
//
// # Error Handling
//
// Failures are reported through the structured logger with their error code
// and file, and the process exits with status 1.
package cmd

// Package internal contains the implementation packages of the docsite CLI.
//
// # Package Organization
//
//   - config: Viper-backed configuration with defaults and validation
//   - errors: Typed errors with codes and a logging error handler
//   - logging: slog-based structured logger
//   - markdown: goldmark rendering with front matter, highlighting and outlines
//   - responsive: Breakpoint extraction from the responsive stylesheet
//   - codicon: Per-page codicon spritesheets
//   - tsconfig: Lenient tsconfig.json loading
//   - alias: Import alias table built from tsconfig paths
//   - typedoc: TypeDoc JSON reflection tree
//   - modules: Module list, module tree and fresh-module detection
//   - site: Build orchestration and page output
//   - watcher: Debounced file watching for rebuilds
//   - version: Build metadata
//
// The site package is the only one that ties the others together; every
// other package can be used on its own.
package internal

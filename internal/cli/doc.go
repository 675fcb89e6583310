// Package cli implements the bannercopy command line with cobra.
//
// Commands: extract, analyze, generate, platforms, serve and version. Every
// command loads configuration in the root's PersistentPreRunE and shares the
// --config, --verbose and --json flags.
package cli

// Package cmd implements the props subcommands: get, set, delete, fmt,
// query, repl, serve, and init.
//
// Every command reads the sources named by the global --source flags, merged
// in order so later files override earlier ones, and never writes them back.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)

// Package cli contains the command line interface for props.
//
// # Usage
//
//	props [flags] <command> [args]
//
//	props -s app.properties get db.host
//	props -s base.properties -s local.properties fmt json
//	cat app.properties | props query 'key startsWith "db."'
//	props -s app.properties serve --addr :8080
//
// Sources given with --source are merged in order; later files override
// keys of earlier ones. With no --source, standard input is read.
//
// # Configuration
//
// Flag defaults are read from config.properties in the user configuration
// directory (for example ~/.config/props/config.properties). Keys name flags
// with '-' or '_' between words:
//
//	log-level = debug
//	log_format = json
//
// "props init" writes this file from the current flag values.
//
// # Profiling
//
// Built with the pprof tag, --pprof-mode and --pprof-dir enable
// [github.com/ardnew/props/profile].
package cli

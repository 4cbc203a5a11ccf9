// Package log provides a small structured logging interface built on
// [log/slog].
//
// Loggers are immutable values configured with functional options when they
// are created:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("loaded", slog.Int("entries", n))
//
// [Logger.Wrap] derives a logger with some options overridden, and
// [Logger.With] derives one that adds attributes to every record.
//
// The zero Logger discards everything, so components may hold a Logger field
// without requiring callers to set one.
//
// # Levels and formats
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Output is either [FormatJSON] or
// [FormatText]; text output can be colorized with [WithPretty].
//
// # Default logger
//
// Package-level functions such as [Info] and [DebugContext] write to a
// process-wide logger that [Config] reconfigures and [Default] returns.
package log

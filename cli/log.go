package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/props/log"
)

// logLevel configures the default logger as a side effect of parsing, so
// that errors reported while kong is still parsing use the chosen level.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

// logFormat configures the default logger as a side effect of parsing.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}" enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"text"               enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp layout, or none."`
	Caller     bool      `default:"false"                                      help:"Include caller information." negatable:""`
	Pretty     bool      `default:"true"                                       help:"Colorize text output."       negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault": log.DefaultLevel.String(),
		"logLevelEnum":    strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum":   strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logging flag to the default logger.
func (f *logConfig) start(ctx context.Context) func() {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() {}
}

// scan applies logging flags found in args before kong parses them, so the
// logger is configured regardless of flag position. Boolean flags never go
// through UnmarshalText, which is why this pass exists.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		// takeValue consumes the next argument when the value was not
		// attached with '='.
		takeValue := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(takeValue()))

		case "--log-format":
			_ = f.Format.UnmarshalText([]byte(takeValue()))

		case "--log-time-layout":
			f.TimeLayout = takeValue()
			log.Config(log.WithTimeLayout(f.TimeLayout))

		case "--log-pretty", "--no-log-pretty":
			f.Pretty = scanBool(name, value, assigned)
			log.Config(log.WithPretty(f.Pretty))

		case "--log-caller", "--no-log-caller":
			f.Caller = scanBool(name, value, assigned)
			log.Config(log.WithCaller(f.Caller))
		}
	}
}

// scanBool interprets a negatable boolean flag. An unparsable value leaves
// the flag set.
func scanBool(name, value string, assigned bool) bool {
	enable := true

	if assigned {
		if v, err := strconv.ParseBool(value); err == nil {
			enable = v
		}
	}

	if strings.HasPrefix(name, "--no-") {
		return !enable
	}

	return enable
}

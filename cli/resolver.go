package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

// resolve returns a [kong.ConfigurationLoader] that reads the configuration
// file as properties:
//
//	log-level = debug
//	log_format = json
//	log-pretty = false
//
// A key names a flag, with '-' or '_' between words. Command-line flags
// override configuration values. A file that fails to parse is ignored with
// a warning so that a broken configuration never prevents running.
func resolve(ctx context.Context, cache *props.Cache) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		store, err := props.LoadReader(ctx, r,
			props.WithCache(cache),
			props.WithLogger(log.Default()),
		)
		if err != nil {
			log.WarnContext(ctx, "ignoring configuration", slog.Any("error", err))

			return config{}, nil
		}

		return config{store: store}, nil
	}
}

// config implements [kong.Resolver] over a properties Store.
type config struct {
	store *props.Store
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := c.store.Get(name); ok {
			return value, nil
		}
	}

	return nil, nil //nolint:nilnil
}

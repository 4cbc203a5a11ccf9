package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/pkg"
	"github.com/ardnew/props/profile"
	"github.com/ardnew/props/props"
)

// Init writes the configuration file from the current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// ignoredFlags are flag name prefixes never written to the configuration.
var ignoredFlags = []string{"help", "version", "source", "force", profile.Tag}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath), slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	store := flagStore(ktx)
	defer store.Release()

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}
	defer file.Close()

	if err := writeConfig(file, store); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("entry_count", store.Len()))

	return nil
}

// flagStore collects the value of every configurable flag.
func flagStore(ktx *kong.Context) *props.Store {
	store := props.New()

	for _, flag := range ktx.Flags() {
		if flag.Hidden || slices.ContainsFunc(ignoredFlags, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if value, ok := flagString(ktx.FlagValue(flag)); ok {
			_ = store.Set(flag.Name, value)
		}
	}

	return store
}

// flagString formats a flag value as a property value. Empty values are
// omitted so their defaults keep applying.
func flagString(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false

	case string:
		return v, v != ""

	case []string:
		return strings.Join(v, ","), len(v) > 0

	case fmt.Stringer:
		s := v.String()

		return s, s != ""

	default:
		return fmt.Sprint(v), true
	}
}

func writeConfig(w io.Writer, store *props.Store) error {
	_, err := fmt.Fprintf(w, "# %s %s configuration\n# Flag names may use '-' or '_'.\n\n",
		pkg.Name, pkg.Version)
	if err != nil {
		return err
	}

	return store.Print(w)
}

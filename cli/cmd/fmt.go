package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/props/props"
)

// Fmt writes the merged sources in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"1" help:"Format as key = value lines (default)."`
	JSON   JSON   `cmd:""             help:"Format as a JSON object."`
	YAML   YAML   `cmd:""             help:"Format as a YAML mapping."`
}

// Native formats as "key = value" lines in key order.
type Native struct{}

// Run executes the native format command.
func (*Native) Run(ctx context.Context) error {
	return format(ctx, "native", func(s *props.Store) error {
		return s.Print(stdioFrom(ctx).out)
	})
}

// JSON formats as an ordered JSON object.
type JSON struct {
	Indent int `default:"2" help:"Indent width; 0 writes one line" short:"i"`
}

// Run executes the json format command.
func (j *JSON) Run(ctx context.Context) error {
	return format(ctx, "json", func(s *props.Store) error {
		return s.FormatJSON(ctx, stdioFrom(ctx).out, j.Indent)
	})
}

// YAML formats as an ordered YAML mapping.
type YAML struct {
	Indent int `default:"2" help:"Indent width; 0 writes flow style" short:"i"`
}

// Run executes the yaml format command.
func (y *YAML) Run(ctx context.Context) error {
	return format(ctx, "yaml", func(s *props.Store) error {
		return s.FormatYAML(ctx, stdioFrom(ctx).out, y.Indent)
	})
}

func format(
	ctx context.Context,
	name string,
	write func(*props.Store) error,
) error {
	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	defer store.Release()

	if err := write(store); err != nil {
		return ErrWriteOutput.With(slog.String("format", name)).Wrap(err)
	}

	return nil
}

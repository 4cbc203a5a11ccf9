package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/props/props"
)

// Get prints the value of a key.
type Get struct {
	Key string `arg:"" help:"Key to look up"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) error {
	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	defer store.Release()

	value, ok := store.Get(g.Key)
	if !ok {
		return props.ErrKeyNotFound.With(slog.String("key", g.Key))
	}

	if _, err := fmt.Fprintln(stdioFrom(ctx).out, value); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// Set prints the sources with one key added or replaced. The sources are
// not modified.
type Set struct {
	Key   string `arg:"" help:"Key to add or replace"`
	Value string `arg:"" help:"New value"`
}

// Run executes the set command.
func (s *Set) Run(ctx context.Context) error {
	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	defer store.Release()

	if err := store.Set(s.Key, s.Value); err != nil {
		return err
	}

	return printStore(ctx, store)
}

// Delete prints the sources with one key removed. The sources are not
// modified.
type Delete struct {
	Key string `arg:"" help:"Key to remove"`
}

// Run executes the delete command.
func (d *Delete) Run(ctx context.Context) error {
	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	defer store.Release()

	if !store.Delete(d.Key) {
		return props.ErrKeyNotFound.With(slog.String("key", d.Key))
	}

	return printStore(ctx, store)
}

func printStore(ctx context.Context, store *props.Store) error {
	if err := store.Print(stdioFrom(ctx).out); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

// Query filters or rewrites entries with an expr-lang expression.
type Query struct {
	Expr      string `arg:"" help:"Expression evaluated with key and value in scope"`
	Transform bool   `help:"Replace each value with the expression result instead of filtering" short:"t"`
	Format    string `default:"native" enum:"native,json,yaml" help:"Output format (${enum})" short:"o"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) error {
	compiled, err := props.CompileQuery(q.Expr)
	if err != nil {
		return err
	}

	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	defer store.Release()

	apply := store.Select
	if q.Transform {
		apply = store.Transform
	}

	result, err := apply(compiled)
	if err != nil {
		return err
	}
	defer result.Release()

	log.DebugContext(ctx, "query evaluated",
		slog.String("query", compiled.String()),
		slog.Bool("transform", q.Transform),
		slog.Int("input_count", store.Len()),
		slog.Int("output_count", result.Len()))

	out := stdioFrom(ctx).out

	switch q.Format {
	case "json":
		err = result.FormatJSON(ctx, out, 2)
	case "yaml":
		err = result.FormatYAML(ctx, out, 2)
	default:
		err = result.Print(out)
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", q.Format)).Wrap(err)
	}

	return nil
}

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

type (
	kongContextKey struct{}
	sourcesKey     struct{}
	optionsKey     struct{}
	stdioKey       struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongContextKey{}).(*kong.Context)

	return ktx
}

// stdinSource is the source name that selects standard input.
const stdinSource = "-"

// Sources is an ordered, de-duplicated list of properties sources.
type Sources struct {
	paths []string
	stdin bool // read standard input after every path
}

// IsZero reports whether no source was given.
func (s Sources) IsZero() bool { return len(s.paths) == 0 && !s.stdin }

// Paths returns the file sources in load order, excluding standard input.
func (s Sources) Paths() []string { return s.paths }

// Stdin reports whether standard input is read after the file sources.
func (s Sources) Stdin() bool { return s.stdin }

// fileKey identifies a file by device and inode, so the same file reached
// through symlinks or different relative paths is loaded once.
type fileKey struct {
	dev uint64
	ino uint64
}

// MakeSources de-duplicates sources while preserving the order of first
// occurrence. Every "-" collapses into one read of standard input, which is
// placed last. Paths that cannot be stat'ed are kept as given so that
// loading reports them. An empty list selects standard input.
func MakeSources(sources []string) Sources {
	if len(sources) == 0 {
		return Sources{stdin: true}
	}

	var s Sources

	seen := make(map[fileKey]struct{})

	var (
		stdinKey    fileKey
		hasStdinKey bool
	)

	if info, err := os.Stdin.Stat(); err == nil {
		stdinKey, hasStdinKey = keyOf(info)
	}

	for _, src := range sources {
		if src == stdinSource {
			s.stdin = true

			continue
		}

		key, ok := statKey(src)
		if !ok {
			s.paths = append(s.paths, src)

			continue
		}

		if hasStdinKey && key == stdinKey {
			s.stdin = true

			continue
		}

		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		s.paths = append(s.paths, src)
	}

	return s
}

// statKey resolves symlinks in path and returns its device and inode.
func statKey(path string) (fileKey, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return keyOf(info)
}

func keyOf(info os.FileInfo) (fileKey, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// WithSources returns a new context.Context carrying the sources that
// commands load.
func WithSources(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourcesKey{}, MakeSources(sources))
}

func sourcesFrom(ctx context.Context) Sources {
	s, ok := ctx.Value(sourcesKey{}).(Sources)
	if !ok {
		return Sources{stdin: true}
	}

	return s
}

// WithLoadOptions returns a new context.Context carrying options applied to
// every load.
func WithLoadOptions(ctx context.Context, opts ...props.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

func loadOptionsFrom(ctx context.Context) []props.Option {
	opts, _ := ctx.Value(optionsKey{}).([]props.Option)

	return append(opts[:len(opts):len(opts)], props.WithLogger(log.Default()))
}

type stdio struct {
	in  io.Reader
	out io.Writer
}

// WithStdio returns a new context.Context whose commands read standard input
// from in and write results to out.
func WithStdio(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, stdioKey{}, stdio{in: in, out: out})
}

func stdioFrom(ctx context.Context) stdio {
	s, _ := ctx.Value(stdioKey{}).(stdio)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

// loadStore loads and merges every source in ctx into a new Store.
func loadStore(ctx context.Context) (*props.Store, error) {
	sources := sourcesFrom(ctx)
	opts := loadOptionsFrom(ctx)

	merged := props.New()

	merge := func(store *props.Store) error {
		defer store.Release()

		for key, value := range store.All() {
			if err := merged.Set(key, value); err != nil {
				return err
			}
		}

		return nil
	}

	for _, path := range sources.Paths() {
		store, err := props.Load(ctx, path, opts...)
		if err != nil {
			merged.Release()

			return nil, err
		}

		if err := merge(store); err != nil {
			merged.Release()

			return nil, err
		}
	}

	if sources.Stdin() {
		store, err := props.LoadReader(ctx, stdioFrom(ctx).in, opts...)
		if err != nil {
			merged.Release()

			return nil, props.WrapError(err).With(slog.String("path", stdinSource))
		}

		if err := merge(store); err != nil {
			merged.Release()

			return nil, err
		}
	}

	log.DebugContext(ctx, "sources loaded",
		slog.Any("paths", sources.Paths()),
		slog.Bool("stdin", sources.Stdin()),
		slog.Int("entry_count", merged.Len()))

	return merged, nil
}

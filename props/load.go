package props

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/readahead"

	"github.com/ardnew/props/log"
)

// Option configures how a properties source is loaded.
type Option func(*options)

type options struct {
	logger    log.Logger
	maxLength int
	cache     *Cache
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used for parser diagnostics.
// The zero Logger discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxLength limits the length in bytes of every key and every value.
// Exceeding the limit fails the load with [ErrTokenTooLong].
// A limit of zero or less disables the check.
func WithMaxLength(n int) Option {
	return func(o *options) { o.maxLength = max(n, 0) }
}

// WithCache serves repeated loads of identical content from c.
func WithCache(c *Cache) Option {
	return func(o *options) { o.cache = c }
}

// Load opens the file at path and parses it into a new Store.
//
// If the file cannot be opened, the returned error matches
// [ErrSourceUnavailable]. On any error no Store is returned.
func Load(ctx context.Context, path string, opts ...Option) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ErrSourceUnavailable.
			With(slog.String("path", path)).
			Wrap(err)
	}
	defer file.Close()

	store, err := LoadReader(ctx, file, opts...)
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	return store, nil
}

// LoadReader parses properties from r into a new Store.
// On any error no Store is returned.
func LoadReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Store, error) {
	o := makeOptions(opts...)

	if o.cache != nil {
		return o.cache.loadReader(ctx, r, o)
	}

	// Pre-fetch input concurrently while the tokenizer consumes earlier bytes.
	ra := readahead.NewReader(r)
	defer ra.Close()

	return parse(ctx, bufio.NewReader(ra), o)
}

// ParseString parses properties from s into a new Store.
func ParseString(
	ctx context.Context,
	s string,
	opts ...Option,
) (*Store, error) {
	o := makeOptions(opts...)

	if o.cache != nil {
		return o.cache.parse(ctx, []byte(s), o)
	}

	return parse(ctx, strings.NewReader(s), o)
}

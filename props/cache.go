package props

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// Cache holds the parsed entries of previously loaded sources, keyed by
// content. It is safe for concurrent use.
//
// Every load served from a Cache returns a fresh Store that its caller owns
// exclusively; mutating it never affects the Cache or other callers.
type Cache struct {
	entries sync.Map // cache key -> []Entry (sorted, never mutated)
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return new(Cache)
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Clear removes all cached sources.
func (c *Cache) Clear() {
	c.entries.Clear()
}

// cacheKey identifies a source by the xxh3 hash of its content and the
// options that affect parsing.
func cacheKey(data []byte, o options) string {
	return strconv.FormatUint(xxh3.Hash(data), 36) +
		":" + strconv.Itoa(o.maxLength)
}

func (c *Cache) loadReader(
	ctx context.Context,
	r io.Reader,
	o options,
) (*Store, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.
			With(slog.String("source", "reader")).
			Wrap(err)
	}

	return c.parse(ctx, data, o)
}

func (c *Cache) parse(
	ctx context.Context,
	data []byte,
	o options,
) (*Store, error) {
	key := cacheKey(data, o)

	if value, ok := c.entries.Load(key); ok {
		o.logger.TraceContext(ctx, "cache hit",
			slog.String("key", key))

		return fromSorted(slices.Clone(value.([]Entry))), nil
	}

	store, err := parse(ctx, bytes.NewReader(data), o)
	if err != nil {
		return nil, err
	}

	c.entries.Store(key, store.Entries())

	return store, nil
}

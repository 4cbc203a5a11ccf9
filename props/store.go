package props

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Entry is a single key/value pair held by a [Store].
type Entry struct {
	Key   string `json:"key"   yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Store is an ordered collection of entries with unique keys, kept in
// ascending byte order of key at all times.
//
// A Store has exactly one owner and is not safe for concurrent mutation.
// Callers sharing a Store across goroutines must serialize access
// themselves.
type Store struct {
	entries  []Entry
	released bool
}

// New returns an empty Store.
func New() *Store {
	return new(Store)
}

// search returns the index of the first entry whose key is >= key and
// whether that entry's key equals key.
func (s *Store) search(key string) (int, bool) {
	return slices.BinarySearchFunc(s.entries, key, func(e Entry, k string) int {
		return strings.Compare(e.Key, k)
	})
}

// Get returns the value associated with key.
// The second result is false if no such key exists.
func (s *Store) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}

	i, ok := s.search(key)
	if !ok {
		return "", false
	}

	return s.entries[i].Value, true
}

// Set associates value with key, replacing the value of an existing entry in
// place or inserting a new entry at its sorted position.
//
// Set fails only if the Store has been released, in which case the Store is
// left unchanged.
func (s *Store) Set(key, value string) error {
	if s == nil || s.released {
		return ErrReleased.With(slog.String("key", key))
	}

	i, ok := s.search(key)
	if ok {
		s.entries[i].Value = value

		return nil
	}

	s.entries = slices.Insert(s.entries, i, Entry{Key: key, Value: value})

	return nil
}

// Delete removes the entry with the given key and reports whether it was
// found. A missing key leaves the Store unchanged.
func (s *Store) Delete(key string) bool {
	if s == nil {
		return false
	}

	i, ok := s.search(key)
	if !ok {
		return false
	}

	s.entries = slices.Delete(s.entries, i, i+1)

	return true
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.entries)
}

// All returns an iterator over all entries in ascending key order.
// The Store must not be modified during iteration.
func (s *Store) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if s == nil {
			return
		}

		for _, e := range s.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns the keys of all entries in ascending order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, s.Len())
	for key := range s.All() {
		keys = append(keys, key)
	}

	return keys
}

// Entries returns a copy of all entries in ascending key order.
func (s *Store) Entries() []Entry {
	if s == nil {
		return nil
	}

	return slices.Clone(s.entries)
}

// Clone returns an independent copy of s.
// The clone of a released Store is an empty, usable Store.
func (s *Store) Clone() *Store {
	return &Store{entries: s.Entries()}
}

// Release drops every entry. Subsequent calls have no effect.
// A released Store reports every key absent and rejects [Store.Set].
func (s *Store) Release() {
	if s == nil || s.released {
		return
	}

	clear(s.entries)
	s.entries = nil
	s.released = true
}

// Released reports whether [Store.Release] has been called.
func (s *Store) Released() bool {
	return s != nil && s.released
}

// fromSorted builds a Store that takes ownership of entries, which must
// already be sorted by key with no duplicates.
func fromSorted(entries []Entry) *Store {
	return &Store{entries: entries}
}

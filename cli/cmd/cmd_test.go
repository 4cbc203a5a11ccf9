package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/props/props"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// testContext returns a context whose commands load sources and read stdin
// from the given string, writing results to the returned buffer.
func testContext(t *testing.T, stdin string, sources ...string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithSources(t.Context(), sources)
	ctx = WithStdio(ctx, strings.NewReader(stdin), &out)

	return ctx, &out
}

func TestMakeSources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.properties", "a = 1\n")
	b := writeFile(t, dir, "b.properties", "b = 2\n")

	link := filepath.Join(dir, "link.properties")
	if err := os.Symlink(a, link); err != nil {
		t.Fatal(err)
	}

	rel, err := filepath.Rel(mustGetwd(t), b)
	if err != nil {
		t.Fatal(err)
	}

	missing := filepath.Join(dir, "missing.properties")

	tests := []struct {
		name    string
		sources []string
		paths   []string
		stdin   bool
	}{
		{"empty_selects_stdin", nil, nil, true},
		{"single", []string{a}, []string{a}, false},
		{"duplicates", []string{a, a, b, a}, []string{a, b}, false},
		{"symlink_duplicate", []string{a, link}, []string{a}, false},
		{"relative_duplicate", []string{b, rel}, []string{b}, false},
		{"stdin_collapsed_last", []string{"-", a, "-"}, []string{a}, true},
		{"missing_kept", []string{missing, a}, []string{missing, a}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := MakeSources(tt.sources)

			if !slices.Equal(s.Paths(), tt.paths) {
				t.Errorf("Paths() = %v, want %v", s.Paths(), tt.paths)
			}
			if s.Stdin() != tt.stdin {
				t.Errorf("Stdin() = %v, want %v", s.Stdin(), tt.stdin)
			}
			if s.IsZero() {
				t.Error("IsZero() = true")
			}
		})
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	return wd
}

func TestLoadStore_MergesInOrder(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.properties", "host = base\nport = 1\n")
	local := writeFile(t, dir, "local.properties", "host = local")

	ctx, _ := testContext(t, "port = 2\nextra = stdin\n", base, local, "-")

	store, err := loadStore(ctx)
	if err != nil {
		t.Fatalf("loadStore: %v", err)
	}
	defer store.Release()

	want := map[string]string{"host": "local", "port": "2", "extra": "stdin"}
	if got := store.ToMap(); len(got) != len(want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	for key, value := range want {
		if got, _ := store.Get(key); got != value {
			t.Errorf("Get(%q) = %q, want %q", key, got, value)
		}
	}
}

func TestLoadStore_MissingSource(t *testing.T) {
	ctx, _ := testContext(t, "", filepath.Join(t.TempDir(), "absent.properties"))

	store, err := loadStore(ctx)
	if !errors.Is(err, props.ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
	if store != nil {
		t.Error("expected nil store on error")
	}
}

func TestLoadStore_MaxLength(t *testing.T) {
	ctx, _ := testContext(t, "key = a very long value\n")
	ctx = WithLoadOptions(ctx, props.WithMaxLength(4))

	if _, err := loadStore(ctx); !errors.Is(err, props.ErrTokenTooLong) {
		t.Errorf("error = %v, want ErrTokenTooLong", err)
	}
}

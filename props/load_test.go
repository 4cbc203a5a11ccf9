package props

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/props/log"
)

func TestLoad(t *testing.T) {
	s, err := Load(t.Context(), filepath.Join("testdata", "test.properties"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer s.Release()

	want := map[string]string{
		"prop1":            "val1",
		"prop2":            "val2",
		"prop3":            "val3",
		"prop4":            "val4",
		"prop with spaces": "value with spaces",
	}

	if s.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(want))
	}

	for key, value := range want {
		got, ok := s.Get(key)
		if !ok || got != value {
			t.Errorf("Get(%q) = %q, %v; want %q", key, got, ok, value)
		}
	}
}

func TestLoad_Unavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.properties")

	s, err := Load(t.Context(), path)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("error = %v, want ErrSourceUnavailable", err)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v does not wrap fs.ErrNotExist", err)
	}

	if s != nil {
		t.Error("store returned for missing file")
	}
}

func TestLoad_ParseErrorCarriesPath(t *testing.T) {
	path := filepath.Join("testdata", "test.properties")

	_, err := Load(t.Context(), path, WithMaxLength(2))
	if !errors.Is(err, ErrTokenTooLong) {
		t.Fatalf("error = %v, want ErrTokenTooLong", err)
	}

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *Error", err)
	}

	if got := attrMap(perr.Attrs())["path"].String(); got != path {
		t.Errorf("path attr = %q, want %q", got, path)
	}
}

func TestLoadReader_Logger(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
	)

	s, err := LoadReader(t.Context(), strings.NewReader("a=1\nb=2\n"),
		WithLogger(logger))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	defer s.Release()

	out := buf.String()
	if !strings.Contains(out, `"msg":"parse complete"`) ||
		!strings.Contains(out, `"entry_count":2`) {
		t.Errorf("trace output = %s", out)
	}
}

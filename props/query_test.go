package props

import (
	"errors"
	"maps"
	"strings"
	"testing"
)

const queryInput = `
db.host = localhost
db.port = 5432
app.name = demo
app.debug = true
`

func TestStore_Select(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  map[string]string
	}{
		{
			"prefix",
			`key startsWith "db."`,
			map[string]string{"db.host": "localhost", "db.port": "5432"},
		},
		{
			"value",
			`value == "true"`,
			map[string]string{"app.debug": "true"},
		},
		{
			"none",
			`false`,
			map[string]string{},
		},
		{
			"env",
			`value == env("PROPS_QUERY_TEST")`,
			map[string]string{"app.name": "demo"},
		},
	}

	t.Setenv("PROPS_QUERY_TEST", "demo")

	s := mustParse(t, queryInput)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := CompileQuery(tt.query)
			if err != nil {
				t.Fatalf("CompileQuery: %v", err)
			}

			if q.String() != tt.query {
				t.Errorf("String() = %q", q.String())
			}

			got, err := s.Select(q)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			defer got.Release()

			if !maps.Equal(got.ToMap(), tt.want) {
				t.Errorf("Select = %v, want %v", got.ToMap(), tt.want)
			}
		})
	}

	if s.Len() != 4 {
		t.Errorf("source store modified: %v", s.Entries())
	}
}

func TestStore_Transform(t *testing.T) {
	s := mustParse(t, queryInput)

	tests := []struct {
		query string
		key   string
		want  string
	}{
		{`upper(value)`, "app.name", "DEMO"},
		{`key + "=" + value`, "db.port", "db.port=5432"},
		{`len(value)`, "db.host", "9"},
		{`value == "true"`, "app.debug", "true"},
		{`nil`, "app.name", ""},
	}

	for _, tt := range tests {
		q, err := CompileQuery(tt.query)
		if err != nil {
			t.Fatalf("CompileQuery(%q): %v", tt.query, err)
		}

		got, err := s.Transform(q)
		if err != nil {
			t.Fatalf("Transform(%q): %v", tt.query, err)
		}

		if got.Len() != s.Len() {
			t.Errorf("Transform(%q) Len() = %d", tt.query, got.Len())
		}

		if v, _ := got.Get(tt.key); v != tt.want {
			t.Errorf("Transform(%q)[%s] = %q, want %q", tt.query, tt.key, v, tt.want)
		}

		got.Release()
	}
}

func TestQuery_Mung(t *testing.T) {
	s := mustParse(t, "path = /usr/bin:/bin\n")

	q, err := CompileQuery(`mung.prefix(value, "/opt/bin")`)
	if err != nil {
		t.Fatalf("CompileQuery: %v", err)
	}

	got, err := s.Transform(q)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	defer got.Release()

	v, _ := got.Get("path")
	if !strings.HasPrefix(v, "/opt/bin") || !strings.Contains(v, "/usr/bin") {
		t.Errorf("path = %q", v)
	}
}

func TestQuery_Errors(t *testing.T) {
	s := mustParse(t, queryInput)

	if _, err := CompileQuery(`key ==`); !errors.Is(err, ErrQueryCompile) {
		t.Errorf("compile error = %v", err)
	}

	if _, err := CompileQuery(`undefined_name`); !errors.Is(err, ErrQueryCompile) {
		t.Errorf("unknown identifier error = %v", err)
	}

	q, err := CompileQuery(`len(value)`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Select(q); !errors.Is(err, ErrQueryResult) {
		t.Errorf("non-boolean select error = %v", err)
	}

	q, err = CompileQuery(`int(value) > 0`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Select(q); !errors.Is(err, ErrQueryEvaluate) {
		t.Errorf("runtime error = %v", err)
	}
}

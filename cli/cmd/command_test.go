package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/props/props"
)

const sample = `# sample
db.host = localhost
db.port = 5432
app.name = demo app
`

func TestGet(t *testing.T) {
	ctx, out := testContext(t, sample)

	if err := (&Get{Key: "db.port"}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := out.String(); got != "5432\n" {
		t.Errorf("output = %q", got)
	}

	ctx, _ = testContext(t, sample)
	if err := (&Get{Key: "nope"}).Run(ctx); !errors.Is(err, props.ErrKeyNotFound) {
		t.Errorf("missing key error = %v", err)
	}
}

func TestSet(t *testing.T) {
	ctx, out := testContext(t, sample)

	if err := (&Set{Key: "db.port", Value: "6543"}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "app.name = demo app\ndb.host = localhost\ndb.port = 6543\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDelete(t *testing.T) {
	ctx, out := testContext(t, sample)

	if err := (&Delete{Key: "db.host"}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "app.name = demo app\ndb.port = 5432\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	ctx, _ = testContext(t, sample)
	if err := (&Delete{Key: "nope"}).Run(ctx); !errors.Is(err, props.ErrKeyNotFound) {
		t.Errorf("missing key error = %v", err)
	}
}

type runner interface {
	Run(ctx context.Context) error
}

func TestFmt(t *testing.T) {
	tests := []struct {
		name string
		cmd  runner
		want []string // every line must appear in order
	}{
		{
			name: "native",
			cmd:  &Native{},
			want: []string{"app.name = demo app", "db.host = localhost", "db.port = 5432"},
		},
		{
			name: "json_compact",
			cmd:  &JSON{Indent: 0},
			want: []string{`{"app.name":"demo app","db.host":"localhost","db.port":"5432"}`},
		},
		{
			name: "json_indented",
			cmd:  &JSON{Indent: 2},
			want: []string{"{", `  "app.name": "demo app",`, `  "db.host": "localhost",`, `  "db.port": "5432"`, "}"},
		},
		{
			name: "yaml",
			cmd:  &YAML{Indent: 2},
			want: []string{"app.name: demo app", "db.host: localhost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, sample)

			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("Run: %v", err)
			}

			lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")

			next := 0
			for _, line := range lines {
				if next < len(tt.want) && line == tt.want[next] {
					next++
				}
			}

			if next != len(tt.want) {
				t.Errorf("output = %q, missing %q", out.String(), tt.want[next])
			}
		})
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		want    string
		wantErr error
	}{
		{
			name:  "select",
			query: Query{Expr: `key startsWith "db."`},
			want:  "db.host = localhost\ndb.port = 5432\n",
		},
		{
			name:  "transform",
			query: Query{Expr: `upper(value)`, Transform: true},
			want:  "app.name = DEMO APP\ndb.host = LOCALHOST\ndb.port = 5432\n",
		},
		{
			name:  "select_json",
			query: Query{Expr: `value == "5432"`, Format: "json"},
			want:  "{\n  \"db.port\": \"5432\"\n}\n",
		},
		{
			name:    "non_boolean_select",
			query:   Query{Expr: `len(value)`},
			wantErr: props.ErrQueryResult,
		},
		{
			name:    "compile_error",
			query:   Query{Expr: `key ==`},
			wantErr: props.ErrQueryCompile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := testContext(t, sample)

			err := tt.query.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

package repl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

func TestSession_Exec(t *testing.T) {
	s := &session{
		ctx:    context.Background(),
		store:  testStore(t, "db.host", "localhost", "db.port", "5432"),
		logger: log.Logger{},
	}

	tests := []struct {
		name    string
		line    string
		want    string
		action  action
		wantErr error
	}{
		{"get", "get db.host", "localhost", actionNone, nil},
		{"get_alias", "g db.port", "5432", actionNone, nil},
		{"get_missing", "get nope", "", actionNone, props.ErrKeyNotFound},
		{"get_usage", "get", "", actionNone, ErrUsage},
		{"set", "set db.user = admin", "db.user = admin", actionNone, nil},
		{"set_escaped_key", `set my\ key = a b`, "my key = a b", actionNone, nil},
		{"set_usage", "set", "", actionNone, ErrUsage},
		{"delete", "delete db.port", "deleted db.port", actionNone, nil},
		{"delete_missing", "delete db.port", "", actionNone, props.ErrKeyNotFound},
		{"list", "list", "db.host = localhost\ndb.user = admin\nmy key = a b", actionNone, nil},
		{"query", `query key startsWith "db."`, "db.host = localhost\ndb.user = admin", actionNone, nil},
		{"query_bad", "query (", "", actionNone, props.ErrQueryCompile},
		{"edit", "edit", "", actionEdit, nil},
		{"clear", "clear", "", actionClear, nil},
		{"quit", "quit", "", actionQuit, nil},
		{"exit", "exit", "", actionQuit, nil},
		{"unknown", "frob", "", actionNone, ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, act, err := s.exec(tt.line)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("exec(%q) error = %v, want %v", tt.line, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("exec(%q): %v", tt.line, err)
			}

			if got != tt.want || act != tt.action {
				t.Errorf("exec(%q) = (%q, %v), want (%q, %v)",
					tt.line, got, act, tt.want, tt.action)
			}
		})
	}
}

func TestHelpMessage_ListsCommands(t *testing.T) {
	help := helpMessage()
	for _, name := range commandNames() {
		if !strings.Contains(help, name) {
			t.Errorf("help missing %q", name)
		}
	}
}

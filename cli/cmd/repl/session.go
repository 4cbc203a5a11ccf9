package repl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

// action is a side effect requested by a command that the UI must perform.
type action int

const (
	actionNone action = iota
	actionQuit
	actionClear
	actionEdit
)

// command describes one REPL command.
type command struct {
	name    string
	alias   string
	usage   string
	summary string
	keyArg  bool // first argument is a key of the store
}

var commands = []command{
	{"get", "g", "get KEY", "Print the value of KEY", true},
	{"set", "s", "set KEY = VALUE", "Set KEY using properties syntax", true},
	{"delete", "d", "delete KEY", "Remove KEY", true},
	{"list", "l", "list", "Print every entry in key order", false},
	{"query", "?", "query EXPR", "Print entries for which EXPR is true", false},
	{"edit", "e", "edit", "Edit all entries in $EDITOR", false},
	{"help", "h", "help", "Print this help", false},
	{"clear", "c", "clear", "Clear the screen", false},
	{"quit", "q", "quit", "Exit", false},
}

// commandNames returns the full name of every command.
func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if name == c.name || name == c.alias || (name == "exit" && c.name == "quit") {
			return c, true
		}
	}

	return command{}, false
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("Commands:\n\n")

	for _, c := range commands {
		b.WriteString("  ")
		b.WriteString(c.usage)
		b.WriteString(strings.Repeat(" ", max(1, 18-len(c.usage))))
		b.WriteString(c.summary)
		b.WriteByte('\n')
	}

	b.WriteString(`
Press Tab / Shift-Tab to cycle completions of commands and keys.
Use Up/Down for history. Press Ctrl+C on an empty line or Ctrl+D to exit.`)

	return b.String()
}

// session executes commands against a store owned by the REPL.
type session struct {
	ctx    context.Context
	store  *props.Store
	logger log.Logger
}

// exec runs one input line and returns its printable output.
func (s *session) exec(line string) (string, action, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	cmd, ok := lookupCommand(name)
	if !ok {
		return "", actionNone, ErrUnknownCommand.With(slog.String("command", name))
	}

	s.logger.TraceContext(s.ctx, "repl exec command",
		slog.String("command", cmd.name),
		slog.String("args", rest))

	switch cmd.name {
	case "get":
		if rest == "" {
			return "", actionNone, ErrUsage.With(slog.String("usage", cmd.usage))
		}

		value, ok := s.store.Get(rest)
		if !ok {
			return "", actionNone, props.ErrKeyNotFound.With(slog.String("key", rest))
		}

		return value, actionNone, nil

	case "set":
		return s.set(cmd, rest)

	case "delete":
		if rest == "" {
			return "", actionNone, ErrUsage.With(slog.String("usage", cmd.usage))
		}

		if !s.store.Delete(rest) {
			return "", actionNone, props.ErrKeyNotFound.With(slog.String("key", rest))
		}

		return "deleted " + rest, actionNone, nil

	case "list":
		return s.list(s.store), actionNone, nil

	case "query":
		if rest == "" {
			return "", actionNone, ErrUsage.With(slog.String("usage", cmd.usage))
		}

		q, err := props.CompileQuery(rest)
		if err != nil {
			return "", actionNone, err
		}

		selected, err := s.store.Select(q)
		if err != nil {
			return "", actionNone, err
		}
		defer selected.Release()

		return s.list(selected), actionNone, nil

	case "edit":
		return "", actionEdit, nil

	case "help":
		return helpMessage(), actionNone, nil

	case "clear":
		return "", actionClear, nil

	default: // quit
		return "", actionQuit, nil
	}
}

// set parses rest as a properties source so keys may contain escaped blanks
// and values keep their spacing.
func (s *session) set(cmd command, rest string) (string, action, error) {
	parsed, err := props.ParseString(s.ctx, rest, props.WithLogger(s.logger))
	if err != nil {
		return "", actionNone, err
	}
	defer parsed.Release()

	if parsed.Len() == 0 {
		return "", actionNone, ErrUsage.With(slog.String("usage", cmd.usage))
	}

	var b strings.Builder

	for key, value := range parsed.All() {
		if err := s.store.Set(key, value); err != nil {
			return "", actionNone, err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(key + " = " + value)
	}

	return b.String(), actionNone, nil
}

func (s *session) list(store *props.Store) string {
	var b strings.Builder

	_ = store.Print(&b)

	return strings.TrimSuffix(b.String(), "\n")
}

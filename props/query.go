package props

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"sync"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Query is a compiled expr-lang expression evaluated once per entry.
//
// The expression sees the following environment:
//
//	key              the entry key
//	value            the entry value
//	env(name)        the process environment variable name
//	mung.prefix      prepend items to a PATH-like list
//	mung.prefixif    prepend items passing a predicate to a PATH-like list
type Query struct {
	source  string
	program *vm.Program
}

// CompileQuery compiles source into a Query.
func CompileQuery(source string) (*Query, error) {
	program, err := expr.Compile(source, expr.Env(queryEnv(Entry{})))
	if err != nil {
		return nil, ErrQueryCompile.
			With(slog.String("query", source)).
			Wrap(err)
	}

	return &Query{source: source, program: program}, nil
}

// String returns the source text of q.
func (q *Query) String() string { return q.source }

// Eval runs q against a single entry.
func (q *Query) Eval(e Entry) (any, error) {
	out, err := expr.Run(q.program, queryEnv(e))
	if err != nil {
		return nil, ErrQueryEvaluate.
			With(slog.String("query", q.source), slog.String("key", e.Key)).
			Wrap(err)
	}

	return out, nil
}

// Select returns a new Store holding the entries for which q evaluates to
// true. Any non-boolean result fails with [ErrQueryResult].
func (s *Store) Select(q *Query) (*Store, error) {
	selected := make([]Entry, 0, s.Len())

	for key, value := range s.All() {
		e := Entry{Key: key, Value: value}

		out, err := q.Eval(e)
		if err != nil {
			return nil, err
		}

		keep, ok := out.(bool)
		if !ok {
			return nil, ErrQueryResult.With(
				slog.String("query", q.source),
				slog.String("key", key),
				slog.String("type", fmt.Sprintf("%T", out)),
			)
		}

		if keep {
			selected = append(selected, e)
		}
	}

	return fromSorted(selected), nil
}

// Transform returns a new Store with the same keys as s, where each value is
// replaced by the result of q formatted as a string.
func (s *Store) Transform(q *Query) (*Store, error) {
	mapped := make([]Entry, 0, s.Len())

	for key, value := range s.All() {
		out, err := q.Eval(Entry{Key: key, Value: value})
		if err != nil {
			return nil, err
		}

		mapped = append(mapped, Entry{Key: key, Value: FormatResult(out)})
	}

	return fromSorted(mapped), nil
}

// FormatResult formats a query result as a property value.
func FormatResult(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// builtinEnv is the process-scoped part of every query environment.
var builtinEnv = sync.OnceValue(func() map[string]any {
	return map[string]any{
		"env": os.Getenv,

		// PATH-like string manipulation via mung.
		"mung": map[string]any{
			"prefix":   mungPrefix,
			"prefixif": mungPrefixIf,
		},
	}
})

func queryEnv(e Entry) map[string]any {
	env := maps.Clone(builtinEnv())
	env["key"] = e.Key
	env["value"] = e.Value

	return env
}

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

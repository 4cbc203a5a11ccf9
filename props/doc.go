// Package props loads Java-style .properties files into an ordered
// in-memory key/value store.
//
// # Format
//
// A properties source is a sequence of lines:
//
//	# comment lines start with '#' or '!' after optional whitespace
//	key = value
//	key:value
//	key value with spaces
//	continued = first line \
//	            second line
//	escaped\ key = a\=b
//
// A key ends at the first unescaped '=', ':', blank, or line terminator.
// The separator between key and value is optional and may be surrounded by
// blanks. A backslash before any character makes it literal; a backslash at
// the end of a line continues the value on the next line, dropping leading
// blanks there. Unicode escapes such as \u0041 are not decoded; the
// backslash is dropped and "u0041" is kept.
//
// # Store
//
// A [Store] keeps entries sorted by key in byte order, with unique keys:
//
//	store, err := props.Load(ctx, "app.properties")
//	if err != nil {
//		return err
//	}
//	defer store.Release()
//
//	host, ok := store.Get("db.host")
//	_ = store.Set("db.port", "5432")
//	store.Delete("legacy.flag")
//	store.Print(os.Stdout) // key = value, ascending
//
// Loading is all-or-nothing: on any error no Store is returned.
//
// A Store is owned by one caller at a time and is not safe for concurrent
// mutation. A [Cache] may be shared; each load it serves returns an
// independent Store.
//
// # Queries
//
// [CompileQuery] compiles an expr-lang expression evaluated per entry with
// key and value in scope. [Store.Select] filters by a boolean expression and
// [Store.Transform] rewrites values:
//
//	q, _ := props.CompileQuery(`key startsWith "db."`)
//	db, _ := store.Select(q)
package props

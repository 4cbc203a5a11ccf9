package props

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// WriteTo writes every entry as "key = value\n" in ascending key order.
// Keys and values are written verbatim; no characters are escaped.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for key, value := range s.All() {
		n, err := io.WriteString(w, key+" = "+value+"\n")
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// Print writes every entry to w as described by [Store.WriteTo].
func (s *Store) Print(w io.Writer) error {
	_, err := s.WriteTo(w)

	return err
}

// FormatJSON writes the Store to w as a JSON object whose members appear in
// ascending key order.
func (s *Store) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}

	if indent > 0 {
		var buf bytes.Buffer

		err = json.Indent(&buf, data, "", strings.Repeat(" ", indent))
		if err != nil {
			return err
		}

		data = buf.Bytes()
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the Store to w as a YAML mapping whose keys appear in
// ascending order. An indent of zero selects flow style.
func (s *Store) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, s.mapSlice(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

func (s *Store) mapSlice() yaml.MapSlice {
	items := make(yaml.MapSlice, 0, s.Len())
	for key, value := range s.All() {
		items = append(items, yaml.MapItem{Key: key, Value: value})
	}

	return items
}

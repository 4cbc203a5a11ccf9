package props

import (
	"bytes"
	"encoding/json"
	"maps"
)

// MarshalJSON implements json.Marshaler. The Store is encoded as an object
// with members in ascending key order.
//
// JSON strings are UTF-8, so each invalid byte in a key or value is encoded
// as U+FFFD. Such entries do not survive a round trip through JSON; use
// [Store.Print] to keep the raw bytes.
func (s *Store) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true

	for key, value := range s.All() {
		if !first {
			buf.WriteByte(',')
		}

		first = false

		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, replacing the contents of s with
// the members of a JSON object of strings.
func (s *Store) UnmarshalJSON(data []byte) error {
	var m map[string]string

	err := json.Unmarshal(data, &m)
	if err != nil {
		return err
	}

	if s == nil || s.released {
		return ErrReleased
	}

	s.entries = s.entries[:0]

	for key, value := range m {
		if err := s.Set(key, value); err != nil {
			return err
		}
	}

	return nil
}

// ToMap converts the Store to a native Go map.
func (s *Store) ToMap() map[string]string {
	return maps.Collect(s.All())
}

package props

import (
	"encoding/json"
	"errors"
	"maps"
	"testing"
)

func TestStore_JSONField(t *testing.T) {
	type document struct {
		Name  string `json:"name"`
		Props *Store `json:"props"`
	}

	doc := document{Name: "demo", Props: mustParse(t, "b=2\na=1\n")}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if want := `{"name":"demo","props":{"a":"1","b":"2"}}`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	decoded := document{Props: New()}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !maps.Equal(decoded.Props.ToMap(), map[string]string{"a": "1", "b": "2"}) {
		t.Errorf("decoded = %v", decoded.Props.ToMap())
	}
}

func TestStore_UnmarshalJSON(t *testing.T) {
	s := mustParse(t, "old=gone\n")

	if err := s.UnmarshalJSON([]byte(`{"z":"1","a":"2"}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	want := []Entry{{"a", "2"}, {"z", "1"}}
	if got := s.Entries(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	if err := s.UnmarshalJSON([]byte(`{"a":1}`)); err == nil {
		t.Error("non-string member accepted")
	}

	if s.Len() != 2 {
		t.Errorf("failed unmarshal modified store: %v", s.Entries())
	}

	s.Release()

	if err := s.UnmarshalJSON([]byte(`{}`)); !errors.Is(err, ErrReleased) {
		t.Errorf("unmarshal into released store = %v", err)
	}
}

func TestStore_UnmarshalJSONNil(t *testing.T) {
	var s *Store

	if err := s.UnmarshalJSON([]byte(`{"a":"1"}`)); !errors.Is(err, ErrReleased) {
		t.Errorf("unmarshal into nil store = %v, want ErrReleased", err)
	}
}

func TestStore_MarshalJSONInvalidUTF8(t *testing.T) {
	s, err := ParseString(t.Context(), "k\xff = v\xfe\n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	defer s.Release()

	if v, _ := s.Get("k\xff"); v != "v\xfe" {
		t.Fatalf("raw bytes not kept: %q", v)
	}

	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	if want := `{"k\ufffd":"v\ufffd"}`; string(data) != want {
		t.Errorf("MarshalJSON = %s, want %s", data, want)
	}
}

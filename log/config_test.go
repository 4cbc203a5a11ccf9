package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevels_RoundTrip(t *testing.T) {
	names := slices.Collect(Levels())
	if len(names) != 5 {
		t.Fatalf("expected 5 levels, got %v", names)
	}

	for _, name := range names {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range slices.Collect(Formats()) {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, got)
		}
	}

	if got := ParseFormat("yaml"); got != DefaultFormat {
		t.Errorf("expected default format for unknown name, got %v", got)
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-05-06T07:08:09Z"},
		{"rfc-3339", "2024-05-06T07:08:09Z"},
		{"Kitchen", "7:08AM"},
		{"DateTime", "2024-05-06 07:08:09"},
		{"2006/01/02", "2024/05/06"},
		{"none", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

package props

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel", ErrKeyNotFound, ErrKeyNotFound, true},
		{"with", ErrKeyNotFound.With(slog.String("key", "k")), ErrKeyNotFound, true},
		{"wrap", ErrReadInput.Wrap(cause), ErrReadInput, true},
		{"wrap_cause", ErrReadInput.Wrap(cause), cause, true},
		{"position", ErrTokenTooLong.WithPosition(Position{Line: 2}), ErrTokenTooLong, true},
		{"other_sentinel", ErrKeyNotFound, ErrReleased, false},
		{"nested", ErrSourceUnavailable.Wrap(ErrReadInput.Wrap(cause)), ErrReadInput, true},
		{"fmt_wrapped", fmt.Errorf("load: %w", ErrReleased.With()), ErrReleased, true},
		{"plain_target", ErrReleased, cause, false},
		{"distinct_new", NewError("store released"), ErrReleased, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		err  *Error
		want string
	}{
		{NewError("msg"), "msg"},
		{NewError("msg").Wrap(cause), "msg: cause"},
		{WrapError(cause), "cause"},
		{&Error{}, ""},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_WithIsImmutable(t *testing.T) {
	base := NewError("base").With(slog.String("a", "1"))
	derived := base.With(slog.String("b", "2"))

	if len(base.Attrs()) != 1 || len(derived.Attrs()) != 2 {
		t.Errorf("attrs = %v, %v", base.Attrs(), derived.Attrs())
	}

	attrs := derived.Attrs()
	attrs[0] = slog.String("a", "mutated")

	if derived.Attrs()[0].Value.String() != "1" {
		t.Error("Attrs() exposes internal slice")
	}
}

func TestWrapError(t *testing.T) {
	inner := ErrKeyNotFound.With(slog.String("key", "k"))

	if got := WrapError(fmt.Errorf("outer: %w", inner)); got != inner {
		t.Errorf("WrapError did not return wrapped *Error: %v", got)
	}

	cause := errors.New("plain")
	if got := WrapError(cause); !errors.Is(got, cause) {
		t.Errorf("WrapError(plain) = %v", got)
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrTokenTooLong.
		WithPosition(Position{Line: 3, Column: 7}).
		Wrap(errors.New("cause"))

	got := attrMap(err.LogValue().Group())

	if got["error"].String() != "token exceeds maximum length" ||
		got["cause"].String() != "cause" ||
		got["line"].Int64() != 3 ||
		got["column"].Int64() != 7 {
		t.Errorf("LogValue = %v", got)
	}
}

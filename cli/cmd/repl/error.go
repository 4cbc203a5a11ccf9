package repl

import "github.com/ardnew/props/props"

// Sentinel errors.
var (
	ErrOutOfBounds    = props.NewError("history index out of range")
	ErrUnknownCommand = props.NewError("unknown command (try 'help')")
	ErrUsage          = props.NewError("usage")
)

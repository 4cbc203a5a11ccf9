package repl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ardnew/props/log"
	"github.com/ardnew/props/props"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It writes the store to a temp
// file in properties syntax, opens the user's editor on it, and parses the
// result into a replacement store.
type editCommand struct {
	store   *props.Store
	ctxFunc func() context.Context
	logger  log.Logger
	edited  *props.Store // nil when the edit was cancelled
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run edits the store. Clearing the file cancels the edit.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := c.store.Print(&buf); err != nil {
		return err
	}

	f, err := os.CreateTemp("", "props-repl-*.properties")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	_, err = f.Write(buf.Bytes())
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Size() == 0 {
		return nil
	}

	edited, err := props.Load(ctx, path, props.WithLogger(c.logger))

	c.logger.TraceContext(ctx, "editor parse attempt",
		slog.Int64("content_length", info.Size()),
		slog.Bool("success", err == nil))

	if err != nil {
		return err
	}

	c.edited = edited

	return nil
}

// runEditor runs $EDITOR, or vi, on path and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

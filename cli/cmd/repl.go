package cmd

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/props/cli/cmd/repl"
	"github.com/ardnew/props/log"
)

// Repl starts an interactive session over the merged sources.
type Repl struct {
	History bool `default:"true" help:"Persist command history in the cache directory" negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	defer store.Release()

	var opts []tea.ProgramOption

	// Standard input was consumed as a source; read keys from the terminal.
	if sourcesFrom(ctx).Stdin() {
		opts = append(opts, tea.WithInputTTY())
	}

	return repl.Run(ctx, store, r.historyPath(ctx), log.Default(), opts...)
}

func (r *Repl) historyPath(ctx context.Context) string {
	if !r.History {
		return ""
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok || dir == "" {
		return ""
	}

	return filepath.Join(dir, repl.HistoryFile)
}

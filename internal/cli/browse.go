package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/ecofocus/internal/config"
)

// shouldUseInteractiveTUI reports whether output to w can be replaced by
// an interactive browser: table format, no --plain, and both w and stdin
// are terminals.
func shouldUseInteractiveTUI(outputFormat string, plainFlag bool, w io.Writer) bool {
	if outputFormat != config.FormatTable {
		return false
	}
	if plainFlag {
		return false
	}
	return isWriterTerminal(w) && isTerminal(os.Stdin)
}

// runInteractive runs model full screen until the user quits or ctx is
// canceled.
func runInteractive(ctx context.Context, model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"filedesk/internal/model"
)

// Run starts the interactive history browser and blocks until the user
// quits.
func Run(ctx context.Context, mine []model.FilingRecord, shared []model.SharedFile, pageSize int) error {
	program := tea.NewProgram(
		New(mine, shared, pageSize),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("history browser failed: %w", err)
	}
	return nil
}

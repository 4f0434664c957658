package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeGii/vomm-sub000/internal/engine"
)

func RunBoard(ctx context.Context, svc *engine.Service, playerID string, out io.Writer) error {
	m := newBoardModel(ctx, svc, playerID)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

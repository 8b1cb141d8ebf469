package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/musicadm/internal/services"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
)

// consoleNotifier prints notifications as styled one-liners, usually to stderr so stdout stays parseable.
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Notify(_ context.Context, note services.Notification) {
	fmt.Fprintln(n.w, renderNotice(note))
}

func renderNotice(n services.Notification) string {
	switch n.Level {
	case services.LevelSuccess:
		return successStyle.Render("✓ " + n.Message)
	case services.LevelError:
		if n.Status > 0 {
			return errorStyle.Render(fmt.Sprintf("✗ %s (HTTP %d)", n.Message, n.Status))
		}
		return errorStyle.Render("✗ " + n.Message)
	case services.LevelWarn:
		return warnStyle.Render("! " + n.Message)
	default:
		return infoStyle.Render(n.Message)
	}
}

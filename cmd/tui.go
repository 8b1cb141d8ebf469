package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicadm/internal/services"
	"github.com/desertthunder/musicadm/internal/shared"
	"github.com/desertthunder/musicadm/internal/ui"
	"github.com/urfave/cli/v3"
)

const defaultTUILog = "./tmp/musicadm-tui.log"

// TUI launches the interactive terminal UI.
//
// The TUI gets its own client so API failures land on its status line instead of stderr.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.config == nil {
		return fmt.Errorf("%w: configuration not loaded", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.Logging.File
	if logPath == "" {
		logPath = defaultTUILog
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.SetLogLevelString(fileLogger, r.config.Logging.Level); err != nil {
		return err
	}
	r.SetLogger(fileLogger)

	program := ui.NewProgramNotifier()
	svc := r.newServices(r.tuiSinks(program), fileLogger)
	model := ui.NewModel(ctx, svc, r.tuiSinks(nil))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	program.Attach(p)
	defer program.Detach()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiSinks fans notifications out to the journal and, when set, the running program.
func (r *Runner) tuiSinks(program *ui.ProgramNotifier) services.Notifier {
	multi := services.MultiNotifier{}
	if r.journal != nil {
		multi = append(multi, r.journal)
	}
	if program != nil {
		multi = append(multi, program)
	}
	return multi
}

package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicadm/internal/services"
)

var _ services.Notifier = (*ProgramNotifier)(nil)

// ProgramNotifier forwards notifications into a running [tea.Program], where they appear on the status line.
//
// Notifications sent before [ProgramNotifier.Attach] or after [ProgramNotifier.Detach] are dropped.
type ProgramNotifier struct {
	mu      sync.RWMutex
	program *tea.Program
}

func NewProgramNotifier() *ProgramNotifier {
	return &ProgramNotifier{}
}

func (n *ProgramNotifier) Attach(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

func (n *ProgramNotifier) Detach() {
	n.Attach(nil)
}

func (n *ProgramNotifier) Notify(_ context.Context, note services.Notification) {
	n.mu.RLock()
	p := n.program
	n.mu.RUnlock()

	if p != nil {
		go p.Send(noticeMsg(note))
	}
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ProgramLink bridges the auth layer into a running bubbletea program.
//
// The token coordinator reports session events from its own goroutines, so
// they have to enter the Elm loop through [tea.Program.Send]. ProgramLink
// implements both the notifier and navigator hooks the coordinator accepts.
type ProgramLink struct {
	program *tea.Program
}

// NewProgramLink wraps a running program for session event delivery.
func NewProgramLink(program *tea.Program) *ProgramLink {
	return &ProgramLink{program: program}
}

// Notify shows a transient banner with the given message.
func (l *ProgramLink) Notify(message string) {
	if l.program == nil {
		return
	}
	l.program.Send(bannerMsg{message: message})
}

// NavigateTo switches the active view. Only the login route is routable
// from outside the Elm loop.
func (l *ProgramLink) NavigateTo(route string) {
	if l.program == nil {
		return
	}
	l.program.Send(navigateMsg{route: route})
}

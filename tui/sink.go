package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cbsinteractive/video-search-client/job"
)

// Messages delivered into the dashboard model. Background goroutines send
// these through a running tea.Program.
type (
	// ProgressMsg carries the aggregate upload percentage.
	ProgressMsg float64
	// InfoMsg carries a short status line.
	InfoMsg string
	// BusyMsg toggles the upload-in-flight state.
	BusyMsg bool
	// SearchingMsg toggles the searching spinner.
	SearchingMsg bool
	// JobsMsg replaces the jobs table contents.
	JobsMsg []job.Record
	// DoneMsg ends the dashboard.
	DoneMsg struct{ Err error }
)

// Sink adapts a running tea.Program into an upload.StatusSink, so the core
// upload and job-creation flows can publish progress into the dashboard
// without knowing anything about rendering.
type Sink struct {
	Program *tea.Program
}

func (s Sink) Progress(percent float64) { s.Program.Send(ProgressMsg(percent)) }
func (s Sink) Info(message string)      { s.Program.Send(InfoMsg(message)) }
func (s Sink) Busy(busy bool)           { s.Program.Send(BusyMsg(busy)) }

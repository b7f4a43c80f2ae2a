// Package tui renders the upload dashboard: an aggregate progress bar, a
// status line and the session's job table. It consumes the core's outputs
// (progress percentages, status messages, job records) and nothing else.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cbsinteractive/video-search-client/job"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Model is the dashboard's bubbletea model.
type Model struct {
	bar       progress.Model
	spin      spinner.Model
	jobs      table.Model
	percent   float64
	info      string
	busy      bool
	searching bool
	err       error
	quitting  bool
}

// NewModel builds a dashboard seeded with the given job records.
func NewModel(records []job.Record) Model {
	columns := []table.Column{
		{Title: "Video", Width: 36},
		{Title: "Status", Width: 12},
		{Title: "Started", Width: 20},
		{Title: "End Time", Width: 20},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(jobRows(records)),
		table.WithHeight(10),
	)
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		bar:  progress.New(progress.WithDefaultGradient()),
		spin: sp,
		jobs: t,
		info: "Add new video to database",
	}
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case ProgressMsg:
		m.percent = float64(msg)
		return m, nil
	case InfoMsg:
		m.info = string(msg)
		return m, nil
	case BusyMsg:
		m.busy = bool(msg)
		return m, nil
	case SearchingMsg:
		m.searching = bool(msg)
		return m, nil
	case JobsMsg:
		m.jobs.SetRows(jobRows(msg))
		return m, nil
	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.jobs, cmd = m.jobs.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting && m.err == nil {
		return ""
	}

	header := titleStyle.Render("Video shot search")
	status := infoStyle.Render(m.info)
	if m.searching {
		status = m.spin.View() + " " + status
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.bar.ViewAs(m.percent/100),
		status,
		panelStyle.Render(m.jobs.View()),
	)
	if m.err != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, errStyle.Render(m.err.Error()))
	}
	return body + "\n"
}

func jobRows(records []job.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{DisplayInputName(r.InputName), r.Status, r.StartTime, r.EndTime})
	}
	return rows
}

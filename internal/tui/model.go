package tui

import (
	"context"
	"strings"

	"portfoliowidget/internal/widget"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	equityStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	chartStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Messages.
type stateSettledMsg struct{}
type mountErrMsg struct{ err error }

// Model hosts a single PortfolioView for the lifetime of the program.
type Model struct {
	ctx      context.Context
	view     *widget.PortfolioView
	state    widget.ViewState
	quitting bool
}

func NewModel(ctx context.Context, view *widget.PortfolioView) Model {
	return Model{
		ctx:   ctx,
		view:  view,
		state: view.State(),
	}
}

// Init is the mount point: it starts the fetch and waits for it to settle.
func (m Model) Init() tea.Cmd {
	if err := m.view.Mount(m.ctx); err != nil {
		return func() tea.Msg {
			return mountErrMsg{err: err}
		}
	}
	return waitForSettle(m.view)
}

func waitForSettle(view *widget.PortfolioView) tea.Cmd {
	return func() tea.Msg {
		<-view.Done()
		return stateSettledMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.view.Unmount()
			m.quitting = true
			return m, tea.Quit
		}
	case stateSettledMsg:
		m.state = m.view.State()
	case mountErrMsg:
		m.state = widget.ViewState{
			Phase: widget.Failed,
			Err:   msg.err,
		}
	}
	return m, nil
}

func (m Model) State() widget.ViewState {
	return m.state
}

func (m Model) View() string {
	layout := widget.NewLayout(m.state)

	lines := []string{headingStyle.Render(layout.Heading)}
	if layout.EquityLine != "" {
		lines = append(lines, equityStyle.Render(layout.EquityLine))
	}
	if layout.ChartArea != "" {
		lines = append(lines, chartStyle.Render(layout.ChartArea))
	}
	if layout.ErrorLine != "" {
		lines = append(lines, errorStyle.Render(layout.ErrorLine))
	}
	if !m.quitting {
		lines = append(lines, "", helpStyle.Render("q: quit"))
	}

	return strings.Join(lines, "\n") + "\n"
}

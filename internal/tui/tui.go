// Package tui renders the live tmux process dashboard.
package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmuxtop/tmuxtop/internal/config"
	"github.com/tmuxtop/tmuxtop/internal/monitor"
	"github.com/tmuxtop/tmuxtop/internal/snapshot"
	"github.com/tmuxtop/tmuxtop/pkg/models"
)

const statusDuration = 3 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63"))
	headingBold = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

type tickMsg time.Time

// model is the single-threaded dashboard loop: every poll tick it refreshes
// the sampler (which no-ops between refresh gates), re-renders, and handles
// at most one key press. Backup, restore and export run synchronously and
// block the loop for their duration.
type model struct {
	cfg     config.Config
	sampler *monitor.Sampler
	cwd     snapshot.WorkingDirFunc
	runner  snapshot.Runner

	topo  models.Topology
	table monitor.Table

	scroll int
	width  int
	height int

	ready       bool
	spin        spinner.Model
	status      string
	statusUntil time.Time
	now         func() time.Time
}

func newModel(cfg config.Config, sampler *monitor.Sampler, cwd snapshot.WorkingDirFunc, runner snapshot.Runner) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	return model{
		cfg:     cfg,
		sampler: sampler,
		cwd:     cwd,
		runner:  runner,
		spin:    sp,
		width:   120,
		height:  40,
		now:     time.Now,
	}
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.PollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	// Sample immediately instead of waiting out the first poll interval.
	first := func() tea.Msg { return tickMsg(time.Now()) }
	return tea.Batch(first, m.spin.Tick)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		m.topo, m.table = m.sampler.Refresh(time.Time(msg))
		m.ready = true
		if m.status != "" && m.now().After(m.statusUntil) {
			m.status = ""
		}
		return m, m.tickCmd()

	case spinner.TickMsg:
		if !m.ready {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "b":
			m.backup()
		case "r":
			m.restore()
		case "e":
			m.export()
		}
	}
	return m, nil
}

func (m *model) backup() {
	path, err := snapshot.Capture(m.topo, m.cwd, ".", m.cfg.BackupPrefix)
	if err != nil {
		m.setStatus(fmt.Sprintf("Backup failed: %v", err))
		return
	}
	m.setStatus("Sessions backed up to " + path)
}

func (m *model) restore() {
	path, err := snapshot.Restore(".", m.cfg.BackupPrefix, m.runner)
	if err != nil {
		if path != "" {
			m.setStatus(fmt.Sprintf("Failed to restore sessions from %s: %v", path, err))
		} else {
			m.setStatus(fmt.Sprintf("Restore failed: %v", err))
		}
		return
	}
	m.setStatus("Sessions restored from " + path)
}

func (m *model) export() {
	if err := snapshot.Export(m.topo, m.table, m.cfg.ExportFile); err != nil {
		m.setStatus(fmt.Sprintf("Export failed: %v", err))
		return
	}
	m.setStatus("Data exported to " + m.cfg.ExportFile)
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusUntil = m.now().Add(statusDuration)
}

func (m model) View() string {
	if !m.ready {
		return fmt.Sprintf("\n  %s gathering tmux sessions...", m.spin.View())
	}

	title := "tmuxtop - q quit | b backup | r restore | e export | up/down scroll"
	header := titleStyle.Render(padCenter(title, m.width))
	columns := headingBold.Render(columnHeader(m.cfg.HistorySize))

	// Three header rows and one status row frame the body.
	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := visibleWindow(renderLines(m.topo, m.table, m.width, m.cfg.HistorySize), m.scroll, bodyHeight)

	foot := footerStyle.Render(fmt.Sprintf("offset %d", m.scroll))
	if m.status != "" {
		foot = statusStyle.Render(m.status)
	}

	return header + "\n\n" + columns + "\n" + strings.Join(body, "\n") + "\n" + foot
}

func padCenter(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// Run starts the dashboard in the alternate screen.
func Run(cfg config.Config, sampler *monitor.Sampler, cwd snapshot.WorkingDirFunc) error {
	p := tea.NewProgram(newModel(cfg, sampler, cwd, snapshot.RunScript), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

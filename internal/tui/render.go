package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tmuxtop/tmuxtop/internal/monitor"
	"github.com/tmuxtop/tmuxtop/pkg/models"
)

var (
	sessionStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("229"))
	windowStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	paneStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)

	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// severity buckets a percentage for color banding.
type severity int

const (
	sevLow severity = iota
	sevMedium
	sevHigh
)

// band maps a percentage to its severity. Boundary values take the upper
// band: 50 is medium, 80 is high.
func band(v float64) severity {
	switch {
	case v >= 80:
		return sevHigh
	case v >= 50:
		return sevMedium
	default:
		return sevLow
	}
}

func bandStyle(v float64) lipgloss.Style {
	switch band(v) {
	case sevHigh:
		return highStyle
	case sevMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a rolling history (oldest first) as one glyph per
// sample, scaled against the history's own maximum, right-padded with
// spaces to width. An all-zero history renders the lowest glyph throughout.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max < 1e-9 {
		max = 1e-9
	}
	var b strings.Builder
	for _, v := range values {
		level := int(v / max * float64(len(sparkLevels)-1))
		if level < 0 {
			level = 0
		}
		if level >= len(sparkLevels) {
			level = len(sparkLevels) - 1
		}
		b.WriteRune(sparkLevels[level])
	}
	for i := len(values); i < width; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}

// columnHeader is the fixed process-row heading. graphWidth is the sparkline
// display width (the history capacity).
func columnHeader(graphWidth int) string {
	return fmt.Sprintf("%-7s %-7s %-8s %5s %5s %-*s %-*s %8s %s",
		"PID", "PPID", "USER", "CPU%", "MEM%",
		graphWidth, "CPU GRAPH", graphWidth, "MEM GRAPH", "TIME", "COMMAND")
}

// renderLines lays the full hierarchy out as display lines, unclipped. The
// caller applies the scroll offset and viewport height. It reads the
// topology and table without mutating either.
func renderLines(topo models.Topology, table monitor.Table, width, graphWidth int) []string {
	var lines []string
	for _, session := range topo {
		lines = append(lines, sessionStyle.Render("Session: "+session.Name))
		for _, window := range session.Windows {
			lines = append(lines, "  "+windowStyle.Render(fmt.Sprintf("Window: %s:%s", window.Index, window.Name)))
			for _, pane := range window.Panes {
				lines = append(lines, "    "+paneStyle.Render(fmt.Sprintf("Pane %s:", pane.Index)))
				if len(pane.Command) > 0 {
					lines = append(lines, "    "+commandStyle.Render("> "+strings.Join(pane.Command, " ")))
				}
				for _, pid := range pane.TreePIDs {
					rec, ok := table[pid]
					if !ok {
						continue
					}
					lines = append(lines, processRow(rec, width, graphWidth))
				}
				lines = append(lines, "")
			}
		}
	}
	return lines
}

// processRow formats one record, color banding the CPU and memory cells and
// truncating the command so the row never exceeds the viewport width.
func processRow(rec *monitor.Record, width, graphWidth int) string {
	cpu := rec.CPU.Last()
	mem := rec.Mem.Last()

	// 4 indent + fixed columns + separating spaces.
	fixed := 4 + 7 + 1 + 7 + 1 + 8 + 1 + 5 + 1 + 5 + 1 + graphWidth + 1 + graphWidth + 1 + 8 + 1
	cmd := strings.Join(rec.Cmdline, " ")
	if budget := width - fixed; budget <= 0 && width > 0 {
		cmd = ""
	} else if r := []rune(cmd); budget > 0 && len(r) > budget {
		cmd = string(r[:budget])
	}

	return fmt.Sprintf("    %-7d %-7d %-8s %s %s %s %s %8s %s",
		rec.PID, rec.PPID, rec.User,
		bandStyle(cpu).Render(fmt.Sprintf("%5.1f", cpu)),
		bandStyle(mem).Render(fmt.Sprintf("%5.1f", mem)),
		bandStyle(cpu).Render(sparkline(rec.CPU.Values(), graphWidth)),
		bandStyle(mem).Render(sparkline(rec.Mem.Values(), graphWidth)),
		rec.Started, cmd)
}

// visibleWindow slices lines by the scroll offset and pads with blank lines
// to exactly height rows. Offsets past the content just yield blanks; there
// is no clamp against the content length.
func visibleWindow(lines []string, offset, height int) []string {
	if height < 0 {
		height = 0
	}
	out := make([]string, 0, height)
	for i := offset; i < offset+height; i++ {
		if i >= 0 && i < len(lines) {
			out = append(out, lines[i])
		} else {
			out = append(out, "")
		}
	}
	return out
}

package tui

import (
	"strings"
	"testing"

	"github.com/tmuxtop/tmuxtop/internal/monitor"
	"github.com/tmuxtop/tmuxtop/pkg/models"
)

func TestBandBoundaries(t *testing.T) {
	tests := []struct {
		value float64
		want  severity
	}{
		{0, sevLow},
		{49.9, sevLow},
		{50, sevMedium},
		{79.9, sevMedium},
		{80, sevHigh},
		{100, sevHigh},
		{250, sevHigh},
	}
	for _, tt := range tests {
		if got := band(tt.value); got != tt.want {
			t.Errorf("band(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestSparklineAllZero(t *testing.T) {
	got := sparkline([]float64{0, 0, 0}, 5)
	if got != "▁▁▁  " {
		t.Errorf("sparkline = %q, want lowest glyph per sample plus padding", got)
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := sparkline(nil, 4); got != "    " {
		t.Errorf("sparkline(nil) = %q, want all blanks", got)
	}
}

func TestSparklineScalesToMax(t *testing.T) {
	got := []rune(sparkline([]float64{0, 2, 4}, 3))
	if got[0] != sparkLevels[0] {
		t.Errorf("zero sample rendered %q, want lowest glyph", got[0])
	}
	if got[2] != sparkLevels[len(sparkLevels)-1] {
		t.Errorf("max sample rendered %q, want highest glyph", got[2])
	}
	mid := got[1]
	if mid == got[0] || mid == got[2] {
		t.Errorf("half-max sample rendered %q, want an intermediate glyph", mid)
	}
}

func TestVisibleWindowSlicesAndPads(t *testing.T) {
	lines := []string{"a", "b", "c"}

	got := visibleWindow(lines, 0, 2)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("window at offset 0 = %v", got)
	}

	got = visibleWindow(lines, 2, 3)
	if got[0] != "c" || got[1] != "" || got[2] != "" {
		t.Errorf("overscrolled window = %v, want trailing blanks", got)
	}

	// Offsets past the content are legal and render blank.
	got = visibleWindow(lines, 10, 2)
	if got[0] != "" || got[1] != "" {
		t.Errorf("window past content = %v, want all blanks", got)
	}
}

func renderFixture() (models.Topology, monitor.Table) {
	cpu := monitor.NewRing(5)
	cpu.Push(12)
	mem := monitor.NewRing(5)
	mem.Push(3)
	table := monitor.Table{
		100: &monitor.Record{
			PID: 100, PPID: 1, User: "someone", Started: "09:30:00",
			Cmdline: []string{"vim", "notes.txt"}, CPU: cpu, Mem: mem,
		},
	}
	topo := models.Topology{{
		Name: "main",
		Windows: []models.Window{{
			Index: "0", Name: "editor",
			Panes: []models.Pane{{
				Index:    "0",
				PID:      100,
				Command:  []string{"vim", "notes.txt"},
				TreePIDs: []int32{100, 999},
			}},
		}},
	}}
	return topo, table
}

func TestRenderLinesHierarchy(t *testing.T) {
	topo, table := renderFixture()
	lines := renderLines(topo, table, 200, 5)

	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Session: main", "Window: 0:editor", "Pane 0:", "> vim notes.txt", "someone"} {
		if !strings.Contains(joined, want) {
			t.Errorf("rendered output missing %q:\n%s", want, joined)
		}
	}
	if lines[len(lines)-1] != "" {
		t.Error("pane group not followed by a blank separator line")
	}
	// PID 999 has no record yet and must not produce a row.
	if strings.Contains(joined, "999") {
		t.Error("tracked-but-unrecorded pid rendered a row")
	}
}

func TestRenderLinesEmptyTopology(t *testing.T) {
	if lines := renderLines(nil, monitor.Table{}, 80, 5); len(lines) != 0 {
		t.Errorf("empty topology rendered %d lines", len(lines))
	}
}

func TestProcessRowTruncatesToWidth(t *testing.T) {
	cpu := monitor.NewRing(5)
	cpu.Push(1)
	mem := monitor.NewRing(5)
	mem.Push(1)
	rec := &monitor.Record{
		PID: 1, PPID: 0, User: "u", Started: "00:00:00",
		Cmdline: []string{strings.Repeat("x", 500)}, CPU: cpu, Mem: mem,
	}
	narrow := processRow(rec, 100, 5)
	wide := processRow(rec, 600, 5)
	if strings.Count(narrow, "x") >= strings.Count(wide, "x") {
		t.Error("row not truncated for a narrower viewport")
	}
	if strings.Count(wide, "x") != 500 {
		t.Errorf("wide row lost command characters: %d", strings.Count(wide, "x"))
	}
}

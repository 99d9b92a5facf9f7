package tui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmuxtop/tmuxtop/internal/config"
	"github.com/tmuxtop/tmuxtop/internal/monitor"
	"github.com/tmuxtop/tmuxtop/pkg/models"
)

type emptyProvider struct{}

func (emptyProvider) Topology() (models.Topology, error) { return nil, nil }

type emptySource struct{}

func (emptySource) Tree(pid int32) []monitor.Process { return nil }
func (emptySource) Foreground(pid int32) []string    { return nil }

func testModel() model {
	cfg := config.Default()
	sampler := monitor.NewSampler(emptyProvider{}, emptySource{}, cfg)
	return newModel(cfg, sampler, nil, nil)
}

func press(t *testing.T, m model, key tea.KeyMsg) model {
	t.Helper()
	next, _ := m.Update(key)
	return next.(model)
}

func TestScrollOffsetNeverNegative(t *testing.T) {
	m := testModel()
	up := tea.KeyMsg{Type: tea.KeyUp}

	m = press(t, m, up)
	if m.scroll != 0 {
		t.Errorf("scroll = %d after scrolling up at the top, want 0", m.scroll)
	}
}

func TestScrollDownThenUp(t *testing.T) {
	m := testModel()
	down := tea.KeyMsg{Type: tea.KeyDown}
	up := tea.KeyMsg{Type: tea.KeyUp}

	for i := 0; i < 5; i++ {
		m = press(t, m, down)
	}
	for i := 0; i < 3; i++ {
		m = press(t, m, up)
	}
	if m.scroll != 2 {
		t.Errorf("scroll = %d after 5 down / 3 up, want 2", m.scroll)
	}
}

func TestVimScrollAliases(t *testing.T) {
	m := testModel()
	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	m = press(t, m, j)
	m = press(t, m, j)
	m = press(t, m, k)
	if m.scroll != 1 {
		t.Errorf("scroll = %d after j j k, want 1", m.scroll)
	}
}

func TestTickMarksReady(t *testing.T) {
	m := testModel()
	if m.ready {
		t.Fatal("model ready before first sample")
	}
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(model)
	if !m.ready {
		t.Error("model not ready after first tick")
	}
	if cmd == nil {
		t.Error("tick did not schedule the next poll")
	}
}

func TestStatusLineExpires(t *testing.T) {
	m := testModel()
	clock := time.Now()
	m.now = func() time.Time { return clock }

	m.setStatus("Sessions backed up to tmux_backup_1.sh")
	next, _ := m.Update(tickMsg(clock))
	m = next.(model)
	if m.status == "" {
		t.Fatal("status cleared before it expired")
	}

	clock = clock.Add(statusDuration + time.Second)
	next, _ = m.Update(tickMsg(clock))
	m = next.(model)
	if m.status != "" {
		t.Errorf("status = %q after expiry, want cleared", m.status)
	}
}

func TestViewBeforeAndAfterFirstSample(t *testing.T) {
	m := testModel()
	if v := m.View(); !strings.Contains(v, "gathering tmux sessions") {
		t.Errorf("pre-ready view = %q, want loading indicator", v)
	}

	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(model)
	v := m.View()
	for _, want := range []string{"tmuxtop", "PID", "COMMAND"} {
		if !strings.Contains(v, want) {
			t.Errorf("ready view missing %q", want)
		}
	}
}

func TestPadCenterCountsRunes(t *testing.T) {
	got := padCenter("▲▲▲", 9)
	if n := utf8.RuneCountInString(got); n != 9 {
		t.Fatalf("padded width = %d runes, want 9 (got %q)", n, got)
	}
	if got != "   ▲▲▲   " {
		t.Errorf("padCenter = %q, want evenly centered", got)
	}
	if got := padCenter("▲▲▲", 2); got != "▲▲▲" {
		t.Errorf("padCenter narrower than the text = %q, want the text unchanged", got)
	}
}

func TestQuitKeys(t *testing.T) {
	m := testModel()
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("key %q did not quit", key.String())
		}
		if msg := cmd(); msg != tea.Quit() {
			t.Errorf("key %q produced %v, want tea.Quit", key.String(), msg)
		}
	}
}

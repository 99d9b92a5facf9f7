// Package tmux queries the tmux CLI for the current session topology.
package tmux

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tmuxtop/tmuxtop/pkg/models"
)

const paneFormat = "#{session_name}:#{window_index}:#{window_name}:#{pane_index}:#{pane_pid}"

// Client shells out to the tmux binary on PATH.
type Client struct {
	// Binary overrides the tmux executable name, mainly for tests.
	Binary string
}

func NewClient() *Client {
	return &Client{Binary: "tmux"}
}

// Topology lists every pane across all sessions and groups them into the
// session/window/pane hierarchy in discovery order. A missing tmux server or
// zero sessions is not an error: it yields an empty topology.
func (c *Client) Topology() (models.Topology, error) {
	out, err := exec.Command(c.Binary, "list-panes", "-a", "-F", paneFormat).Output()
	if err != nil {
		// tmux exits non-zero when no server is running.
		return nil, nil
	}
	return buildTopology(parsePanes(string(out))), nil
}

// PaneWorkingDir asks tmux for a pane's current working directory. The target
// uses tmux addressing, e.g. "session:1.0".
func (c *Client) PaneWorkingDir(target string) (string, error) {
	out, err := exec.Command(c.Binary, "display-message", "-p", "-t", target, "#{pane_current_path}").Output()
	if err != nil {
		return "", fmt.Errorf("query working dir for %s: %w", target, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// paneEntry is one parsed line of `tmux list-panes -a`.
type paneEntry struct {
	session     string
	windowIndex string
	windowName  string
	paneIndex   string
	panePID     int32
}

// parsePanes splits the colon-separated pane listing. Session names and
// window/pane indexes cannot contain colons, but window names can, so the
// name is recovered as everything between the second field and the last two.
func parsePanes(out string) []paneEntry {
	var entries []paneEntry
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 5 {
			continue
		}
		pid, err := strconv.ParseInt(parts[len(parts)-1], 10, 32)
		if err != nil {
			continue
		}
		entries = append(entries, paneEntry{
			session:     parts[0],
			windowIndex: parts[1],
			windowName:  strings.Join(parts[2:len(parts)-2], ":"),
			paneIndex:   parts[len(parts)-2],
			panePID:     int32(pid),
		})
	}
	return entries
}

// buildTopology groups pane entries by session, then window, preserving the
// order tmux reported them in.
func buildTopology(entries []paneEntry) models.Topology {
	var topo models.Topology
	sessionAt := make(map[string]int)
	windowAt := make(map[string]int)

	for _, e := range entries {
		si, ok := sessionAt[e.session]
		if !ok {
			si = len(topo)
			sessionAt[e.session] = si
			topo = append(topo, models.Session{Name: e.session})
		}
		wKey := e.session + "\x00" + e.windowIndex
		wi, ok := windowAt[wKey]
		if !ok {
			wi = len(topo[si].Windows)
			windowAt[wKey] = wi
			topo[si].Windows = append(topo[si].Windows, models.Window{
				Index: e.windowIndex,
				Name:  e.windowName,
			})
		}
		topo[si].Windows[wi].Panes = append(topo[si].Windows[wi].Panes, models.Pane{
			Index: e.paneIndex,
			PID:   e.panePID,
		})
	}
	return topo
}

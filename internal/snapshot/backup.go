// Package snapshot turns a captured tmux topology into a replayable shell
// script, restores the most recent one, and exports the live process table
// as JSON.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmuxtop/tmuxtop/pkg/models"
)

// ErrNoSessions is returned when there is no topology to capture.
var ErrNoSessions = errors.New("no tmux sessions to back up")

// WorkingDirFunc looks up a pane's current working directory by its tmux
// target ("session:window.pane"). Queried live at capture time.
type WorkingDirFunc func(target string) (string, error)

// Capture writes an executable replay script for the topology into dir and
// returns its path. The file is named <prefix><unix-timestamp>.sh.
func Capture(topo models.Topology, cwd WorkingDirFunc, dir, prefix string) (string, error) {
	if len(topo) == 0 {
		return "", ErrNoSessions
	}
	path := filepath.Join(dir, fmt.Sprintf("%s%d.sh", prefix, time.Now().Unix()))
	if err := os.WriteFile(path, []byte(Script(topo, cwd)), 0o755); err != nil {
		return "", fmt.Errorf("write backup script: %w", err)
	}
	return path, nil
}

// Script renders the replay script: one tmux invocation per topology
// construction step. Every externally derived value (session name, window
// name, path, command argument) is shell-escaped individually, so names with
// whitespace or metacharacters replay as data, not syntax.
func Script(topo models.Topology, cwd WorkingDirFunc) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash\n\n")
	b.WriteString("# tmux session backup created by tmuxtop\n\n")

	for _, session := range topo {
		fmt.Fprintf(&b, "tmux new-session -d -s %s\n", shellQuote(session.Name))
		for _, window := range session.Windows {
			winTarget := shellQuote(session.Name) + ":" + shellQuote(window.Index)
			fmt.Fprintf(&b, "tmux rename-window -t %s %s\n", winTarget, shellQuote(window.Name))
			for i, pane := range window.Panes {
				if i > 0 {
					fmt.Fprintf(&b, "tmux split-window -t %s\n", winTarget)
				}
				paneTarget := winTarget + "." + shellQuote(pane.Index)
				if cwd != nil {
					target := fmt.Sprintf("%s:%s.%s", session.Name, window.Index, pane.Index)
					if dir, err := cwd(target); err == nil && dir != "" {
						keys := "cd " + shellQuote(dir)
						fmt.Fprintf(&b, "tmux send-keys -t %s %s C-m\n", paneTarget, shellQuote(keys))
					}
				}
				if len(pane.Command) > 0 {
					quoted := make([]string, len(pane.Command))
					for j, arg := range pane.Command {
						quoted[j] = shellQuote(arg)
					}
					keys := strings.Join(quoted, " ")
					fmt.Fprintf(&b, "tmux send-keys -t %s %s C-m\n", paneTarget, shellQuote(keys))
				}
			}
		}
	}
	return b.String()
}

// shellQuote single-quote escapes a value for sh-like shells.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$`&|;<>()*?!~#{}[]") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

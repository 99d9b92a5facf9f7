package models

// Pane is a single tmux pane inside a window.
type Pane struct {
	Index string
	// PID is the pane's controlling process as reported by tmux,
	// typically the login shell.
	PID int32
	// Command is the resolved foreground command line, filled in during a
	// refresh. Empty when no non-shell command could be identified.
	Command []string
	// TreePIDs is the pane process plus all of its descendants, in
	// depth-first discovery order, filled in during a refresh.
	TreePIDs []int32
}

// Window is a tmux window identified by its index and display name.
type Window struct {
	Index string
	Name  string
	Panes []Pane
}

// Session is a tmux session with its windows in discovery order.
type Session struct {
	Name    string
	Windows []Window
}

// Topology is one full snapshot of the tmux session/window/pane hierarchy.
// It is rebuilt from scratch on every refresh and never mutated in place.
type Topology []Session

// Panes visits every pane in discovery order.
func (t Topology) Panes(visit func(session *Session, window *Window, pane *Pane)) {
	for si := range t {
		for wi := range t[si].Windows {
			for pi := range t[si].Windows[wi].Panes {
				visit(&t[si], &t[si].Windows[wi], &t[si].Windows[wi].Panes[pi])
			}
		}
	}
}

// Package proctree resolves pane PIDs into process trees and per-process
// metrics using gopsutil.
package proctree

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/tmuxtop/tmuxtop/internal/monitor"
)

// shellNames are the interactive shells excluded by the foreground-command
// heuristic. The set is deliberately the original small one; panes running
// an uncommon shell (dash, tcsh, ...) will surface the shell itself.
var shellNames = map[string]bool{
	"bash": true,
	"sh":   true,
	"zsh":  true,
	"fish": true,
}

// Resolver implements monitor.Source on top of the live process table.
type Resolver struct{}

func NewResolver() *Resolver { return &Resolver{} }

// Tree returns handles for pid plus all of its descendants, depth-first.
// A vanished or inaccessible pid yields nil.
func (r *Resolver) Tree(pid int32) []monitor.Process {
	root, err := process.NewProcess(pid)
	if err != nil {
		return nil
	}
	out := []monitor.Process{handle{root}}
	walk(root, func(p *process.Process, _ int) {
		out = append(out, handle{p})
	})
	return out
}

// Foreground resolves the pane's "actual" command: the command line of the
// most deeply nested descendant, unless that is itself a known shell, in
// which case the pane process's own command line is inspected with the same
// exclusion. Returns nil when no non-shell command can be identified.
func (r *Resolver) Foreground(pid int32) []string {
	root, err := process.NewProcess(pid)
	if err != nil {
		return nil
	}

	var deepest *process.Process
	maxDepth := -1
	walk(root, func(p *process.Process, depth int) {
		if depth >= maxDepth {
			maxDepth = depth
			deepest = p
		}
	})

	if deepest != nil {
		if args, err := deepest.CmdlineSlice(); err == nil && commandOK(args) {
			return args
		}
	}
	if args, err := root.CmdlineSlice(); err == nil && commandOK(args) {
		return args
	}
	return nil
}

// walk visits all descendants of p depth-first. Children lookups are
// best-effort: a process that exits mid-walk just prunes its subtree.
func walk(p *process.Process, visit func(p *process.Process, depth int)) {
	var rec func(p *process.Process, depth int)
	rec = func(p *process.Process, depth int) {
		children, err := p.Children()
		if err != nil {
			return
		}
		for _, c := range children {
			visit(c, depth)
			rec(c, depth+1)
		}
	}
	rec(p, 0)
}

// commandOK reports whether args names a real command rather than an
// interactive shell.
func commandOK(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return !isShell(args[0])
}

// isShell matches the executable part of argv[0] against the known shell
// names, tolerating absolute paths and the login-shell "-" prefix.
func isShell(arg0 string) bool {
	name := filepath.Base(strings.TrimPrefix(arg0, "-"))
	return shellNames[name]
}

// handle adapts a gopsutil process to monitor.Process. The same handle is
// kept inside a record across ticks so CPUPercent measures the interval
// since the previous sample rather than the whole process lifetime.
type handle struct {
	p *process.Process
}

func (h handle) PID() int32 { return h.p.Pid }

// CreateTime returns the start time gopsutil resolved when this handle was
// built. On a fresh handle that is the current occupant of the PID, which is
// what makes it usable as a reuse check.
func (h handle) CreateTime() (int64, error) { return h.p.CreateTime() }

// Info samples everything the dashboard shows in one go. Any failing field
// aborts the whole sample; the caller skips the process for this tick.
func (h handle) Info() (monitor.Info, error) {
	ppid, err := h.p.Ppid()
	if err != nil {
		return monitor.Info{}, err
	}
	user, err := h.p.Username()
	if err != nil {
		return monitor.Info{}, err
	}
	cpu, err := h.p.CPUPercent()
	if err != nil {
		return monitor.Info{}, err
	}
	mem, err := h.p.MemoryPercent()
	if err != nil {
		return monitor.Info{}, err
	}
	created, err := h.p.CreateTime()
	if err != nil {
		return monitor.Info{}, err
	}
	cmdline, err := h.p.CmdlineSlice()
	if err != nil {
		return monitor.Info{}, err
	}
	return monitor.Info{
		PID:        h.p.Pid,
		PPID:       ppid,
		Username:   user,
		CPUPercent: cpu,
		MemPercent: float64(mem),
		CreateTime: created,
		Cmdline:    cmdline,
	}, nil
}

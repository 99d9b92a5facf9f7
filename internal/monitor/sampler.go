// Package monitor maintains rolling per-process resource histories keyed by
// PID, reconciled against the tmux topology on every refresh tick.
package monitor

import (
	"time"

	"github.com/tmuxtop/tmuxtop/internal/config"
	"github.com/tmuxtop/tmuxtop/pkg/models"
)

// Provider yields the current tmux topology. An empty topology is a valid
// result when no server is running.
type Provider interface {
	Topology() (models.Topology, error)
}

// Source resolves a pane PID into its process tree and foreground command.
type Source interface {
	// Tree returns live handles for pid and all of its descendants, or nil
	// if the process is gone or inaccessible.
	Tree(pid int32) []Process
	// Foreground returns the pane's resolved foreground command line, or
	// nil when no non-shell command can be identified.
	Foreground(pid int32) []string
}

// Sampler rebuilds the topology snapshot and record table, gated to at most
// one rebuild per refresh interval. Calls in between return the cached
// snapshot unchanged, decoupling the wall-clock refresh rate from the
// interaction loop's tighter polling cadence.
type Sampler struct {
	provider Provider
	source   Source

	interval    time.Duration
	historySize int
	userWidth   int

	last  time.Time
	topo  models.Topology
	table Table
}

func NewSampler(provider Provider, source Source, cfg config.Config) *Sampler {
	return &Sampler{
		provider:    provider,
		source:      source,
		interval:    cfg.RefreshInterval,
		historySize: cfg.HistorySize,
		userWidth:   cfg.UserWidth,
		table:       make(Table),
	}
}

// Snapshot returns the last refresh's topology and table without sampling.
func (s *Sampler) Snapshot() (models.Topology, Table) {
	return s.topo, s.table
}

// Refresh re-derives the session topology and reconciles the record table
// against it. Records for PIDs still present are updated in place; PIDs
// absent from this tick's tree expansion are dropped. The returned table is
// freshly built and replaces the previous one atomically.
func (s *Sampler) Refresh(now time.Time) (models.Topology, Table) {
	if !s.last.IsZero() && now.Sub(s.last) < s.interval {
		return s.topo, s.table
	}
	s.last = now

	topo, err := s.provider.Topology()
	if err != nil {
		// Treat a failing provider as "no sessions": the view degrades to
		// an empty body instead of crashing.
		topo = nil
	}

	next := make(Table)
	topo.Panes(func(_ *models.Session, _ *models.Window, pane *models.Pane) {
		pane.Command = s.source.Foreground(pane.PID)
		for _, p := range s.source.Tree(pane.PID) {
			pid := p.PID()
			pane.TreePIDs = append(pane.TreePIDs, pid)
			if _, seen := next[pid]; seen {
				continue
			}
			if rec := s.track(pid, p); rec != nil {
				next[pid] = rec
			}
		}
	})

	s.topo = topo
	s.table = next
	return topo, next
}

// track updates an existing record in place or starts a new one. A nil
// return means the process vanished or was unreadable this tick; it is
// simply skipped without disturbing its siblings.
//
// The reuse check reads the create time through p, the handle built fresh
// this tick: a retained handle answers with the create time it cached at
// construction, which would compare the dead process against itself. The
// retained handle is consulted only after identity is confirmed, as the
// baseline for interval CPU percentages.
func (s *Sampler) track(pid int32, p Process) *Record {
	if old, ok := s.table[pid]; ok {
		created, err := p.CreateTime()
		if err != nil {
			return nil
		}
		if created == old.createTime {
			info, err := old.proc.Info()
			if err != nil {
				return nil
			}
			old.observe(info, s.userWidth)
			return old
		}
		// Create time changed: the PID was reused by a different process.
		// The old history must not be reattached; fall through to a fresh
		// record built from the new handle.
	}
	info, err := p.Info()
	if err != nil {
		return nil
	}
	return newRecord(p, info, s.historySize, s.userWidth)
}

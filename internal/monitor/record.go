package monitor

import "time"

// Ring is a fixed-capacity rolling history, newest last. Pushing past
// capacity evicts the oldest sample.
type Ring struct {
	capacity int
	values   []float64
}

func NewRing(capacity int) *Ring {
	return &Ring{capacity: capacity}
}

func (r *Ring) Push(v float64) {
	r.values = append(r.values, v)
	if len(r.values) > r.capacity {
		r.values = r.values[1:]
	}
}

// Values returns the samples oldest-first. The slice is owned by the ring.
func (r *Ring) Values() []float64 { return r.values }

func (r *Ring) Len() int { return len(r.values) }

func (r *Ring) Capacity() int { return r.capacity }

// Last returns the newest sample, or 0 when the history is empty.
func (r *Ring) Last() float64 {
	if len(r.values) == 0 {
		return 0
	}
	return r.values[len(r.values)-1]
}

// Info is one point-in-time sample of a process.
type Info struct {
	PID        int32
	PPID       int32
	Username   string
	CPUPercent float64
	MemPercent float64
	// CreateTime is the process start time in milliseconds since the epoch.
	// It doubles as the PID-reuse detector: a PID whose create time changes
	// between ticks belongs to a different process.
	CreateTime int64
	Cmdline    []string
}

// Process is a live handle to one OS process. A record keeps the handle it
// was created with so CPU percentages are measured against the previous tick
// rather than the process lifetime. The create time is resolved when the
// handle is built and cached on it, so reuse checks must ask a freshly built
// handle, never a retained one.
type Process interface {
	PID() int32
	CreateTime() (int64, error)
	Info() (Info, error)
}

// Record tracks one process across refresh ticks.
type Record struct {
	PID     int32
	PPID    int32
	User    string
	Started string
	Cmdline []string
	CPU     *Ring
	Mem     *Ring

	createTime int64
	proc       Process
}

func newRecord(p Process, info Info, historySize, userWidth int) *Record {
	rec := &Record{
		PID:        info.PID,
		CPU:        NewRing(historySize),
		Mem:        NewRing(historySize),
		createTime: info.CreateTime,
		proc:       p,
	}
	rec.observe(info, userWidth)
	return rec
}

// observe folds a fresh sample into the record, appending to both histories.
func (rec *Record) observe(info Info, userWidth int) {
	rec.PPID = info.PPID
	rec.User = truncate(info.Username, userWidth)
	rec.Started = time.UnixMilli(info.CreateTime).Format("15:04:05")
	rec.Cmdline = info.Cmdline
	rec.CPU.Push(info.CPUPercent)
	rec.Mem.Push(info.MemPercent)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Table maps PID to its record. A refresh builds a new table and swaps it in
// whole, so readers never see a partially updated one.
type Table map[int32]*Record

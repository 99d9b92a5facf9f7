package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tmuxtop/tmuxtop/internal/monitor"
	"github.com/tmuxtop/tmuxtop/pkg/models"
)

type exportProcess struct {
	PID        int32    `json:"pid"`
	PPID       int32    `json:"ppid"`
	Username   string   `json:"username"`
	CPUPercent float64  `json:"cpu_percent"`
	MemPercent float64  `json:"mem_percent"`
	CreateTime string   `json:"create_time"`
	Cmdline    []string `json:"cmdline"`
}

type exportPane struct {
	PaneIndex string          `json:"pane_index"`
	Processes []exportProcess `json:"processes"`
}

type exportDoc struct {
	Timestamp int64                              `json:"timestamp"`
	Sessions  map[string]map[string][]exportPane `json:"sessions"`
}

// Export writes the current topology and latest samples as indented JSON.
// Windows are keyed "index:name" to keep the document self-describing.
func Export(topo models.Topology, table monitor.Table, path string) error {
	doc := exportDoc{
		Timestamp: time.Now().Unix(),
		Sessions:  make(map[string]map[string][]exportPane),
	}
	for _, session := range topo {
		windows := make(map[string][]exportPane)
		for _, window := range session.Windows {
			key := window.Index + ":" + window.Name
			for _, pane := range window.Panes {
				// Processes starts non-nil so a pane with no sampled
				// processes marshals as an empty list, not null.
				ep := exportPane{PaneIndex: pane.Index, Processes: []exportProcess{}}
				for _, pid := range pane.TreePIDs {
					rec, ok := table[pid]
					if !ok {
						continue
					}
					ep.Processes = append(ep.Processes, exportProcess{
						PID:        rec.PID,
						PPID:       rec.PPID,
						Username:   rec.User,
						CPUPercent: rec.CPU.Last(),
						MemPercent: rec.Mem.Last(),
						CreateTime: rec.Started,
						Cmdline:    rec.Cmdline,
					})
				}
				windows[key] = append(windows[key], ep)
			}
		}
		doc.Sessions[session.Name] = windows
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmuxtop/tmuxtop/internal/monitor"
	"github.com/tmuxtop/tmuxtop/internal/proctree"
	"github.com/tmuxtop/tmuxtop/internal/tmux"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the session/window/pane process tree once, without the TUI",
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	client := tmux.NewClient()
	sampler := monitor.NewSampler(client, proctree.NewResolver(), cfg)

	topo, table := sampler.Refresh(time.Now())
	if len(topo) == 0 {
		fmt.Println("No tmux sessions found")
		return nil
	}

	for _, session := range topo {
		fmt.Printf("Session: %s\n", session.Name)
		for _, window := range session.Windows {
			fmt.Printf("  Window %s:%s\n", window.Index, window.Name)
			for _, pane := range window.Panes {
				fmt.Printf("    Pane %s (pid %d)\n", pane.Index, pane.PID)
				if len(pane.Command) > 0 {
					fmt.Printf("      > %s\n", strings.Join(pane.Command, " "))
				}
				for _, pid := range pane.TreePIDs {
					rec, ok := table[pid]
					if !ok {
						continue
					}
					fmt.Printf("      %-7d %-7d %-8s %5.1f %5.1f %8s %s\n",
						rec.PID, rec.PPID, rec.User,
						rec.CPU.Last(), rec.Mem.Last(),
						rec.Started, strings.Join(rec.Cmdline, " "))
				}
			}
		}
		fmt.Println()
	}
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tmuxtop/tmuxtop/internal/config"
	"github.com/tmuxtop/tmuxtop/internal/monitor"
	"github.com/tmuxtop/tmuxtop/internal/proctree"
	"github.com/tmuxtop/tmuxtop/internal/snapshot"
	"github.com/tmuxtop/tmuxtop/internal/tmux"
	"github.com/tmuxtop/tmuxtop/internal/tui"
)

var (
	backupMode  bool
	restoreMode bool
	exportMode  bool
	interval    time.Duration
	history     int
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmuxtop",
		Short: "Live per-process resource dashboard for tmux sessions",
		Long: `tmuxtop maps every tmux pane to its process tree and shows rolling
CPU/memory usage per process, organized by session, window and pane.
It can also capture the current session topology into a replayable
shell script and restore the most recent capture.`,
		RunE: runRoot,
	}

	rootCmd.Flags().BoolVar(&backupMode, "backup", false, "Capture the session topology to a replay script and exit")
	rootCmd.Flags().BoolVar(&restoreMode, "restore", false, "Execute the most recent replay script and exit")
	rootCmd.Flags().BoolVar(&exportMode, "export", false, "Export the topology and latest samples as JSON and exit")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", config.Default().RefreshInterval, "Minimum time between refreshes")
	rootCmd.PersistentFlags().IntVar(&history, "history", config.Default().HistorySize, "Rolling history capacity per process")
	rootCmd.AddCommand(NewShowCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg := config.Default()
	if interval > 0 {
		cfg.RefreshInterval = interval
	}
	if history > 0 {
		cfg.HistorySize = history
	}
	return cfg
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	client := tmux.NewClient()
	sampler := monitor.NewSampler(client, proctree.NewResolver(), cfg)

	switch {
	case backupMode:
		topo, _ := sampler.Refresh(time.Now())
		path, err := snapshot.Capture(topo, client.PaneWorkingDir, ".", cfg.BackupPrefix)
		if errors.Is(err, snapshot.ErrNoSessions) {
			fmt.Println("No tmux sessions to backup")
			return nil
		}
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		fmt.Println("Sessions backed up to", path)
		return nil

	case restoreMode:
		path, err := snapshot.Restore(".", cfg.BackupPrefix, snapshot.RunScript)
		if errors.Is(err, snapshot.ErrNoBackups) {
			fmt.Println("No backup files found")
			return nil
		}
		if err != nil {
			return fmt.Errorf("restore from %s failed: %w", path, err)
		}
		fmt.Println("Sessions restored from", path)
		return nil

	case exportMode:
		topo, table := sampler.Refresh(time.Now())
		if err := snapshot.Export(topo, table, cfg.ExportFile); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Println("Data exported to", cfg.ExportFile)
		return nil
	}

	if err := tui.Run(cfg, sampler, client.PaneWorkingDir); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

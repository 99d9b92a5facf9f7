package config

import "time"

// Config carries runtime options for tmuxtop.
type Config struct {
	// RefreshInterval is the minimum time between topology/metric refreshes.
	RefreshInterval time.Duration
	// PollInterval is the key-poll tick driving the interactive loop. It is
	// deliberately tighter than RefreshInterval so keystrokes stay snappy.
	PollInterval time.Duration
	// HistorySize is the per-process rolling history capacity, which is also
	// the sparkline display width.
	HistorySize int
	// UserWidth is the display width usernames are truncated to.
	UserWidth int
	// BackupPrefix names generated replay scripts: <prefix><unix-ts>.sh.
	BackupPrefix string
	// ExportFile is where the JSON export lands.
	ExportFile string
}

func Default() Config {
	return Config{
		RefreshInterval: 2 * time.Second,
		PollInterval:    time.Second,
		HistorySize:     20,
		UserWidth:       8,
		BackupPrefix:    "tmux_backup_",
		ExportFile:      "tmuxtop_export.json",
	}
}

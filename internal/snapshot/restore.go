package snapshot

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrNoBackups is returned when no replay script matches the backup naming
// convention in the search directory.
var ErrNoBackups = errors.New("no backup files found")

// Runner executes a replay script. Injectable for tests.
type Runner func(path string) error

// RunScript executes a replay script with bash.
func RunScript(path string) error {
	return exec.Command("bash", path).Run()
}

// LatestBackup returns the newest replay script in dir, by file modification
// time, among files matching <prefix>*.sh.
func LatestBackup(dir, prefix string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*.sh"))
	if err != nil {
		return "", err
	}
	var latest string
	var latestMod int64
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || fi.ModTime().UnixNano() > latestMod {
			latest = m
			latestMod = fi.ModTime().UnixNano()
		}
	}
	if latest == "" {
		return "", ErrNoBackups
	}
	return latest, nil
}

// Restore executes the most recent replay script. The script path is
// returned either way so the caller can name it when reporting success or
// failure. A failed script leaves whatever partial session state it created;
// there is no rollback.
func Restore(dir, prefix string, run Runner) (string, error) {
	path, err := LatestBackup(dir, prefix)
	if err != nil {
		return "", err
	}
	if err := run(path); err != nil {
		return path, err
	}
	return path, nil
}

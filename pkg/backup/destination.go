package backup

import (
	"context"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Locations describes where backups may be written, in priority order.
type Locations struct {
	// NetworkRoot is the preferred destination root, typically a UNC share.
	// Empty means the network candidate isn't probed.
	NetworkRoot string

	// MappedRoot is the mapped-drive destination root.
	MappedRoot string

	// BackupFolderName is the directory created under the resolved root.
	BackupFolderName string
}

// Resolve probes the candidate destination roots and returns the first
// reachable one:
//  1. <networkRoot>/<username>/<backupFolderName>
//  2. <mappedRoot>/<username>/<backupFolderName>
//  3. <mappedRoot>/<backupFolderName>
// The second return value is false when no candidate is reachable.
func (l Locations) Resolve(username string) (string, bool) {
	if l.NetworkRoot != "" {
		networkUser := filepath.Join(l.NetworkRoot, username)
		if reachable(networkUser) {
			return filepath.Join(networkUser, l.BackupFolderName), true
		}
	}

	if l.MappedRoot != "" {
		mappedUser := filepath.Join(l.MappedRoot, username)
		if reachable(mappedUser) {
			return filepath.Join(mappedUser, l.BackupFolderName), true
		}

		if reachable(l.MappedRoot) {
			return filepath.Join(l.MappedRoot, l.BackupFolderName), true
		}
	}

	return "", false
}

// reachable treats any access error as "not reachable" so that a flaky share
// degrades to the next candidate instead of failing the resolution.
func reachable(path string) bool {
	exists, err := afero.Exists(fs, path)
	return err == nil && exists
}

// Waiter retries Resolve until a destination appears or the deadline passes.
type Waiter struct {
	Locations Locations

	// Clock is injectable for tests. Nil means the real clock.
	Clock clockwork.Clock

	// RetryInterval is the pause between failed probes.
	RetryInterval time.Duration

	// Timeout bounds the whole wait.
	Timeout time.Duration
}

// Wait blocks until a destination resolves, the timeout elapses, or ctx is
// cancelled. A successful resolution returns immediately. Returning false is
// a normal outcome, not a fault: the share simply never came up.
func (w Waiter) Wait(ctx context.Context, username string) (string, bool) {
	clock := w.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	deadline := clock.Now().Add(w.Timeout)
	for {
		if path, ok := w.Locations.Resolve(username); ok {
			return path, true
		}

		if !clock.Now().Before(deadline) {
			log.WithField("timeout", w.Timeout).Debug(
				"No backup destination became reachable before the deadline")
			return "", false
		}

		select {
		case <-ctx.Done():
			return "", false
		case <-clock.After(w.RetryInterval):
		}
	}
}

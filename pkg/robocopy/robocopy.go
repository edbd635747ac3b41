// Package robocopy runs Windows' robocopy utility as a blocking child
// process, implementing the engine's BulkCopier capability.
package robocopy

import (
	"os/exec"

	"github.com/shareback/shareback/pkg/backup"
)

// Binary is the name of the bulk copy executable looked up in PATH.
const Binary = "robocopy"

// Mocked out for unit testing.
var lookPath = exec.LookPath

// Copier delegates folder mirroring to robocopy.
type Copier struct{}

// Mirror copies new-or-newer files from src into dst. Progress output and
// per-file logging are suppressed since the process runs unattended. The
// exit status is deliberately not inspected: robocopy uses codes 0-7 for
// informational outcomes and its partial failures shouldn't abort the run.
func (Copier) Mirror(src, dst string, excludeExtensions, excludeDirs []string) error {
	bin, err := lookPath(Binary)
	if err != nil {
		return backup.ErrBulkCopierUnavailable
	}

	cmd := exec.Command(bin, mirrorArgs(src, dst, excludeExtensions, excludeDirs)...)
	hideWindow(cmd)
	if err := cmd.Run(); err != nil {
		if _, exited := err.(*exec.ExitError); exited {
			return nil
		}
		// The process never started, so nothing was copied. Report the
		// tool as unavailable so the engine falls back to its own walk.
		return backup.ErrBulkCopierUnavailable
	}
	return nil
}

// mirrorArgs builds the robocopy invocation:
//   /E           recurse, including empty directories
//   /XO /XN /XC  skip source files that are older than, the same age as, or
//                changed relative to the destination, i.e. only copy
//                new-or-newer source files
//   /NFL /NDL /NJH /NJS /NP  suppress all logging and progress output
//   /XF          exclude the denylisted file patterns
//   /XD          exclude the denylisted directory names
func mirrorArgs(src, dst string, excludeExtensions, excludeDirs []string) []string {
	args := []string{src, dst,
		"/E", "/XO", "/XN", "/XC",
		"/NFL", "/NDL", "/NJH", "/NJS", "/NP",
	}
	if len(excludeExtensions) > 0 {
		args = append(args, "/XF")
		args = append(args, excludeExtensions...)
	}
	if len(excludeDirs) > 0 {
		args = append(args, "/XD")
		args = append(args, excludeDirs...)
	}
	return args
}

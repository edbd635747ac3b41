// +build windows

package robocopy

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps the child process from flashing a console window. The
// backup runs at login with the console suppressed, so any visible window
// would be the only UI the user ever sees.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

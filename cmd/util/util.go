package util

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/shareback/shareback/pkg/errors"
)

// Exit codes form the only user-visible contract of an unattended run.
const (
	// ExitSuccess covers completed runs and runs with nothing to do.
	ExitSuccess = 0

	// ExitDestinationUnavailable means no backup destination became
	// reachable within the configured timeout.
	ExitDestinationUnavailable = 1

	// ExitFault marks any other fault, including panics. The process must
	// exit with a code rather than crash with a visible error surface.
	ExitFault = 99
)

// Mocked out for unit testing.
var exit = os.Exit

// HandleFatalError prints a friendly version of err and exits with the code
// the error maps to.
func HandleFatalError(err error) {
	log.WithError(err).Debug("Execution failed")
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))

	if errors.RootCause(err) == errors.ErrDestinationUnavailable {
		exit(ExitDestinationUnavailable)
		return
	}
	exit(ExitFault)
}

// HandlePanic converts a panic anywhere in the run into the distinct exit
// code. It should be installed with `defer` at the top of main.
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log.WithField("panic", r).Error(
		"Shareback hit an unexpected fatal error. The run was aborted.")
	exit(ExitFault)
}

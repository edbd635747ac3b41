package main

import (
	"github.com/shareback/shareback/cmd"
	"github.com/shareback/shareback/cmd/util"
)

func main() {
	// The backup runs unattended at login, so a panic must never surface as
	// a crash dialog. HandlePanic maps it to the fault exit code instead.
	defer util.HandlePanic()
	cmd.Execute()
}

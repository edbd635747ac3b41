package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shareback/shareback/cmd/util"
	"github.com/shareback/shareback/pkg/config"
)

// New creates a new `config` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Write a default config file to edit.",
		Long: "Write a default config file to " + config.BackupConfigPath + ".\n" +
			"Runs without a config file use the same defaults.",
		Run: func(_ *cobra.Command, _ []string) {
			path, err := config.WriteDefault()
			if err != nil {
				util.HandleFatalError(err)
			}
			fmt.Printf("Wrote default config to %s\n", path)
		},
	}
}

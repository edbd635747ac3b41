package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shareback/shareback/pkg/version"
)

// New creates a new `version` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of Shareback.",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("shareback version %s\n", version.Version)
		},
	}
}

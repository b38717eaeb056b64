package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level movediff command.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movediff",
		Short: "Move package version comparison tool",
		Long:  "Movediff compares two versions of an on-chain Move package and classifies interface changes as breaking or non-breaking.",
	}

	cmd.Version = version

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RawOptions holds the parsed flags for "raw".
type RawOptions struct {
	Before string
	After  string
	RPCURL string
}

// RawRunFunc is the function signature for the raw command handler.
type RawRunFunc func(ctx context.Context, opts RawOptions) error

// NewRawCmd creates the "raw" subcommand, a debugging aid that diffs the
// undecoded normalized-module JSON of two packages.
func NewRawCmd(runFunc RawRunFunc) *cobra.Command {
	var opts RawOptions

	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Diff the raw normalized JSON of two packages",
		Long:  "Fetch the undecoded normalized-module JSON for both packages and print a JSON-level diff. Intended for debugging the structural differ.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.RPCURL == "" {
				opts.RPCURL = viper.GetString(rpcURLKey)
			}
			if opts.Before == "" {
				return fmt.Errorf("--before is required")
			}
			if opts.After == "" {
				return fmt.Errorf("--after is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Before, "before", "", "Package ID of the earlier version (required)")
	cmd.Flags().StringVar(&opts.After, "after", "", "Package ID of the later version (required)")
	cmd.Flags().StringVar(&opts.RPCURL, "rpc", "", "Fullnode RPC endpoint URL")

	cmd.MarkFlagRequired("before")
	cmd.MarkFlagRequired("after")

	return cmd
}

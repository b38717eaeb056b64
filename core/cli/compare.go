package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Output formats accepted by --format.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatUnified  = "unified"
)

// CompareOptions holds the parsed flags for "compare".
type CompareOptions struct {
	Before           string
	After            string
	RPCURL           string
	SourceBefore     string
	SourceAfter      string
	Format           string
	ContextLines     int
	IgnoreWhitespace bool
}

// CompareRunFunc is the function signature for the compare command handler.
// It is injected by the wiring layer (cmd/movediff/main.go).
type CompareRunFunc func(ctx context.Context, opts CompareOptions) error

// NewCompareCmd creates the "compare" subcommand.
func NewCompareCmd(runFunc CompareRunFunc) *cobra.Command {
	var opts CompareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two package versions",
		Long:  "Compare the module interfaces of two on-chain package versions and optionally their local source trees.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, &opts)
			return validateCompareFlags(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Before, "before", "", "Package ID of the earlier version (required)")
	cmd.Flags().StringVar(&opts.After, "after", "", "Package ID of the later version (required)")
	cmd.Flags().StringVar(&opts.RPCURL, "rpc", "", "Fullnode RPC endpoint URL")
	cmd.Flags().StringVar(&opts.SourceBefore, "source-before", "", "Directory of the earlier version's source tree")
	cmd.Flags().StringVar(&opts.SourceAfter, "source-after", "", "Directory of the later version's source tree")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format: table, markdown, json, unified")
	cmd.Flags().IntVar(&opts.ContextLines, "context", 0, "Context lines per source diff hunk")
	cmd.Flags().BoolVar(&opts.IgnoreWhitespace, "ignore-whitespace", false, "Ignore leading/trailing whitespace in source line matching")

	cmd.MarkFlagRequired("before")
	cmd.MarkFlagRequired("after")

	return cmd
}

// applyConfigDefaults fills unset flags from viper (config file and
// MOVEDIFF_* environment).
func applyConfigDefaults(cmd *cobra.Command, opts *CompareOptions) {
	if opts.RPCURL == "" {
		opts.RPCURL = viper.GetString(rpcURLKey)
	}
	if opts.Format == "" {
		opts.Format = viper.GetString(formatKey)
	}
	if !cmd.Flags().Changed("context") {
		opts.ContextLines = viper.GetInt(contextLinesKey)
	}
	if !cmd.Flags().Changed("ignore-whitespace") {
		opts.IgnoreWhitespace = viper.GetBool(ignoreWhitespaceKey)
	}
}

func validateCompareFlags(opts CompareOptions) error {
	if opts.Before == "" {
		return fmt.Errorf("--before is required")
	}
	if opts.After == "" {
		return fmt.Errorf("--after is required")
	}

	switch opts.Format {
	case FormatTable, FormatMarkdown, FormatJSON, FormatUnified:
	default:
		return fmt.Errorf("unknown format %q (want table, markdown, json, or unified)", opts.Format)
	}

	if opts.Format == FormatUnified && (opts.SourceBefore == "" || opts.SourceAfter == "") {
		return fmt.Errorf("--format unified requires --source-before and --source-after")
	}
	if (opts.SourceBefore == "") != (opts.SourceAfter == "") {
		return fmt.Errorf("--source-before and --source-after must be given together")
	}
	if opts.ContextLines < 0 {
		return fmt.Errorf("--context must not be negative")
	}

	return nil
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validOpts() CompareOptions {
	return CompareOptions{
		Before: "0xaaa",
		After:  "0xbbb",
		Format: FormatTable,
	}
}

func TestValidateCompareFlags(t *testing.T) {
	require.NoError(t, validateCompareFlags(validOpts()))
}

func TestValidateCompareFlagsErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CompareOptions)
		wantErr string
	}{
		{"missing before", func(o *CompareOptions) { o.Before = "" }, "--before is required"},
		{"missing after", func(o *CompareOptions) { o.After = "" }, "--after is required"},
		{"unknown format", func(o *CompareOptions) { o.Format = "xml" }, "unknown format"},
		{"unified without sources", func(o *CompareOptions) { o.Format = FormatUnified }, "--format unified requires"},
		{"one-sided source dirs", func(o *CompareOptions) { o.SourceBefore = "/tmp/old" }, "must be given together"},
		{"negative context", func(o *CompareOptions) { o.ContextLines = -1 }, "--context must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOpts()
			tt.mutate(&opts)
			err := validateCompareFlags(opts)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewCompareCmdFlags(t *testing.T) {
	cmd := NewCompareCmd(nil)

	for _, flag := range []string{"before", "after", "rpc", "source-before", "source-after", "format", "context", "ignore-whitespace"} {
		require.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	"golang.org/x/mod/semver"

	"github.com/movediff-labs/movediff/core/cli"
	"github.com/movediff-labs/movediff/drivers/move"
	"github.com/movediff-labs/movediff/drivers/move/srcdiff"
	"github.com/movediff-labs/movediff/pkg/logging"
	"github.com/movediff-labs/movediff/pkg/movesrc"
	"github.com/movediff-labs/movediff/pkg/render"
	"github.com/movediff-labs/movediff/pkg/suirpc"
)

const version = "0.1.0"

func main() {
	logging.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version)
	root.AddCommand(cli.NewCompareCmd(runCompare))
	root.AddCommand(cli.NewRawCmd(runRaw))

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "movediff: %v\n", err)
		os.Exit(1)
	}
}

func runCompare(ctx context.Context, opts cli.CompareOptions) error {
	client := suirpc.NewClient(opts.RPCURL)
	drv := move.NewDriver(client, movesrc.NewProvider())

	diff, err := drv.ComparePackageVersions(ctx, opts.Before, opts.After)
	if err != nil {
		return err
	}

	if olderThan(diff.ToVersion, diff.FromVersion) {
		fmt.Fprintf(os.Stderr, "warning: target version %s is older than base version %s\n",
			diff.ToVersion, diff.FromVersion)
	}

	var sourceDiffs map[string]srcdiff.SourceDiff
	if opts.SourceBefore != "" {
		sourceDiffs, err = drv.CompareSourceTrees(opts.SourceBefore, opts.SourceAfter,
			diff.FromVersion, diff.ToVersion,
			srcdiff.Options{ContextLines: opts.ContextLines, IgnoreWhitespace: opts.IgnoreWhitespace})
		if err != nil {
			return err
		}
	}

	switch opts.Format {
	case cli.FormatJSON:
		if sourceDiffs != nil {
			combined := struct {
				Structural any `json:"structural"`
				Sources    any `json:"sources"`
			}{diff, sourceDiffs}
			data, err := json.MarshalIndent(combined, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}
		out, err := render.JSON(diff)
		if err != nil {
			return err
		}
		fmt.Println(out)

	case cli.FormatMarkdown:
		fmt.Print(render.Markdown(diff))
		if sourceDiffs != nil {
			fmt.Println("\n```diff")
			fmt.Print(render.UnifiedPackage(sourceDiffs))
			fmt.Println("```")
		}

	case cli.FormatUnified:
		fmt.Print(render.UnifiedPackage(sourceDiffs))

	default:
		fmt.Print(render.Table(diff))
		if sourceDiffs != nil {
			fmt.Println()
			fmt.Print(render.UnifiedPackage(sourceDiffs))
		}
	}

	return nil
}

func runRaw(ctx context.Context, opts cli.RawOptions) error {
	client := suirpc.NewClient(opts.RPCURL)

	before, err := client.FetchRawInterface(ctx, opts.Before)
	if err != nil {
		return err
	}
	after, err := client.FetchRawInterface(ctx, opts.After)
	if err != nil {
		return err
	}

	delta, err := gojsondiff.New().Compare(before, after)
	if err != nil {
		return fmt.Errorf("comparing raw interfaces: %w", err)
	}

	if !delta.Modified() {
		fmt.Println("The normalized interfaces are identical.")
		return nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(before, &doc); err != nil {
		return fmt.Errorf("decoding raw interface: %w", err)
	}

	text, err := formatter.NewAsciiFormatter(doc, formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       true,
	}).Format(delta)
	if err != nil {
		return fmt.Errorf("formatting raw diff: %w", err)
	}

	fmt.Println(text)
	return nil
}

// olderThan reports whether version a precedes b. Semver labels use semver
// ordering; Sui sequence numbers fall back to integer comparison.
func olderThan(a, b string) bool {
	if semver.IsValid(a) && semver.IsValid(b) {
		return semver.Compare(a, b) < 0
	}

	ai, aErr := strconv.ParseUint(a, 10, 64)
	bi, bErr := strconv.ParseUint(b, 10, 64)
	if aErr != nil || bErr != nil {
		return false
	}
	return ai < bi
}

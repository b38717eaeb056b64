// Package move wires the fetch layer to the structural and source differs
// for Move packages.
package move

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/movediff-labs/movediff/core/changeset"
	"github.com/movediff-labs/movediff/core/driver"
	"github.com/movediff-labs/movediff/drivers/move/abidiff"
	"github.com/movediff-labs/movediff/drivers/move/srcdiff"
)

// Driver composes a PackageFetcher and a SourceProvider into the two
// end-to-end comparison operations.
type Driver struct {
	fetcher driver.PackageFetcher
	sources driver.SourceProvider
}

// NewDriver creates a Driver. The sources provider may be nil when only
// structural comparison is needed.
func NewDriver(fetcher driver.PackageFetcher, sources driver.SourceProvider) *Driver {
	return &Driver{fetcher: fetcher, sources: sources}
}

// ComparePackageVersions fetches both package versions and computes the
// structural diff between their module interfaces.
func (d *Driver) ComparePackageVersions(ctx context.Context, beforeID, afterID string) (changeset.StructuralDiff, error) {
	fromVersion, err := d.fetcher.FetchVersion(ctx, beforeID)
	if err != nil {
		return changeset.StructuralDiff{}, fmt.Errorf("fetching version of %s: %w", beforeID, err)
	}
	toVersion, err := d.fetcher.FetchVersion(ctx, afterID)
	if err != nil {
		return changeset.StructuralDiff{}, fmt.Errorf("fetching version of %s: %w", afterID, err)
	}

	log.Debugf("comparing %s@%s against %s@%s", beforeID, fromVersion, afterID, toVersion)

	before, err := d.fetcher.FetchInterface(ctx, beforeID)
	if err != nil {
		return changeset.StructuralDiff{}, fmt.Errorf("fetching interface of %s: %w", beforeID, err)
	}
	after, err := d.fetcher.FetchInterface(ctx, afterID)
	if err != nil {
		return changeset.StructuralDiff{}, fmt.Errorf("fetching interface of %s: %w", afterID, err)
	}

	return abidiff.ComparePackages(before, after, fromVersion, toVersion, beforeID, afterID), nil
}

// CompareSourceTrees loads two local source trees and computes per-module
// line diffs across the union of their modules.
func (d *Driver) CompareSourceTrees(beforeDir, afterDir, fromVersion, toVersion string, opts srcdiff.Options) (map[string]srcdiff.SourceDiff, error) {
	if d.sources == nil {
		return nil, fmt.Errorf("no source provider configured")
	}

	before, err := d.sources.LoadSources(beforeDir)
	if err != nil {
		return nil, fmt.Errorf("loading sources from %s: %w", beforeDir, err)
	}
	after, err := d.sources.LoadSources(afterDir)
	if err != nil {
		return nil, fmt.Errorf("loading sources from %s: %w", afterDir, err)
	}

	log.Debugf("diffing sources: %d modules before, %d after", len(before), len(after))

	return srcdiff.DiffPackage(before, after, fromVersion, toVersion, nil, opts), nil
}

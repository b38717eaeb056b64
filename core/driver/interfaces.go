package driver

import (
	"context"

	"github.com/movediff-labs/movediff/drivers/move/normalized"
)

// PackageFetcher supplies normalized module interfaces for a package version.
// Implementations own all network concerns, including timeouts; the
// comparison core never performs I/O.
type PackageFetcher interface {
	// FetchInterface returns the package's modules keyed by module name.
	FetchInterface(ctx context.Context, packageID string) (map[string]normalized.ModuleInterface, error)

	// FetchRawInterface returns the undecoded normalized-module JSON for the
	// package, for tooling that diffs the raw payloads.
	FetchRawInterface(ctx context.Context, packageID string) ([]byte, error)

	// FetchVersion returns the on-chain version label of the package object.
	FetchVersion(ctx context.Context, packageID string) (string, error)
}

// SourceProvider supplies decompiled or local source text per module.
type SourceProvider interface {
	// LoadSources reads all module sources under root, keyed by module name.
	LoadSources(root string) (map[string]string, error)
}

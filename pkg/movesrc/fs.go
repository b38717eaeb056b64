// Package movesrc loads Move source trees from the local filesystem into
// per-module text maps.
package movesrc

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Provider reads .move files under a directory. Module names are derived
// from file basenames, which matches the one-module-per-file convention of
// compiled package layouts and disassembler output.
type Provider struct{}

// NewProvider creates a Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// LoadSources walks root and returns the content of every .move file keyed
// by module name. Symlinks, hidden directories, and build output are skipped.
func (p *Provider) LoadSources(root string) (map[string]string, error) {
	sources := make(map[string]string)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip symlinks to prevent symlink-based path escapes.
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			base := d.Name()
			if base != "." && (strings.HasPrefix(base, ".") || base == "build") {
				return fs.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".move") {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", path, readErr)
		}

		name := strings.TrimSuffix(filepath.Base(path), ".move")
		sources[name] = string(content)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking source tree at %s: %w", root, walkErr)
	}

	return sources, nil
}

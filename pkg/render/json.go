package render

import (
	"encoding/json"
	"fmt"

	"github.com/movediff-labs/movediff/core/changeset"
	"github.com/movediff-labs/movediff/drivers/move/srcdiff"
)

// JSON renders a structural diff as indented JSON.
func JSON(diff changeset.StructuralDiff) (string, error) {
	data, err := json.MarshalIndent(diff, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding structural diff: %w", err)
	}
	return string(data), nil
}

// SourceJSON renders a per-module source diff map as indented JSON.
func SourceJSON(diffs map[string]srcdiff.SourceDiff) (string, error) {
	data, err := json.MarshalIndent(diffs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding source diffs: %w", err)
	}
	return string(data), nil
}

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/movediff-labs/movediff/drivers/move/srcdiff"
)

// Unified renders a single module's source diff in unified-diff text form.
// Hunk headers come straight from the stored fields, with no recomputation.
func Unified(d srcdiff.SourceDiff) string {
	if len(d.Hunks) == 0 {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "--- a/%s.move\n", d.ModuleName)
	fmt.Fprintf(&b, "+++ b/%s.move\n", d.ModuleName)

	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
		for _, l := range h.Lines {
			switch l.Type {
			case srcdiff.LineAdd:
				b.WriteString("+")
			case srcdiff.LineRemove:
				b.WriteString("-")
			default:
				b.WriteString(" ")
			}
			b.WriteString(l.Content)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// UnifiedPackage renders every changed module of a package diff, in sorted
// module order, separated by blank lines.
func UnifiedPackage(diffs map[string]srcdiff.SourceDiff) string {
	names := make([]string, 0, len(diffs))
	for name := range diffs {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		if text := Unified(diffs[name]); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

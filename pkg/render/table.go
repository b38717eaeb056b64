// Package render formats comparison results as tables, markdown, JSON, and
// unified-diff text.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/movediff-labs/movediff/core/changeset"
)

// Table renders a structural diff as a plain-text table followed by a
// summary block.
func Table(diff changeset.StructuralDiff) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Comparing %s (v%s) -> %s (v%s)\n\n",
		diff.FromPackageID, diff.FromVersion, diff.ToPackageID, diff.ToVersion)

	if len(diff.Changes) == 0 {
		buf.WriteString("No interface changes detected.\n")
		return buf.String()
	}

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Module", "Category", "Change", "Risk", "Name", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, c := range diff.Changes {
		table.Append([]string{
			c.ModuleName,
			string(c.Category),
			string(c.Type),
			riskMarker(c.Risk),
			c.Name,
			c.Description,
		})
	}

	table.Render()

	buf.WriteString("\n")
	buf.WriteString(summaryBlock(diff.Summary))
	return buf.String()
}

func summaryBlock(s changeset.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Functions: %s added, %s removed, %s modified\n",
		humanize.Comma(int64(s.FunctionsAdded)),
		humanize.Comma(int64(s.FunctionsRemoved)),
		humanize.Comma(int64(s.FunctionsModified)))
	fmt.Fprintf(&b, "Structs:   %s added, %s removed, %s modified\n",
		humanize.Comma(int64(s.StructsAdded)),
		humanize.Comma(int64(s.StructsRemoved)),
		humanize.Comma(int64(s.StructsModified)))
	fmt.Fprintf(&b, "Modules:   %s added, %s removed\n",
		humanize.Comma(int64(s.ModulesAdded)),
		humanize.Comma(int64(s.ModulesRemoved)))
	fmt.Fprintf(&b, "Total changes: %s\n", humanize.Comma(int64(s.TotalChanges)))

	if s.BreakingChanges {
		b.WriteString("\nBREAKING CHANGES DETECTED: this upgrade may invalidate existing callers.\n")
	} else {
		b.WriteString("\nNo breaking changes detected.\n")
	}

	return b.String()
}

func riskMarker(r changeset.Risk) string {
	if r == changeset.RiskBreaking {
		return "BREAKING"
	}
	return string(r)
}

// sortedModules returns the module names of a grouped change map in stable
// order.
func sortedModules(byModule map[string][]changeset.Change) []string {
	names := make([]string, 0, len(byModule))
	for name := range byModule {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

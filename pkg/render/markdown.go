package render

import (
	"fmt"
	"strings"

	"github.com/movediff-labs/movediff/core/changeset"
)

// Markdown renders a structural diff as a markdown report grouped by module.
func Markdown(diff changeset.StructuralDiff) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Package upgrade: %s -> %s\n\n", diff.FromVersion, diff.ToVersion)
	fmt.Fprintf(&b, "- Before: `%s`\n", diff.FromPackageID)
	fmt.Fprintf(&b, "- After: `%s`\n\n", diff.ToPackageID)

	if len(diff.Changes) == 0 {
		b.WriteString("No interface changes detected.\n")
		return b.String()
	}

	s := diff.Summary
	fmt.Fprintf(&b, "**%d changes** (functions +%d/-%d/~%d, structs +%d/-%d/~%d, modules +%d/-%d)",
		s.TotalChanges,
		s.FunctionsAdded, s.FunctionsRemoved, s.FunctionsModified,
		s.StructsAdded, s.StructsRemoved, s.StructsModified,
		s.ModulesAdded, s.ModulesRemoved)
	if s.BreakingChanges {
		b.WriteString(" — **contains breaking changes**")
	}
	b.WriteString("\n\n")

	for _, module := range sortedModules(diff.ChangesByModule) {
		fmt.Fprintf(&b, "## %s\n\n", module)

		for _, c := range diff.ChangesByModule[module] {
			marker := ""
			if c.Risk == changeset.RiskBreaking {
				marker = " **[breaking]**"
			}
			fmt.Fprintf(&b, "- %s%s\n", c.Description, marker)

			if c.Details == nil {
				continue
			}
			for _, detail := range c.Details.Changes {
				fmt.Fprintf(&b, "  - %s\n", detail)
			}
			if c.Details.Before != "" {
				fmt.Fprintf(&b, "  - before: `%s`\n", c.Details.Before)
			}
			if c.Details.After != "" {
				fmt.Fprintf(&b, "  - after: `%s`\n", c.Details.After)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

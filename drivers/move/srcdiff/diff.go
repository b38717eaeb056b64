package srcdiff

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffModule compares two versions of one module's source text. Empty source
// is treated as an absent file: the result degenerates to a synthetic all-add
// or all-remove hunk, or to no hunks at all when both sides are absent.
func DiffModule(beforeSource, afterSource, moduleName, fromVersion, toVersion string, opts Options) SourceDiff {
	if opts.ContextLines == 0 {
		opts.ContextLines = DefaultContextLines
	}

	d := SourceDiff{
		ModuleName:  moduleName,
		FromVersion: fromVersion,
		ToVersion:   toVersion,
		ExistsInOld: beforeSource != "",
		ExistsInNew: afterSource != "",
	}

	switch {
	case !d.ExistsInOld && !d.ExistsInNew:
		return d

	case !d.ExistsInOld:
		d.Hunks = []DiffHunk{wholeFileHunk(normalizeLines(afterSource), LineAdd)}

	case !d.ExistsInNew:
		d.Hunks = []DiffHunk{wholeFileHunk(normalizeLines(beforeSource), LineRemove)}

	default:
		oldLines := normalizeLines(beforeSource)
		newLines := normalizeLines(afterSource)
		d.Hunks = buildHunks(diffLines(oldLines, newLines, opts.IgnoreWhitespace), opts.ContextLines)
	}

	d.Stats = computeStats(d.Hunks)
	return d
}

// DiffPackage runs DiffModule for every module in the union of both source
// maps, optionally restricted to the given module names.
func DiffPackage(before, after map[string]string, fromVersion, toVersion string, modules []string, opts Options) map[string]SourceDiff {
	selected := make(map[string]bool, len(modules))
	for _, m := range modules {
		selected[m] = true
	}

	names := make(map[string]bool, len(before)+len(after))
	for name := range before {
		names[name] = true
	}
	for name := range after {
		names[name] = true
	}

	diffs := make(map[string]SourceDiff, len(names))
	for _, name := range sortedNames(names) {
		if len(selected) > 0 && !selected[name] {
			continue
		}
		diffs[name] = DiffModule(before[name], after[name], name, fromVersion, toVersion, opts)
	}

	return diffs
}

// normalizeLines splits source into lines with line endings normalized to
// "\n" and trailing whitespace stripped per line. This runs unconditionally,
// independent of the IgnoreWhitespace option.
func normalizeLines(source string) []string {
	s := strings.ReplaceAll(source, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return lines
}

// diffLines runs the line matcher and flattens its opcodes into an ordered
// stream of diff lines with running old/new line numbers.
func diffLines(oldLines, newLines []string, ignoreWhitespace bool) []DiffLine {
	matchOld, matchNew := oldLines, newLines
	if ignoreWhitespace {
		matchOld = trimmedCopy(oldLines)
		matchNew = trimmedCopy(newLines)
	}

	matcher := difflib.NewMatcher(matchOld, matchNew)

	var records []DiffLine
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				records = append(records, DiffLine{
					Type:      LineContext,
					Content:   oldLines[op.I1+k],
					OldNumber: op.I1 + k + 1,
					NewNumber: op.J1 + k + 1,
				})
			}
		case 'd', 'i', 'r':
			for k := op.I1; k < op.I2; k++ {
				records = append(records, DiffLine{Type: LineRemove, Content: oldLines[k], OldNumber: k + 1})
			}
			for k := op.J1; k < op.J2; k++ {
				records = append(records, DiffLine{Type: LineAdd, Content: newLines[k], NewNumber: k + 1})
			}
		}
	}
	return records
}

// wholeFileHunk builds the synthetic hunk for a file that exists on only one
// side of the comparison.
func wholeFileHunk(lines []string, lineType LineType) DiffHunk {
	h := DiffHunk{Lines: make([]DiffLine, 0, len(lines))}

	for i, content := range lines {
		line := DiffLine{Type: lineType, Content: content}
		if lineType == LineAdd {
			line.NewNumber = i + 1
		} else {
			line.OldNumber = i + 1
		}
		h.Lines = append(h.Lines, line)
	}

	if lineType == LineAdd {
		h.NewStart = 1
		h.NewLines = len(lines)
	} else {
		h.OldStart = 1
		h.OldLines = len(lines)
	}
	return h
}

// computeStats scans all hunk lines once.
func computeStats(hunks []DiffHunk) Stats {
	var s Stats
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Type {
			case LineAdd:
				s.LinesAdded++
			case LineRemove:
				s.LinesRemoved++
			}
		}
	}
	s.LinesChanged = s.LinesAdded + s.LinesRemoved
	return s
}

func trimmedCopy(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package srcdiff produces line-oriented diffs of module source text as
// hunk-structured patches with bounded context.
package srcdiff

// LineType classifies a single diff line.
type LineType string

const (
	LineContext LineType = "context"
	LineAdd     LineType = "add"
	LineRemove  LineType = "remove"
)

// DiffLine is one line of a hunk. Context lines carry both line numbers,
// added lines only the new one, removed lines only the old one.
type DiffLine struct {
	Type      LineType `json:"type"`
	Content   string   `json:"content"`
	OldNumber int      `json:"old_number,omitempty"`
	NewNumber int      `json:"new_number,omitempty"`
}

// DiffHunk is a contiguous block of changed lines plus bounded context. The
// header fields follow the unified-diff convention and always match the
// actual line counts in Lines.
type DiffHunk struct {
	OldStart int        `json:"old_start"`
	OldLines int        `json:"old_lines"`
	NewStart int        `json:"new_start"`
	NewLines int        `json:"new_lines"`
	Lines    []DiffLine `json:"lines"`
}

// Stats are aggregate line counts across all hunks of one diff.
type Stats struct {
	LinesAdded   int `json:"lines_added"`
	LinesRemoved int `json:"lines_removed"`
	LinesChanged int `json:"lines_changed"`
}

// SourceDiff is the full line-diff result for one module.
type SourceDiff struct {
	ModuleName  string     `json:"module_name"`
	FromVersion string     `json:"from_version"`
	ToVersion   string     `json:"to_version"`
	Hunks       []DiffHunk `json:"hunks"`
	Stats       Stats      `json:"stats"`
	ExistsInOld bool       `json:"exists_in_old"`
	ExistsInNew bool       `json:"exists_in_new"`
}

// DefaultContextLines is the context window used when Options leaves
// ContextLines at zero.
const DefaultContextLines = 3

// Options tunes a diff run. A zero ContextLines selects DefaultContextLines.
// IgnoreWhitespace makes the line matcher treat lines that differ only in
// leading/trailing whitespace as equal; emitted hunk lines always carry the
// normalized original text.
type Options struct {
	ContextLines     int
	IgnoreWhitespace bool
}

package changeset

// ChangeType classifies what happened to an interface element.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// Category identifies which kind of interface element changed.
type Category string

const (
	CategoryFunction Category = "function"
	CategoryStruct   Category = "struct"
	CategoryModule   Category = "module"
)

// Risk is the compatibility classification of a single change.
type Risk string

const (
	RiskBreaking    Risk = "breaking"
	RiskNonBreaking Risk = "non_breaking"
	RiskUnknown     Risk = "unknown"
)

// Details carries the before/after canonical signatures and the individual
// differences detected for a modified element.
type Details struct {
	Before  string   `json:"before,omitempty"`
	After   string   `json:"after,omitempty"`
	Changes []string `json:"changes,omitempty"`
}

// Change is a single detected difference between two versions of a package's
// callable or visible surface. Immutable once produced.
type Change struct {
	Type        ChangeType `json:"type"`
	Category    Category   `json:"category"`
	Name        string     `json:"name"`
	ModuleName  string     `json:"module_name,omitempty"`
	Risk        Risk       `json:"risk"`
	Description string     `json:"description"`
	Details     *Details   `json:"details,omitempty"`
}

// Summary holds aggregate counters derived from a change list. It must always
// agree with the counts obtained by re-scanning that list.
type Summary struct {
	FunctionsAdded    int  `json:"functions_added"`
	FunctionsRemoved  int  `json:"functions_removed"`
	FunctionsModified int  `json:"functions_modified"`
	StructsAdded      int  `json:"structs_added"`
	StructsRemoved    int  `json:"structs_removed"`
	StructsModified   int  `json:"structs_modified"`
	ModulesAdded      int  `json:"modules_added"`
	ModulesRemoved    int  `json:"modules_removed"`
	BreakingChanges   bool `json:"breaking_changes"`
	TotalChanges      int  `json:"total_changes"`
}

// StructuralDiff is the full comparison result between two package versions.
type StructuralDiff struct {
	FromVersion     string              `json:"from_version"`
	ToVersion       string              `json:"to_version"`
	FromPackageID   string              `json:"from_package_id"`
	ToPackageID     string              `json:"to_package_id"`
	Summary         Summary             `json:"summary"`
	Changes         []Change            `json:"changes"`
	ChangesByModule map[string][]Change `json:"changes_by_module"`
}

// Summarize computes a Summary by scanning changes once.
func Summarize(changes []Change) Summary {
	var s Summary
	for _, c := range changes {
		switch c.Category {
		case CategoryFunction:
			switch c.Type {
			case ChangeAdded:
				s.FunctionsAdded++
			case ChangeRemoved:
				s.FunctionsRemoved++
			case ChangeModified:
				s.FunctionsModified++
			}
		case CategoryStruct:
			switch c.Type {
			case ChangeAdded:
				s.StructsAdded++
			case ChangeRemoved:
				s.StructsRemoved++
			case ChangeModified:
				s.StructsModified++
			}
		case CategoryModule:
			switch c.Type {
			case ChangeAdded:
				s.ModulesAdded++
			case ChangeRemoved:
				s.ModulesRemoved++
			}
		}
		if c.Risk == RiskBreaking {
			s.BreakingChanges = true
		}
	}
	s.TotalChanges = len(changes)
	return s
}

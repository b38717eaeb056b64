// Package abidiff computes the structural difference between two versions of
// a package's normalized module interfaces and classifies each change as
// breaking or non-breaking.
package abidiff

import (
	"fmt"
	"sort"

	"github.com/movediff-labs/movediff/core/changeset"
	"github.com/movediff-labs/movediff/drivers/move/normalized"
)

// CompareModules diffs two versions of one module and returns the per-function
// and per-struct changes. Identical inputs produce an empty list.
func CompareModules(moduleName string, before, after normalized.ModuleInterface) []changeset.Change {
	var changes []changeset.Change
	changes = append(changes, diffFunctions(moduleName, before.Functions, after.Functions)...)
	changes = append(changes, diffStructs(moduleName, before.Structs, after.Structs)...)
	return changes
}

// ComparePackages diffs two full package snapshots. Module, function, and
// struct names are iterated in sorted order so identical inputs always yield
// an identical change list.
func ComparePackages(before, after map[string]normalized.ModuleInterface, fromVersion, toVersion, fromPackageID, toPackageID string) changeset.StructuralDiff {
	var changes []changeset.Change

	for _, name := range unionKeys(sortedKeys(before), sortedKeys(after)) {
		oldMod, inOld := before[name]
		newMod, inNew := after[name]

		switch {
		case inOld && inNew:
			changes = append(changes, CompareModules(name, oldMod, newMod)...)

		case inNew:
			// A fresh module's surface is fully enumerated for discoverability.
			changes = append(changes, changeset.Change{
				Type:        changeset.ChangeAdded,
				Category:    changeset.CategoryModule,
				Name:        name,
				ModuleName:  name,
				Risk:        changeset.RiskNonBreaking,
				Description: fmt.Sprintf("Added module %s", name),
			})
			changes = append(changes, enumerateModule(newMod)...)

		default:
			// Removal breaking-ness is total: one change, no internals.
			changes = append(changes, changeset.Change{
				Type:        changeset.ChangeRemoved,
				Category:    changeset.CategoryModule,
				Name:        name,
				ModuleName:  name,
				Risk:        changeset.RiskBreaking,
				Description: fmt.Sprintf("Removed module %s", name),
			})
		}
	}

	byModule := make(map[string][]changeset.Change)
	for _, c := range changes {
		byModule[c.ModuleName] = append(byModule[c.ModuleName], c)
	}

	return changeset.StructuralDiff{
		FromVersion:     fromVersion,
		ToVersion:       toVersion,
		FromPackageID:   fromPackageID,
		ToPackageID:     toPackageID,
		Summary:         changeset.Summarize(changes),
		Changes:         changes,
		ChangesByModule: byModule,
	}
}

// enumerateModule emits one added change per function and struct of a module
// that is new in its entirety.
func enumerateModule(mod normalized.ModuleInterface) []changeset.Change {
	var changes []changeset.Change

	for _, name := range sortedKeys(mod.Functions) {
		changes = append(changes, addedFunction(mod.Name, mod.Functions[name]))
	}
	for _, name := range sortedKeys(mod.Structs) {
		changes = append(changes, addedStruct(mod.Name, mod.Structs[name]))
	}

	return changes
}

func addedFunction(moduleName string, fn normalized.FunctionInterface) changeset.Change {
	return changeset.Change{
		Type:        changeset.ChangeAdded,
		Category:    changeset.CategoryFunction,
		Name:        fn.Name,
		ModuleName:  moduleName,
		Risk:        changeset.RiskNonBreaking,
		Description: fmt.Sprintf("Added function %s", fn.Name),
		Details:     &changeset.Details{After: DescribeFunction(fn)},
	}
}

func addedStruct(moduleName string, st normalized.StructInterface) changeset.Change {
	return changeset.Change{
		Type:        changeset.ChangeAdded,
		Category:    changeset.CategoryStruct,
		Name:        st.Name,
		ModuleName:  moduleName,
		Risk:        changeset.RiskNonBreaking,
		Description: fmt.Sprintf("Added struct %s", st.Name),
		Details:     &changeset.Details{After: DescribeStruct(st)},
	}
}

func diffFunctions(moduleName string, before, after map[string]normalized.FunctionInterface) []changeset.Change {
	var changes []changeset.Change

	for _, name := range unionKeys(sortedKeys(before), sortedKeys(after)) {
		oldFn, inOld := before[name]
		newFn, inNew := after[name]

		switch {
		case inOld && inNew:
			if c, modified := compareFunction(moduleName, oldFn, newFn); modified {
				changes = append(changes, c)
			}

		case inNew:
			changes = append(changes, addedFunction(moduleName, newFn))

		default:
			changes = append(changes, changeset.Change{
				Type:        changeset.ChangeRemoved,
				Category:    changeset.CategoryFunction,
				Name:        name,
				ModuleName:  moduleName,
				Risk:        changeset.RiskBreaking,
				Description: fmt.Sprintf("Removed function %s", name),
				Details:     &changeset.Details{Before: DescribeFunction(oldFn)},
			})
		}
	}

	return changes
}

// compareFunction reports how a function present in both versions differs.
// The second return is false when the signatures are identical.
func compareFunction(moduleName string, before, after normalized.FunctionInterface) (changeset.Change, bool) {
	var details []string
	breaking := false

	if before.Visibility != after.Visibility {
		details = append(details, fmt.Sprintf("Visibility changed from %s to %s", before.Visibility, after.Visibility))
		// Only narrowing from public invalidates existing callers.
		if before.Visibility == normalized.VisibilityPublic {
			breaking = true
		}
	}

	if before.IsEntry != after.IsEntry {
		if before.IsEntry {
			details = append(details, "No longer an entry function")
			breaking = true
		} else {
			details = append(details, "Became an entry function")
		}
	}

	if len(before.TypeParameters) != len(after.TypeParameters) {
		details = append(details, fmt.Sprintf("Type parameter count changed from %d to %d",
			len(before.TypeParameters), len(after.TypeParameters)))
		breaking = true
	}

	if !normalized.TypeListEqual(before.Parameters, after.Parameters) {
		details = append(details, "Parameters changed")
		breaking = true
	}

	if !normalized.TypeListEqual(before.Returns, after.Returns) {
		details = append(details, "Return types changed")
		breaking = true
	}

	if len(details) == 0 {
		return changeset.Change{}, false
	}

	risk := changeset.RiskNonBreaking
	if breaking {
		risk = changeset.RiskBreaking
	}

	return changeset.Change{
		Type:        changeset.ChangeModified,
		Category:    changeset.CategoryFunction,
		Name:        before.Name,
		ModuleName:  moduleName,
		Risk:        risk,
		Description: fmt.Sprintf("Modified function %s", before.Name),
		Details: &changeset.Details{
			Before:  DescribeFunction(before),
			After:   DescribeFunction(after),
			Changes: details,
		},
	}, true
}

func diffStructs(moduleName string, before, after map[string]normalized.StructInterface) []changeset.Change {
	var changes []changeset.Change

	for _, name := range unionKeys(sortedKeys(before), sortedKeys(after)) {
		oldSt, inOld := before[name]
		newSt, inNew := after[name]

		switch {
		case inOld && inNew:
			if c, modified := compareStruct(moduleName, oldSt, newSt); modified {
				changes = append(changes, c)
			}

		case inNew:
			changes = append(changes, addedStruct(moduleName, newSt))

		default:
			changes = append(changes, changeset.Change{
				Type:        changeset.ChangeRemoved,
				Category:    changeset.CategoryStruct,
				Name:        name,
				ModuleName:  moduleName,
				Risk:        changeset.RiskBreaking,
				Description: fmt.Sprintf("Removed struct %s", name),
				Details:     &changeset.Details{Before: DescribeStruct(oldSt)},
			})
		}
	}

	return changes
}

// compareStruct reports how a struct present in both versions differs.
//
// Field additions are classified breaking, same as removals: the serialized
// layout of existing on-chain objects depends on the full field set, so any
// field-set change risks deserialization of stored state. This deliberately
// differs from the function-parameter policy.
func compareStruct(moduleName string, before, after normalized.StructInterface) (changeset.Change, bool) {
	var details []string
	breaking := false

	oldAbilities := stringSet(before.Abilities)
	newAbilities := stringSet(after.Abilities)

	for _, a := range before.Abilities {
		if !newAbilities[a] {
			details = append(details, fmt.Sprintf("Removed ability: %s", a))
			breaking = true
		}
	}
	for _, a := range after.Abilities {
		if !oldAbilities[a] {
			details = append(details, fmt.Sprintf("Added ability: %s", a))
		}
	}

	if len(before.TypeParameters) != len(after.TypeParameters) {
		details = append(details, fmt.Sprintf("Type parameter count changed from %d to %d",
			len(before.TypeParameters), len(after.TypeParameters)))
		breaking = true
	}

	oldFields := fieldMap(before.Fields)
	newFields := fieldMap(after.Fields)

	for _, name := range unionKeys(fieldNames(before.Fields), fieldNames(after.Fields)) {
		oldType, inOld := oldFields[name]
		newType, inNew := newFields[name]

		switch {
		case inOld && inNew:
			if !oldType.Equal(newType) {
				details = append(details, fmt.Sprintf("Changed field type: %s (%s -> %s)",
					name, RenderType(oldType), RenderType(newType)))
				breaking = true
			}

		case inNew:
			details = append(details, fmt.Sprintf("Added field: %s", name))
			breaking = true

		default:
			details = append(details, fmt.Sprintf("Removed field: %s", name))
			breaking = true
		}
	}

	if len(details) == 0 {
		return changeset.Change{}, false
	}

	risk := changeset.RiskNonBreaking
	if breaking {
		risk = changeset.RiskBreaking
	}

	return changeset.Change{
		Type:        changeset.ChangeModified,
		Category:    changeset.CategoryStruct,
		Name:        before.Name,
		ModuleName:  moduleName,
		Risk:        risk,
		Description: fmt.Sprintf("Modified struct %s", before.Name),
		Details: &changeset.Details{
			Before:  DescribeStruct(before),
			After:   DescribeStruct(after),
			Changes: details,
		},
	}, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// unionKeys merges two sorted name lists, deduplicated, preserving order.
func unionKeys(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i] < b[j]):
			out = append(out, a[i])
			i++
		case i >= len(a) || b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

func fieldMap(fields []normalized.FieldInterface) map[string]normalized.TypeExpr {
	m := make(map[string]normalized.TypeExpr, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Type
	}
	return m
}

// fieldNames returns field names sorted, for deterministic union iteration.
func fieldNames(fields []normalized.FieldInterface) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

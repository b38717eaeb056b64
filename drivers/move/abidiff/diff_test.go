package abidiff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/movediff-labs/movediff/core/changeset"
	"github.com/movediff-labs/movediff/drivers/move/normalized"
)

func coinType() normalized.TypeExpr {
	return structRef("0x2", "coin", "Coin")
}

func transferFn(params ...normalized.TypeExpr) normalized.FunctionInterface {
	return normalized.FunctionInterface{
		Name:       "transfer",
		Visibility: normalized.VisibilityPublic,
		IsEntry:    true,
		Parameters: params,
	}
}

func TestCompareModulesIdentical(t *testing.T) {
	mod := moduleWith("bank",
		[]normalized.FunctionInterface{transferFn(coinType(), prim("u64"))},
		[]normalized.StructInterface{{
			Name:      "Vault",
			Abilities: []string{"key"},
			Fields:    []normalized.FieldInterface{{Name: "balance", Type: prim("u64")}},
		}},
	)

	require.Empty(t, CompareModules("bank", mod, mod))
}

func TestCompareModulesParameterAdded(t *testing.T) {
	before := moduleWith("bank", []normalized.FunctionInterface{
		transferFn(coinType(), prim("u64")),
	}, nil)
	after := moduleWith("bank", []normalized.FunctionInterface{
		transferFn(coinType(), prim("u64"), prim("address")),
	}, nil)

	changes := CompareModules("bank", before, after)
	require.Len(t, changes, 1)

	c := changes[0]
	require.Equal(t, changeset.ChangeModified, c.Type)
	require.Equal(t, changeset.CategoryFunction, c.Category)
	require.Equal(t, "transfer", c.Name)
	require.Equal(t, changeset.RiskBreaking, c.Risk)
	require.Contains(t, c.Details.Changes, "Parameters changed")
	require.NotEmpty(t, c.Details.Before)
	require.NotEmpty(t, c.Details.After)
}

func TestCompareModulesFunctionRiskPolicy(t *testing.T) {
	public := func(name string) normalized.FunctionInterface {
		return normalized.FunctionInterface{Name: name, Visibility: normalized.VisibilityPublic}
	}

	tests := []struct {
		name       string
		before     normalized.FunctionInterface
		after      normalized.FunctionInterface
		wantRisk   changeset.Risk
		wantDetail string
	}{
		{
			name:       "visibility narrowed from public",
			before:     public("f"),
			after:      normalized.FunctionInterface{Name: "f", Visibility: normalized.VisibilityFriend},
			wantRisk:   changeset.RiskBreaking,
			wantDetail: "Visibility changed from public to friend",
		},
		{
			name:       "visibility widened to public",
			before:     normalized.FunctionInterface{Name: "f", Visibility: normalized.VisibilityPrivate},
			after:      public("f"),
			wantRisk:   changeset.RiskNonBreaking,
			wantDetail: "Visibility changed from private to public",
		},
		{
			name:       "entry status lost",
			before:     normalized.FunctionInterface{Name: "f", Visibility: normalized.VisibilityPublic, IsEntry: true},
			after:      public("f"),
			wantRisk:   changeset.RiskBreaking,
			wantDetail: "No longer an entry function",
		},
		{
			name:       "entry status gained",
			before:     public("f"),
			after:      normalized.FunctionInterface{Name: "f", Visibility: normalized.VisibilityPublic, IsEntry: true},
			wantRisk:   changeset.RiskNonBreaking,
			wantDetail: "Became an entry function",
		},
		{
			name:   "type parameter count changed",
			before: public("f"),
			after: normalized.FunctionInterface{
				Name: "f", Visibility: normalized.VisibilityPublic,
				TypeParameters: []normalized.TypeParamConstraints{{}},
			},
			wantRisk:   changeset.RiskBreaking,
			wantDetail: "Type parameter count changed from 0 to 1",
		},
		{
			name:       "return types changed",
			before:     normalized.FunctionInterface{Name: "f", Visibility: normalized.VisibilityPublic, Returns: []normalized.TypeExpr{prim("u64")}},
			after:      normalized.FunctionInterface{Name: "f", Visibility: normalized.VisibilityPublic, Returns: []normalized.TypeExpr{prim("u128")}},
			wantRisk:   changeset.RiskBreaking,
			wantDetail: "Return types changed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := moduleWith("m", []normalized.FunctionInterface{tt.before}, nil)
			after := moduleWith("m", []normalized.FunctionInterface{tt.after}, nil)

			changes := CompareModules("m", before, after)
			require.Len(t, changes, 1)
			require.Equal(t, tt.wantRisk, changes[0].Risk)
			require.Contains(t, changes[0].Details.Changes, tt.wantDetail)
		})
	}
}

func TestCompareModulesAddedAndRemovedFunctions(t *testing.T) {
	before := moduleWith("m", []normalized.FunctionInterface{
		{Name: "old_fn", Visibility: normalized.VisibilityPublic},
	}, nil)
	after := moduleWith("m", []normalized.FunctionInterface{
		{Name: "new_fn", Visibility: normalized.VisibilityPublic},
	}, nil)

	changes := CompareModules("m", before, after)
	require.Len(t, changes, 2)

	// Sorted union: new_fn before old_fn.
	require.Equal(t, changeset.ChangeAdded, changes[0].Type)
	require.Equal(t, "new_fn", changes[0].Name)
	require.Equal(t, changeset.RiskNonBreaking, changes[0].Risk)

	require.Equal(t, changeset.ChangeRemoved, changes[1].Type)
	require.Equal(t, "old_fn", changes[1].Name)
	require.Equal(t, changeset.RiskBreaking, changes[1].Risk)
}

func TestCompareModulesAbilityAddedIsNonBreaking(t *testing.T) {
	before := moduleWith("m", nil, []normalized.StructInterface{{
		Name:      "Vault",
		Abilities: []string{"key"},
		Fields:    []normalized.FieldInterface{{Name: "balance", Type: prim("u64")}},
	}})
	after := moduleWith("m", nil, []normalized.StructInterface{{
		Name:      "Vault",
		Abilities: []string{"key", "store"},
		Fields:    []normalized.FieldInterface{{Name: "balance", Type: prim("u64")}},
	}})

	changes := CompareModules("m", before, after)
	require.Len(t, changes, 1)

	c := changes[0]
	require.Equal(t, changeset.ChangeModified, c.Type)
	require.Equal(t, changeset.CategoryStruct, c.Category)
	require.Equal(t, changeset.RiskNonBreaking, c.Risk)
	require.Contains(t, c.Details.Changes, "Added ability: store")
}

func TestCompareModulesStructRiskPolicy(t *testing.T) {
	base := normalized.StructInterface{
		Name:      "Vault",
		Abilities: []string{"key", "store"},
		Fields:    []normalized.FieldInterface{{Name: "balance", Type: prim("u64")}},
	}

	tests := []struct {
		name       string
		after      normalized.StructInterface
		wantDetail string
	}{
		{
			name: "ability removed",
			after: normalized.StructInterface{
				Name: "Vault", Abilities: []string{"key"},
				Fields: []normalized.FieldInterface{{Name: "balance", Type: prim("u64")}},
			},
			wantDetail: "Removed ability: store",
		},
		{
			name: "field added",
			after: normalized.StructInterface{
				Name: "Vault", Abilities: []string{"key", "store"},
				Fields: []normalized.FieldInterface{
					{Name: "balance", Type: prim("u64")},
					{Name: "owner", Type: prim("address")},
				},
			},
			wantDetail: "Added field: owner",
		},
		{
			name: "field removed",
			after: normalized.StructInterface{
				Name: "Vault", Abilities: []string{"key", "store"},
			},
			wantDetail: "Removed field: balance",
		},
		{
			name: "field type changed",
			after: normalized.StructInterface{
				Name: "Vault", Abilities: []string{"key", "store"},
				Fields: []normalized.FieldInterface{{Name: "balance", Type: prim("u128")}},
			},
			wantDetail: "Changed field type: balance (u64 -> u128)",
		},
		{
			name: "type parameter count changed",
			after: normalized.StructInterface{
				Name: "Vault", Abilities: []string{"key", "store"},
				TypeParameters: []normalized.StructTypeParam{{}},
				Fields:         []normalized.FieldInterface{{Name: "balance", Type: prim("u64")}},
			},
			wantDetail: "Type parameter count changed from 0 to 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := moduleWith("m", nil, []normalized.StructInterface{base})
			after := moduleWith("m", nil, []normalized.StructInterface{tt.after})

			changes := CompareModules("m", before, after)
			require.Len(t, changes, 1)
			require.Equal(t, changeset.RiskBreaking, changes[0].Risk)
			require.Contains(t, changes[0].Details.Changes, tt.wantDetail)
		})
	}
}

func TestComparePackagesModuleSetDifference(t *testing.T) {
	before := map[string]normalized.ModuleInterface{
		"gone": moduleWith("gone", []normalized.FunctionInterface{
			{Name: "f", Visibility: normalized.VisibilityPublic},
		}, nil),
		"kept": moduleWith("kept", nil, nil),
	}
	after := map[string]normalized.ModuleInterface{
		"kept": moduleWith("kept", nil, nil),
		"fresh": moduleWith("fresh",
			[]normalized.FunctionInterface{
				{Name: "a", Visibility: normalized.VisibilityPublic},
				{Name: "b", Visibility: normalized.VisibilityPrivate},
			},
			[]normalized.StructInterface{{Name: "S"}},
		),
	}

	diff := ComparePackages(before, after, "1", "2", "0xaaa", "0xbbb")

	// fresh: 1 module + 2 functions + 1 struct, all enumerated; gone: 1 change.
	require.Len(t, diff.Changes, 5)

	require.Equal(t, "fresh", diff.Changes[0].Name)
	require.Equal(t, changeset.CategoryModule, diff.Changes[0].Category)
	require.Equal(t, changeset.RiskNonBreaking, diff.Changes[0].Risk)

	require.Equal(t, "a", diff.Changes[1].Name)
	require.Equal(t, "b", diff.Changes[2].Name)
	require.Equal(t, changeset.CategoryFunction, diff.Changes[1].Category)
	require.Equal(t, "S", diff.Changes[3].Name)
	require.Equal(t, changeset.CategoryStruct, diff.Changes[3].Category)

	removed := diff.Changes[4]
	require.Equal(t, "gone", removed.Name)
	require.Equal(t, changeset.ChangeRemoved, removed.Type)
	require.Equal(t, changeset.CategoryModule, removed.Category)
	require.Equal(t, changeset.RiskBreaking, removed.Risk)

	// Removed module internals are not enumerated.
	for _, c := range diff.Changes {
		require.False(t, c.ModuleName == "gone" && c.Category != changeset.CategoryModule)
	}

	require.Equal(t, 1, diff.Summary.ModulesAdded)
	require.Equal(t, 1, diff.Summary.ModulesRemoved)
	require.Equal(t, "1", diff.FromVersion)
	require.Equal(t, "0xbbb", diff.ToPackageID)
	require.Len(t, diff.ChangesByModule["fresh"], 4)
	require.Len(t, diff.ChangesByModule["gone"], 1)
}

func TestComparePackagesDeterminism(t *testing.T) {
	before := map[string]normalized.ModuleInterface{
		"b": moduleWith("b", []normalized.FunctionInterface{{Name: "x", Visibility: normalized.VisibilityPublic}}, nil),
		"a": moduleWith("a", nil, []normalized.StructInterface{{Name: "S", Fields: []normalized.FieldInterface{{Name: "v", Type: prim("u8")}}}}),
		"c": moduleWith("c", nil, nil),
	}
	after := map[string]normalized.ModuleInterface{
		"a": moduleWith("a", nil, []normalized.StructInterface{{Name: "S"}}),
		"d": moduleWith("d", []normalized.FunctionInterface{{Name: "y", Visibility: normalized.VisibilityPublic}}, nil),
	}

	first := ComparePackages(before, after, "1", "2", "0x1", "0x2")
	second := ComparePackages(before, after, "1", "2", "0x1", "0x2")
	require.Equal(t, first, second)
}

func TestComparePackagesSummaryConsistency(t *testing.T) {
	before := map[string]normalized.ModuleInterface{
		"m": moduleWith("m",
			[]normalized.FunctionInterface{
				{Name: "f1", Visibility: normalized.VisibilityPublic},
				{Name: "f2", Visibility: normalized.VisibilityPublic, Parameters: []normalized.TypeExpr{prim("u64")}},
			},
			[]normalized.StructInterface{{Name: "Gone"}},
		),
	}
	after := map[string]normalized.ModuleInterface{
		"m": moduleWith("m",
			[]normalized.FunctionInterface{
				{Name: "f2", Visibility: normalized.VisibilityPublic, Parameters: []normalized.TypeExpr{prim("u128")}},
				{Name: "f3", Visibility: normalized.VisibilityPublic},
			},
			[]normalized.StructInterface{{Name: "New"}},
		),
	}

	diff := ComparePackages(before, after, "1", "2", "0x1", "0x2")

	require.Equal(t, diff.Summary, changeset.Summarize(diff.Changes))
	require.Equal(t, len(diff.Changes), diff.Summary.TotalChanges)
	require.Equal(t, 1, diff.Summary.FunctionsAdded)
	require.Equal(t, 1, diff.Summary.FunctionsRemoved)
	require.Equal(t, 1, diff.Summary.FunctionsModified)
	require.Equal(t, 1, diff.Summary.StructsAdded)
	require.Equal(t, 1, diff.Summary.StructsRemoved)
	require.True(t, diff.Summary.BreakingChanges)

	grouped := 0
	for _, changes := range diff.ChangesByModule {
		grouped += len(changes)
	}
	require.Equal(t, diff.Summary.TotalChanges, grouped)
}

package changeset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	changes := []Change{
		{Type: ChangeAdded, Category: CategoryFunction, Risk: RiskNonBreaking},
		{Type: ChangeRemoved, Category: CategoryFunction, Risk: RiskBreaking},
		{Type: ChangeModified, Category: CategoryFunction, Risk: RiskBreaking},
		{Type: ChangeAdded, Category: CategoryStruct, Risk: RiskNonBreaking},
		{Type: ChangeModified, Category: CategoryStruct, Risk: RiskNonBreaking},
		{Type: ChangeAdded, Category: CategoryModule, Risk: RiskNonBreaking},
		{Type: ChangeRemoved, Category: CategoryModule, Risk: RiskBreaking},
	}

	s := Summarize(changes)

	require.Equal(t, 1, s.FunctionsAdded)
	require.Equal(t, 1, s.FunctionsRemoved)
	require.Equal(t, 1, s.FunctionsModified)
	require.Equal(t, 1, s.StructsAdded)
	require.Equal(t, 0, s.StructsRemoved)
	require.Equal(t, 1, s.StructsModified)
	require.Equal(t, 1, s.ModulesAdded)
	require.Equal(t, 1, s.ModulesRemoved)
	require.True(t, s.BreakingChanges)
	require.Equal(t, 7, s.TotalChanges)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	require.Equal(t, Summary{}, s)
	require.False(t, s.BreakingChanges)
}

func TestChangeJSONShape(t *testing.T) {
	c := Change{
		Type:        ChangeModified,
		Category:    CategoryStruct,
		Name:        "Vault",
		ModuleName:  "bank",
		Risk:        RiskBreaking,
		Description: "Modified struct Vault",
		Details:     &Details{Before: "struct Vault {}", Changes: []string{"Added field: owner"}},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "modified", decoded["type"])
	require.Equal(t, "struct", decoded["category"])
	require.Equal(t, "bank", decoded["module_name"])
	require.Equal(t, "breaking", decoded["risk"])

	// Optional fields stay absent when empty.
	data, err = json.Marshal(Change{Type: ChangeAdded, Category: CategoryFunction, Name: "f", Risk: RiskNonBreaking})
	require.NoError(t, err)
	require.NotContains(t, string(data), "details")
	require.NotContains(t, string(data), "module_name")
}

package abidiff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/movediff-labs/movediff/drivers/move/normalized"
)

func TestRenderType(t *testing.T) {
	coin := structRef("0x2", "coin", "Coin", structRef("0x2", "sui", "SUI"))

	tests := []struct {
		name string
		in   normalized.TypeExpr
		want string
	}{
		{"primitive", prim("u64"), "u64"},
		{"vector", vec(prim("u8")), "vector<u8>"},
		{"nested vector", vec(vec(prim("address"))), "vector<vector<address>>"},
		{"struct with args", coin, "0x2::coin::Coin<0x2::sui::SUI>"},
		{"struct without args", structRef("0x1", "option", "Option"), "0x1::option::Option"},
		{"type parameter", typeParam(2), "T2"},
		{"reference", ref(prim("u64")), "&u64"},
		{"mutable reference", mutRef(coin), "&mut 0x2::coin::Coin<0x2::sui::SUI>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RenderType(tt.in))
		})
	}
}

func TestDescribeFunction(t *testing.T) {
	fn := normalized.FunctionInterface{
		Name:       "transfer",
		Visibility: normalized.VisibilityPublic,
		IsEntry:    true,
		TypeParameters: []normalized.TypeParamConstraints{
			{Abilities: []string{"key", "store"}},
			{},
		},
		Parameters: []normalized.TypeExpr{
			structRef("0x2", "coin", "Coin", typeParam(0)),
			prim("u64"),
		},
		Returns: []normalized.TypeExpr{prim("bool")},
	}

	require.Equal(t,
		"public entry fun transfer<T0: key + store, T1>(0x2::coin::Coin<T0>, u64): bool",
		DescribeFunction(fn))
}

func TestDescribeFunctionPrivateNoReturns(t *testing.T) {
	fn := normalized.FunctionInterface{
		Name:       "init",
		Visibility: normalized.VisibilityPrivate,
		Parameters: []normalized.TypeExpr{ref(prim("signer"))},
	}

	require.Equal(t, "fun init(&signer)", DescribeFunction(fn))
}

func TestDescribeFunctionFriendMultipleReturns(t *testing.T) {
	fn := normalized.FunctionInterface{
		Name:       "split",
		Visibility: normalized.VisibilityFriend,
		Returns:    []normalized.TypeExpr{prim("u64"), prim("u64")},
	}

	require.Equal(t, "public(friend) fun split(): (u64, u64)", DescribeFunction(fn))
}

func TestDescribeStruct(t *testing.T) {
	st := normalized.StructInterface{
		Name:      "Vault",
		Abilities: []string{"key", "store"},
		TypeParameters: []normalized.StructTypeParam{
			{Constraints: []string{"drop"}, IsPhantom: true},
		},
		Fields: []normalized.FieldInterface{
			{Name: "balance", Type: prim("u64")},
			{Name: "owner", Type: prim("address")},
		},
	}

	require.Equal(t,
		"struct Vault<phantom T0: drop> has key, store { balance: u64, owner: address }",
		DescribeStruct(st))
}

func TestDescribeStructEmpty(t *testing.T) {
	require.Equal(t, "struct Empty {}", DescribeStruct(normalized.StructInterface{Name: "Empty"}))
}

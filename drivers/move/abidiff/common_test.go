package abidiff

import (
	"github.com/movediff-labs/movediff/drivers/move/normalized"
)

func prim(name string) normalized.TypeExpr {
	return normalized.TypeExpr{Kind: normalized.KindPrimitive, Name: name}
}

func vec(elem normalized.TypeExpr) normalized.TypeExpr {
	return normalized.TypeExpr{Kind: normalized.KindVector, Elem: &elem}
}

func ref(elem normalized.TypeExpr) normalized.TypeExpr {
	return normalized.TypeExpr{Kind: normalized.KindReference, Elem: &elem}
}

func mutRef(elem normalized.TypeExpr) normalized.TypeExpr {
	return normalized.TypeExpr{Kind: normalized.KindMutableReference, Elem: &elem}
}

func structRef(address, module, name string, args ...normalized.TypeExpr) normalized.TypeExpr {
	return normalized.TypeExpr{Kind: normalized.KindStructRef, Struct: &normalized.StructTag{
		Address: address, Module: module, Name: name, TypeArguments: args,
	}}
}

func typeParam(index int) normalized.TypeExpr {
	return normalized.TypeExpr{Kind: normalized.KindTypeParameter, TypeParameter: index}
}

// moduleWith builds a ModuleInterface from function and struct lists.
func moduleWith(name string, fns []normalized.FunctionInterface, sts []normalized.StructInterface) normalized.ModuleInterface {
	mod := normalized.ModuleInterface{
		Name:      name,
		Functions: make(map[string]normalized.FunctionInterface),
		Structs:   make(map[string]normalized.StructInterface),
	}
	for _, fn := range fns {
		mod.Functions[fn.Name] = fn
	}
	for _, st := range sts {
		mod.Structs[st.Name] = st
	}
	return mod
}

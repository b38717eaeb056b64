package abidiff

import (
	"fmt"
	"strings"

	"github.com/movediff-labs/movediff/drivers/move/normalized"
)

// RenderType converts a type expression to its canonical Move source form.
// Single source of truth for type rendering across the package.
func RenderType(t normalized.TypeExpr) string {
	switch t.Kind {
	case normalized.KindPrimitive:
		return t.Name

	case normalized.KindVector:
		if t.Elem == nil {
			return "vector<?>"
		}
		return "vector<" + RenderType(*t.Elem) + ">"

	case normalized.KindReference:
		if t.Elem == nil {
			return "&?"
		}
		return "&" + RenderType(*t.Elem)

	case normalized.KindMutableReference:
		if t.Elem == nil {
			return "&mut ?"
		}
		return "&mut " + RenderType(*t.Elem)

	case normalized.KindTypeParameter:
		return fmt.Sprintf("T%d", t.TypeParameter)

	case normalized.KindStructRef:
		if t.Struct == nil {
			return "?::?::?"
		}
		s := t.Struct
		base := s.Address + "::" + s.Module + "::" + s.Name
		if len(s.TypeArguments) == 0 {
			return base
		}
		args := make([]string, len(s.TypeArguments))
		for i, arg := range s.TypeArguments {
			args[i] = RenderType(arg)
		}
		return base + "<" + strings.Join(args, ", ") + ">"

	default:
		return "unknown"
	}
}

// renderTypeList renders a comma-joined list of types.
func renderTypeList(types []normalized.TypeExpr) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = RenderType(t)
	}
	return strings.Join(parts, ", ")
}

// DescribeFunction renders a function signature to its canonical textual
// form, e.g. "public entry fun transfer<T0: key>(Coin<T0>, u64): bool".
func DescribeFunction(fn normalized.FunctionInterface) string {
	var b strings.Builder

	switch fn.Visibility {
	case normalized.VisibilityPublic:
		b.WriteString("public ")
	case normalized.VisibilityFriend:
		b.WriteString("public(friend) ")
	}
	if fn.IsEntry {
		b.WriteString("entry ")
	}

	b.WriteString("fun ")
	b.WriteString(fn.Name)

	if len(fn.TypeParameters) > 0 {
		params := make([]string, len(fn.TypeParameters))
		for i, tp := range fn.TypeParameters {
			params[i] = describeTypeParam(i, tp.Abilities, false)
		}
		b.WriteString("<" + strings.Join(params, ", ") + ">")
	}

	b.WriteString("(" + renderTypeList(fn.Parameters) + ")")

	switch len(fn.Returns) {
	case 0:
	case 1:
		b.WriteString(": " + RenderType(fn.Returns[0]))
	default:
		b.WriteString(": (" + renderTypeList(fn.Returns) + ")")
	}

	return b.String()
}

// DescribeStruct renders a struct definition to its canonical textual form,
// e.g. "struct Vault has key, store { balance: u64 }".
func DescribeStruct(st normalized.StructInterface) string {
	var b strings.Builder

	b.WriteString("struct ")
	b.WriteString(st.Name)

	if len(st.TypeParameters) > 0 {
		params := make([]string, len(st.TypeParameters))
		for i, tp := range st.TypeParameters {
			params[i] = describeTypeParam(i, tp.Constraints, tp.IsPhantom)
		}
		b.WriteString("<" + strings.Join(params, ", ") + ">")
	}

	if len(st.Abilities) > 0 {
		b.WriteString(" has " + strings.Join(st.Abilities, ", "))
	}

	if len(st.Fields) == 0 {
		b.WriteString(" {}")
		return b.String()
	}

	fields := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		fields[i] = f.Name + ": " + RenderType(f.Type)
	}
	b.WriteString(" { " + strings.Join(fields, ", ") + " }")

	return b.String()
}

func describeTypeParam(index int, abilities []string, phantom bool) string {
	name := fmt.Sprintf("T%d", index)
	if phantom {
		name = "phantom " + name
	}
	if len(abilities) == 0 {
		return name
	}
	return name + ": " + strings.Join(abilities, " + ")
}

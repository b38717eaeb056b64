package normalized

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// MalformedTypeError reports a type expression whose variant tag is not in
// the known set. It is surfaced rather than swallowed: treating an unknown
// type as equal would corrupt the breaking-change determination.
type MalformedTypeError struct {
	Tag string
	Raw string
}

func (e *MalformedTypeError) Error() string {
	return fmt.Sprintf("malformed type expression: unknown variant %q in %s", e.Tag, e.Raw)
}

// primitiveNames maps the wire spelling of each primitive type to its Move
// source spelling.
var primitiveNames = map[string]string{
	"Bool":    "bool",
	"U8":      "u8",
	"U16":     "u16",
	"U32":     "u32",
	"U64":     "u64",
	"U128":    "u128",
	"U256":    "u256",
	"Address": "address",
	"Signer":  "signer",
}

// ParseModules decodes the result of sui_getNormalizedMoveModulesByPackage:
// a JSON object mapping module name to its normalized interface.
func ParseModules(data []byte) (map[string]ModuleInterface, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("normalized package payload is not a JSON object")
	}

	modules := make(map[string]ModuleInterface)
	var firstErr error

	root.ForEach(func(key, value gjson.Result) bool {
		mod, err := parseModule(key.String(), value)
		if err != nil {
			firstErr = fmt.Errorf("module %s: %w", key.String(), err)
			return false
		}
		modules[mod.Name] = mod
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}

	return modules, nil
}

func parseModule(name string, v gjson.Result) (ModuleInterface, error) {
	mod := ModuleInterface{
		Name:      name,
		Functions: make(map[string]FunctionInterface),
		Structs:   make(map[string]StructInterface),
	}

	var firstErr error

	v.Get("exposedFunctions").ForEach(func(key, fn gjson.Result) bool {
		parsed, err := parseFunction(key.String(), fn)
		if err != nil {
			firstErr = fmt.Errorf("function %s: %w", key.String(), err)
			return false
		}
		mod.Functions[parsed.Name] = parsed
		return true
	})
	if firstErr != nil {
		return ModuleInterface{}, firstErr
	}

	v.Get("structs").ForEach(func(key, st gjson.Result) bool {
		parsed, err := parseStruct(key.String(), st)
		if err != nil {
			firstErr = fmt.Errorf("struct %s: %w", key.String(), err)
			return false
		}
		mod.Structs[parsed.Name] = parsed
		return true
	})
	if firstErr != nil {
		return ModuleInterface{}, firstErr
	}

	return mod, nil
}

func parseFunction(name string, v gjson.Result) (FunctionInterface, error) {
	fn := FunctionInterface{Name: name, IsEntry: v.Get("isEntry").Bool()}

	switch v.Get("visibility").String() {
	case "Public":
		fn.Visibility = VisibilityPublic
	case "Friend":
		fn.Visibility = VisibilityFriend
	case "Private", "":
		fn.Visibility = VisibilityPrivate
	default:
		return FunctionInterface{}, fmt.Errorf("unknown visibility %q", v.Get("visibility").String())
	}

	for _, tp := range v.Get("typeParameters").Array() {
		fn.TypeParameters = append(fn.TypeParameters, TypeParamConstraints{
			Abilities: parseAbilityList(tp.Get("abilities")),
		})
	}

	for _, p := range v.Get("parameters").Array() {
		t, err := ParseType(p)
		if err != nil {
			return FunctionInterface{}, err
		}
		fn.Parameters = append(fn.Parameters, t)
	}

	for _, r := range v.Get("return").Array() {
		t, err := ParseType(r)
		if err != nil {
			return FunctionInterface{}, err
		}
		fn.Returns = append(fn.Returns, t)
	}

	return fn, nil
}

func parseStruct(name string, v gjson.Result) (StructInterface, error) {
	st := StructInterface{
		Name:      name,
		Abilities: parseAbilityList(v.Get("abilities.abilities")),
	}

	for _, tp := range v.Get("typeParameters").Array() {
		st.TypeParameters = append(st.TypeParameters, StructTypeParam{
			Constraints: parseAbilityList(tp.Get("constraints.abilities")),
			IsPhantom:   tp.Get("isPhantom").Bool(),
		})
	}

	for _, f := range v.Get("fields").Array() {
		ft := f.Get("type")
		if !ft.Exists() {
			ft = f.Get("type_")
		}
		t, err := ParseType(ft)
		if err != nil {
			return StructInterface{}, fmt.Errorf("field %s: %w", f.Get("name").String(), err)
		}
		st.Fields = append(st.Fields, FieldInterface{Name: f.Get("name").String(), Type: t})
	}

	return st, nil
}

// ParseType decodes a single normalized type expression. Primitives appear as
// bare strings; every other variant is a single-key object.
func ParseType(v gjson.Result) (TypeExpr, error) {
	if v.Type == gjson.String {
		name, ok := primitiveNames[v.String()]
		if !ok {
			return TypeExpr{}, &MalformedTypeError{Tag: v.String(), Raw: v.Raw}
		}
		return TypeExpr{Kind: KindPrimitive, Name: name}, nil
	}

	if !v.IsObject() {
		return TypeExpr{}, &MalformedTypeError{Tag: v.Type.String(), Raw: v.Raw}
	}

	if inner := v.Get("Vector"); inner.Exists() {
		elem, err := ParseType(inner)
		if err != nil {
			return TypeExpr{}, err
		}
		return TypeExpr{Kind: KindVector, Elem: &elem}, nil
	}

	if inner := v.Get("Reference"); inner.Exists() {
		elem, err := ParseType(inner)
		if err != nil {
			return TypeExpr{}, err
		}
		return TypeExpr{Kind: KindReference, Elem: &elem}, nil
	}

	if inner := v.Get("MutableReference"); inner.Exists() {
		elem, err := ParseType(inner)
		if err != nil {
			return TypeExpr{}, err
		}
		return TypeExpr{Kind: KindMutableReference, Elem: &elem}, nil
	}

	if tp := v.Get("TypeParameter"); tp.Exists() {
		return TypeExpr{Kind: KindTypeParameter, TypeParameter: int(tp.Int())}, nil
	}

	if st := v.Get("Struct"); st.Exists() {
		tag := StructTag{
			Address: st.Get("address").String(),
			Module:  st.Get("module").String(),
			Name:    st.Get("name").String(),
		}
		for _, arg := range st.Get("typeArguments").Array() {
			t, err := ParseType(arg)
			if err != nil {
				return TypeExpr{}, err
			}
			tag.TypeArguments = append(tag.TypeArguments, t)
		}
		return TypeExpr{Kind: KindStructRef, Struct: &tag}, nil
	}

	// Single-key object with a tag outside the known set.
	tag := "?"
	v.ForEach(func(key, _ gjson.Result) bool {
		tag = key.String()
		return false
	})
	return TypeExpr{}, &MalformedTypeError{Tag: tag, Raw: v.Raw}
}

// parseAbilityList lowercases and sorts an ability array so that equal sets
// compare equal regardless of wire order.
func parseAbilityList(v gjson.Result) []string {
	arr := v.Array()
	if len(arr) == 0 {
		return nil
	}
	abilities := make([]string, 0, len(arr))
	for _, a := range arr {
		abilities = append(abilities, strings.ToLower(a.String()))
	}
	sort.Strings(abilities)
	return abilities
}

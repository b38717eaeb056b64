package normalized

// Equal reports deep structural equality of two type expressions: same
// variant tag and pairwise-equal sub-fields, including type argument order.
func (t TypeExpr) Equal(o TypeExpr) bool {
	if t.Kind != o.Kind {
		return false
	}

	switch t.Kind {
	case KindPrimitive:
		return t.Name == o.Name

	case KindVector, KindReference, KindMutableReference:
		if t.Elem == nil || o.Elem == nil {
			return t.Elem == o.Elem
		}
		return t.Elem.Equal(*o.Elem)

	case KindTypeParameter:
		return t.TypeParameter == o.TypeParameter

	case KindStructRef:
		if t.Struct == nil || o.Struct == nil {
			return t.Struct == o.Struct
		}
		a, b := t.Struct, o.Struct
		if a.Address != b.Address || a.Module != b.Module || a.Name != b.Name {
			return false
		}
		return TypeListEqual(a.TypeArguments, b.TypeArguments)

	default:
		return false
	}
}

// TypeListEqual reports order-sensitive equality of two type lists.
func TypeListEqual(a, b []TypeExpr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

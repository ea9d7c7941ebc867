package types

// AssignableTo reports whether a value of type from may be assigned to a
// variable/parameter of type to.
//
//   - Auto on the right accepts anything; Auto on the left is resolved by
//     the caller (variable-declaration analysis), not here.
//   - Void never assigns.
//   - Int -> Float widens.
//   - Array(x) -> Array(y) iff x -> y; same for Unborn.
//   - Null assigns to any reference type.
//   - Otherwise structural equality, with ClassType using the structural
//     shape check (CanBeAssignedWith) instead of nominal Equal.
func AssignableTo(from, to Type) bool {
	if from.Kind() == KindAuto {
		return true
	}
	if to.Kind() == KindVoid || from.Kind() == KindVoid {
		return false
	}
	if from.Kind() == KindInt && to.Kind() == KindFloat {
		return true
	}
	if fa, ok := from.(*ArrayType); ok {
		if ta, ok := to.(*ArrayType); ok {
			return AssignableTo(fa.Elem, ta.Elem)
		}
		return false
	}
	if fu, ok := from.(*UnbornType); ok {
		if tu, ok := to.(*UnbornType); ok {
			return AssignableTo(fu.Inner, tu.Inner)
		}
		return false
	}
	if from.Kind() == KindNull {
		return IsReference(to)
	}
	if tc, ok := to.(*ClassType); ok {
		ok, _ := CanBeAssignedWith(tc, from)
		return ok
	}
	return from.Equal(to)
}

// CommonSupertype returns the common supertype of a and b: b if a assigns to b, a if b assigns to a, else
// (nil, false). It is commutative by construction: CommonSupertype(a, b)
// and CommonSupertype(b, a) are structurally equal whenever both are
// defined.
func CommonSupertype(a, b Type) (Type, bool) {
	if AssignableTo(a, b) {
		return b, true
	}
	if AssignableTo(b, a) {
		return a, true
	}
	return nil, false
}

// CanBeAssignedWith implements class shape compatibility: class target accepts a value of
// type source iff source is a class type and, for every field f declared
// in target (other than "<constructor>"), source has a field f with an
// equal type (by structural equality, i.e. Type.Equal).
//
// Returns ok=true/false and, when false, the list of field names that
// caused the mismatch (missing or type-mismatched), for the analyzer to
// concatenate into a single diagnostic.
func CanBeAssignedWith(target *ClassType, source Type) (ok bool, problems []string) {
	sourceClass, isClass := source.(*ClassType)
	if !isClass {
		return false, []string{"value is not a class"}
	}
	for name, targetType := range target.Fields {
		if name == "<constructor>" {
			continue
		}
		sourceType, has := sourceClass.FieldType(name)
		switch {
		case !has:
			problems = append(problems, "missing field '"+name+"'")
		case !sourceType.Equal(targetType):
			problems = append(problems, "field '"+name+"' has incompatible type")
		}
	}
	return len(problems) == 0, problems
}

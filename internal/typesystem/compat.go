package typesystem

// Compatible reports whether a value of type valueType satisfies
// required. This is a subtyping/containment relation, not equality:
// reflexive and transitive, but intentionally not symmetric.
//
// Records use width/depth subtyping: the value type may carry more
// members than required, as long as every required member is present
// with a compatible type. There is no implicit numeric widening;
// mixed primitives are never compatible.
func Compatible(valueType, required Type) bool {
	valueType = concrete(valueType)
	required = concrete(required)
	if valueType == nil || required == nil {
		return false
	}

	if _, ok := required.(Any); ok {
		return true
	}

	switch req := required.(type) {
	case Primitive:
		v, ok := valueType.(Primitive)
		return ok && v.Name == req.Name

	case Record:
		v, ok := valueType.(Record)
		if !ok {
			return false
		}
		for name, rm := range req.Members {
			vm, ok := v.Members[name]
			if !ok || !memberCompatible(vm, rm) {
				return false
			}
		}
		return true

	case Tag:
		v, ok := valueType.(Tag)
		if !ok {
			return false
		}
		for _, lit := range v.Literals {
			if !req.Contains(lit) {
				return false
			}
		}
		return true

	case Func:
		v, ok := valueType.(Func)
		if !ok || len(v.Params) != len(req.Params) {
			return false
		}
		// Parameters are contravariant: the provided function must
		// accept at least what is required. Returns are covariant.
		for i, rp := range req.Params {
			if !Compatible(rp, v.Params[i]) {
				return false
			}
		}
		return Compatible(v.Return, req.Return)
	}

	return false
}

// memberCompatible checks one record member against a required member,
// including literal-value constraints. A constrained value member
// satisfies an unconstrained required member of the same base type;
// a constrained required member demands the exact same literal.
func memberCompatible(vm, rm Member) bool {
	if !Compatible(vm.Type, rm.Type) {
		return false
	}
	if rm.Constrained() {
		return vm.Constrained() && vm.Literal == rm.Literal
	}
	return true
}

// concrete unwraps aliases and normalizes lazy composition nodes so the
// oracle only ever reasons about concrete shapes. A composition that
// fails to normalize is compatible with nothing.
func concrete(t Type) Type {
	t = Unwrap(t)
	if c, ok := t.(Composed); ok {
		n, err := Normalize(c)
		if err != nil {
			return nil
		}
		return Unwrap(n)
	}
	return t
}

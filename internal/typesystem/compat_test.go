package typesystem

import "testing"

func TestCompatibleWidthSubtyping(t *testing.T) {
	required := MustRecord(field("m", Int32))
	valueType := MustRecord(field("m", Int32), field("n", String))

	if !Compatible(valueType, required) {
		t.Errorf("value with extra members must satisfy the narrower requirement")
	}
	if Compatible(required, valueType) {
		t.Errorf("compatibility is not symmetric: required lacks member n")
	}
}

func TestCompatibleReflexive(t *testing.T) {
	types := []Type{
		Int32,
		String,
		Unit,
		Any{},
		MustTag("One", "Two"),
		MustRecord(field("a", Int32), field("b", MustRecord(field("c", Bool)))),
		Func{Params: []Type{Int32, String}, Return: Bool},
		Named{Name: "A", Underlying: MustRecord(field("a", Int32))},
	}
	for _, typ := range types {
		if !Compatible(typ, typ) {
			t.Errorf("Compatible(%s, %s) = false, want true", typ.String(), typ.String())
		}
	}
}

func TestCompatibleTable(t *testing.T) {
	nested := MustRecord(field("inner", MustRecord(field("x", Int32))))
	nestedWider := MustRecord(field("inner", MustRecord(field("x", Int32), field("y", Int32))), field("extra", Bool))

	tests := []struct {
		name     string
		value    Type
		required Type
		want     bool
	}{
		{"any accepts everything", Int32, Any{}, true},
		{"any accepts records", MustRecord(field("a", Int32)), Any{}, true},
		{"same primitive", Int64, Int64, true},
		{"no numeric widening", Int32, Int64, false},
		{"no float-int mixing", Float32, Int32, false},
		{"nested depth subtyping", nestedWider, nested, true},
		{"nested depth subtyping reversed", nested, nestedWider, false},
		{"tag subset", MustTag("One"), MustTag("One", "Two"), true},
		{"tag superset", MustTag("One", "Two", "Three"), MustTag("One", "Two"), false},
		{"tag vs record", MustTag("One"), MustRecord(field("a", Int32)), false},
		{"alias unwraps on both sides", Named{Name: "N", Underlying: Int32}, Int32, true},
		{"record vs primitive", MustRecord(field("a", Int32)), Int32, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.value, tt.required); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.value.String(), tt.required.String(), got, tt.want)
			}
		})
	}
}

func TestCompatibleFunctions(t *testing.T) {
	wideParam := MustRecord(field("a", Int32))
	narrowParam := MustRecord(field("a", Int32), field("b", Int32))
	narrowRet := MustRecord(field("r", Int32), field("s", Int32))
	wideRet := MustRecord(field("r", Int32))

	// Provided accepts a wider argument and returns a narrower result:
	// satisfies the requirement.
	provided := Func{Params: []Type{wideParam}, Return: narrowRet}
	required := Func{Params: []Type{narrowParam}, Return: wideRet}
	if !Compatible(provided, required) {
		t.Errorf("contravariant params / covariant return should be compatible")
	}
	if Compatible(required, provided) {
		t.Errorf("variance must not hold in reverse")
	}

	arity := Func{Params: []Type{wideParam, wideParam}, Return: narrowRet}
	if Compatible(arity, required) {
		t.Errorf("parameter lists of different lengths are incompatible")
	}
}

func TestCompatibleLiteralConstraints(t *testing.T) {
	constrained := MustRecord(Field{Name: "kind", Member: Member{Type: String, Literal: "circle"}})
	unconstrained := MustRecord(field("kind", String))
	other := MustRecord(Field{Name: "kind", Member: Member{Type: String, Literal: "square"}})

	if !Compatible(constrained, unconstrained) {
		t.Errorf("a literal-constrained member satisfies an unconstrained requirement")
	}
	if Compatible(unconstrained, constrained) {
		t.Errorf("an unconstrained member cannot satisfy a literal requirement")
	}
	if Compatible(other, constrained) {
		t.Errorf("mismatched literals are incompatible")
	}
}

func TestCompatibleNormalizesComposed(t *testing.T) {
	composed := NewComposed(typeA(), OpAnd, typeB())
	required := MustRecord(field("a", Int32), field("b", Int32))
	if !Compatible(composed, required) {
		t.Errorf("composed value type should normalize before the check")
	}

	bad := NewComposed(typeA(), OpAnd, MustTag("A"))
	if Compatible(bad, Any{}) {
		t.Errorf("a composition that fails to normalize satisfies nothing")
	}
}

package typesystem

import "testing"

func TestKindStrings(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindPrimitive, "primitive"},
		{KindRecord, "record"},
		{KindTag, "tag"},
		{KindFunc, "function"},
		{KindAny, "any"},
		{KindComposed, "composed"},
		{Kind(99), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind.String() = %s, want %s", got, tt.want)
		}
	}

	if OpAnd.String() != "&" || OpOr.String() != "|" {
		t.Errorf("operator strings are wrong: %s %s", OpAnd, OpOr)
	}
}

func TestTypeKinds(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want Kind
	}{
		{"primitive", Int32, KindPrimitive},
		{"record", MustRecord(field("a", Int32)), KindRecord},
		{"tag", MustTag("A"), KindTag},
		{"func", Func{Return: Unit}, KindFunc},
		{"any", Any{}, KindAny},
		{"composed", NewComposed(Int32, OpAnd, Int32), KindComposed},
		{"named follows underlying", Named{Name: "N", Underlying: MustTag("A")}, KindTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Kind(); got != tt.want {
				t.Errorf("Kind() = %s, want %s", got, tt.want)
			}
		})
	}
}

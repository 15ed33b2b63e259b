package typesystem

import (
	"errors"
	"testing"
)

// typeA and typeB mirror the documented composition example:
// intersecting yields the union of their fields, unioning keeps only
// the shared compatible member c.
func typeA() Record {
	return MustRecord(field("a", Int32), field("c", Int32))
}

func typeB() Record {
	return MustRecord(field("b", Int32), field("c", Int32))
}

func mustNormalize(t *testing.T, typ Type) Type {
	t.Helper()
	res, err := Normalize(typ)
	if err != nil {
		t.Fatalf("Normalize(%s) failed: %v", typ.String(), err)
	}
	return res
}

func TestIntersectionMergesMembers(t *testing.T) {
	res := mustNormalize(t, NewComposed(typeA(), OpAnd, typeB()))
	want := MustRecord(field("a", Int32), field("b", Int32), field("c", Int32))
	if !Equal(res, want) {
		t.Errorf("A & B = %s, want %s", res.String(), want.String())
	}
}

func TestUnionKeepsSharedCompatibleMembers(t *testing.T) {
	res := mustNormalize(t, NewComposed(typeA(), OpOr, typeB()))
	want := MustRecord(field("c", Int32))
	if !Equal(res, want) {
		t.Errorf("A | B = %s, want %s", res.String(), want.String())
	}
}

func TestUnionDropsIncompatibleMembers(t *testing.T) {
	a := MustRecord(field("c", Int32), field("d", String))
	b := MustRecord(field("c", Int32), field("d", Bool))
	res := mustNormalize(t, NewComposed(a, OpOr, b))
	want := MustRecord(field("c", Int32))
	if !Equal(res, want) {
		t.Errorf("union = %s, want %s", res.String(), want.String())
	}
}

func TestIntersectionIncompatibleMemberFails(t *testing.T) {
	a := MustRecord(field("c", Int32))
	b := MustRecord(field("c", String))
	_, err := Normalize(NewComposed(a, OpAnd, b))
	var inter *IncompatibleIntersectionError
	if !errors.As(err, &inter) {
		t.Fatalf("expected IncompatibleIntersectionError, got %v", err)
	}
	if inter.Member != "c" {
		t.Errorf("member = %q, want c", inter.Member)
	}
}

func TestIntersectionNarrowerMemberWins(t *testing.T) {
	constrained := Member{Type: Int32, Literal: int64(5)}
	a := MustRecord(Field{Name: "v", Member: constrained})
	b := MustRecord(field("v", Int32))

	for _, pair := range [][2]Type{{a, b}, {b, a}} {
		res := mustNormalize(t, NewComposed(pair[0], OpAnd, pair[1]))
		rec, ok := Unwrap(res).(Record)
		if !ok {
			t.Fatalf("result is %T, want Record", res)
		}
		got := rec.Members["v"]
		if !got.Constrained() || got.Literal != int64(5) {
			t.Errorf("narrowing must win symmetrically, got %+v", got)
		}
	}
}

func TestTagUnion(t *testing.T) {
	res := mustNormalize(t, NewComposed(MustTag("One", "Two", "Three"), OpOr, MustTag("Four", "Five", "Six")))
	want := MustTag("Five", "Four", "One", "Six", "Three", "Two")
	if !Equal(res, want) {
		t.Errorf("tag union = %s, want %s", res.String(), want.String())
	}
}

func TestTagIntersectionRejected(t *testing.T) {
	_, err := Normalize(NewComposed(MustTag("A"), OpAnd, MustTag("B")))
	var unsupported *UnsupportedIntersectionError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedIntersectionError, got %v", err)
	}

	// Identical tag operands do not rescue an intersection.
	_, err = Normalize(NewComposed(MustTag("A"), OpAnd, MustTag("A")))
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedIntersectionError for identical tags, got %v", err)
	}
}

func TestMixedKindsRejected(t *testing.T) {
	fn := Func{Params: []Type{Int32}, Return: Bool}
	tests := []struct {
		name  string
		left  Type
		right Type
		op    Op
	}{
		{"record and tag", typeA(), MustTag("A"), OpAnd},
		{"tag and record", MustTag("A"), typeA(), OpAnd},
		{"record or primitive", typeA(), Int32, OpOr},
		{"function and record", fn, typeA(), OpAnd},
		{"primitive or tag", Int32, MustTag("A"), OpOr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(NewComposed(tt.left, tt.op, tt.right))
			var kindErr *IncompatibleKindError
			if !errors.As(err, &kindErr) {
				t.Fatalf("expected IncompatibleKindError, got %v", err)
			}
			if kindErr.Op != tt.op {
				t.Errorf("op = %s, want %s", kindErr.Op, tt.op)
			}
		})
	}
}

func TestAnyAbsorption(t *testing.T) {
	a := typeA()
	res := mustNormalize(t, NewComposed(a, OpAnd, Any{}))
	if !Equal(res, a) {
		t.Errorf("A & any = %s, want %s", res.String(), a.String())
	}
	res = mustNormalize(t, NewComposed(a, OpOr, Any{}))
	if !Equal(res, Any{}) {
		t.Errorf("A | any = %s, want any", res.String())
	}
	res = mustNormalize(t, NewComposed(Any{}, OpAnd, a))
	if !Equal(res, a) {
		t.Errorf("any & A = %s, want %s", res.String(), a.String())
	}
}

func TestOrCommutative(t *testing.T) {
	ab := mustNormalize(t, NewComposed(typeA(), OpOr, typeB()))
	ba := mustNormalize(t, NewComposed(typeB(), OpOr, typeA()))
	if !Equal(ab, ba) {
		t.Errorf("A | B = %s but B | A = %s", ab.String(), ba.String())
	}
}

func TestAndCommutativeWhenBothOrdersSucceed(t *testing.T) {
	ab := mustNormalize(t, NewComposed(typeA(), OpAnd, typeB()))
	ba := mustNormalize(t, NewComposed(typeB(), OpAnd, typeA()))
	if !Equal(ab, ba) {
		t.Errorf("A & B = %s but B & A = %s", ab.String(), ba.String())
	}
}

func TestOrNeverAddsMembers(t *testing.T) {
	res := mustNormalize(t, NewComposed(typeA(), OpOr, typeB()))
	rec := Unwrap(res).(Record)
	for name := range rec.Members {
		if _, ok := typeA().Members[name]; !ok {
			t.Errorf("member %q not in A", name)
		}
		if _, ok := typeB().Members[name]; !ok {
			t.Errorf("member %q not in B", name)
		}
	}
}

func TestAndNeverRemovesMembers(t *testing.T) {
	res := mustNormalize(t, NewComposed(typeA(), OpAnd, typeB()))
	rec := Unwrap(res).(Record)
	for name := range typeA().Members {
		if _, ok := rec.Members[name]; !ok {
			t.Errorf("member %q of A missing from intersection", name)
		}
	}
	for name := range typeB().Members {
		if _, ok := rec.Members[name]; !ok {
			t.Errorf("member %q of B missing from intersection", name)
		}
	}
}

func TestNamedCombination(t *testing.T) {
	underlying := typeA()
	aliasA := Named{Name: "Point", Underlying: underlying}
	aliasB := Named{Name: "Coord", Underlying: underlying}

	// Same alias on both sides: the name survives.
	res := mustNormalize(t, NewComposed(aliasA, OpAnd, aliasA))
	named, ok := res.(Named)
	if !ok || named.Name != "Point" {
		t.Errorf("Point & Point = %s, want Point", res.String())
	}

	// Distinct aliases: the result is a new shape with no single name.
	res = mustNormalize(t, NewComposed(aliasA, OpAnd, aliasB))
	if _, ok := res.(Named); ok {
		t.Errorf("Point & Coord should drop the alias, got %s", res.String())
	}
	if !Equal(res, underlying) {
		t.Errorf("Point & Coord = %s, want %s", res.String(), underlying.String())
	}
}

func TestNestedComposedNormalizes(t *testing.T) {
	inner := NewComposed(typeA(), OpAnd, typeB())
	outer := NewComposed(inner, OpOr, MustRecord(field("a", Int32), field("z", String)))
	res := mustNormalize(t, outer)
	want := MustRecord(field("a", Int32))
	if !Equal(res, want) {
		t.Errorf("nested normalize = %s, want %s", res.String(), want.String())
	}
}

func TestNormalizeIsReferentiallyTransparent(t *testing.T) {
	c := NewComposed(typeA(), OpAnd, typeB())
	first := mustNormalize(t, c)
	second := mustNormalize(t, c)
	if !Equal(first, second) {
		t.Errorf("normalizing the same node twice differs: %s vs %s", first.String(), second.String())
	}

	memo := NewMemo()
	shared1, err := NormalizeWith(c, memo)
	if err != nil {
		t.Fatalf("NormalizeWith: %v", err)
	}
	shared2, err := NormalizeWith(c, memo)
	if err != nil {
		t.Fatalf("NormalizeWith: %v", err)
	}
	if !Equal(shared1, shared2) || !Equal(shared1, first) {
		t.Errorf("shared memo changed the result")
	}
}

func TestNormalizeRecordMemberComposed(t *testing.T) {
	inner := NewComposed(typeA(), OpAnd, typeB())
	outer := MustRecord(Field{Name: "p", Member: Member{Type: inner}})
	res := mustNormalize(t, outer)
	rec := Unwrap(res).(Record)
	want := MustRecord(field("a", Int32), field("b", Int32), field("c", Int32))
	if !Equal(rec.Members["p"].Type, want) {
		t.Errorf("member type = %s, want %s", rec.Members["p"].Type.String(), want.String())
	}
}

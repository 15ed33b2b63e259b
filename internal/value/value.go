package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sablelang/sable/internal/typesystem"
)

// Value is a runtime value at the type-core boundary: just enough
// structure for pattern matching and destructuring. Arm bodies and
// guards are opaque to this package; they belong to the evaluator.
type Value interface {
	Inspect() string
	TypeOf() typesystem.Type
}

// Int is an integer value of a specific primitive width.
type Int struct {
	Type typesystem.Primitive
	Val  int64
}

func (v Int) Inspect() string { return strconv.FormatInt(v.Val, 10) }
func (v Int) TypeOf() typesystem.Type { return v.Type }

// Float is a floating point value of a specific primitive width.
type Float struct {
	Type typesystem.Primitive
	Val  float64
}

func (v Float) Inspect() string { return strconv.FormatFloat(v.Val, 'g', -1, 64) }
func (v Float) TypeOf() typesystem.Type { return v.Type }

// Str is a string value.
type Str struct {
	Val string
}

func (v Str) Inspect() string { return strconv.Quote(v.Val) }
func (v Str) TypeOf() typesystem.Type { return typesystem.String }

// Bool is a boolean value.
type Bool struct {
	Val bool
}

func (v Bool) Inspect() string { return strconv.FormatBool(v.Val) }
func (v Bool) TypeOf() typesystem.Type { return typesystem.Bool }

// Unit is the unit value.
type Unit struct{}

func (v Unit) Inspect() string { return "unit" }
func (v Unit) TypeOf() typesystem.Type { return typesystem.Unit }

// TagValue is a single tag literal. Its type is the singleton tag set,
// so tag-subset compatibility covers "literal is a member of S".
type TagValue struct {
	Lit string
}

func (v TagValue) Inspect() string { return strconv.Quote(v.Lit) }
func (v TagValue) TypeOf() typesystem.Type { return typesystem.MustTag(v.Lit) }

// RecordValue is a record with named members.
type RecordValue struct {
	Fields map[string]Value
}

func NewRecord(fields map[string]Value) RecordValue {
	return RecordValue{Fields: fields}
}

func (v RecordValue) Inspect() string {
	names := make([]string, 0, len(v.Fields))
	for name := range v.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, v.Fields[name].Inspect())
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

// TypeOf reconstructs the structural type of the record from its
// members. Runtime shapes carry no literal constraints.
func (v RecordValue) TypeOf() typesystem.Type {
	members := make(map[string]typesystem.Member, len(v.Fields))
	for name, fv := range v.Fields {
		members[name] = typesystem.Member{Type: fv.TypeOf()}
	}
	return typesystem.Record{Members: members}
}

// Lookup walks a member path through nested records.
func Lookup(v Value, path []string) (Value, bool) {
	cur := v
	for _, seg := range path {
		rec, ok := cur.(RecordValue)
		if !ok {
			return nil, false
		}
		cur, ok = rec.Fields[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// LiteralEquals compares a value against a pattern literal
// (string, bool, int64 or float64). Exact equality, no coercion.
func LiteralEquals(v Value, lit any) bool {
	switch val := v.(type) {
	case Int:
		n, ok := lit.(int64)
		return ok && val.Val == n
	case Float:
		f, ok := lit.(float64)
		return ok && val.Val == f
	case Str:
		s, ok := lit.(string)
		return ok && val.Val == s
	case Bool:
		b, ok := lit.(bool)
		return ok && val.Val == b
	case TagValue:
		s, ok := lit.(string)
		return ok && val.Lit == s
	}
	return false
}

package typesystem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Type is the interface for all types in our system.
// Type values are immutable after construction; the algebra only ever
// produces new values from its inputs.
type Type interface {
	String() string
	Kind() Kind
}

// Primitive represents a built-in scalar type (int32, string, bool, ...).
type Primitive struct {
	Name string
}

func (t Primitive) Kind() Kind { return KindPrimitive }
func (t Primitive) String() string { return t.Name }

// The fixed set of primitive types.
var (
	Int8    = Primitive{Name: "int8"}
	Int16   = Primitive{Name: "int16"}
	Int32   = Primitive{Name: "int32"}
	Int64   = Primitive{Name: "int64"}
	Uint8   = Primitive{Name: "uint8"}
	Uint16  = Primitive{Name: "uint16"}
	Uint32  = Primitive{Name: "uint32"}
	Uint64  = Primitive{Name: "uint64"}
	Float8  = Primitive{Name: "float8"}
	Float16 = Primitive{Name: "float16"}
	Float32 = Primitive{Name: "float32"}
	Float64 = Primitive{Name: "float64"}
	String  = Primitive{Name: "string"}
	Bool    = Primitive{Name: "bool"}
	Unit    = Primitive{Name: "unit"}
)

// Member is one record member: a type plus an optional literal-value
// constraint. Literal is nil when the member is unconstrained; otherwise
// it holds one of string, bool, int64, float64.
type Member struct {
	Type    Type
	Literal any
}

// Constrained reports whether the member carries a literal-value constraint.
func (m Member) Constrained() bool { return m.Literal != nil }

// Field pairs a member name with its member, preserving declaration
// order long enough for NewRecord to detect duplicates.
type Field struct {
	Name   string
	Member Member
}

// Record represents a structural record type (e.g. { x: int32, y: bool }).
// Member names are unique; ordering is canonical (lexicographic) and
// independent of declaration order.
type Record struct {
	Members map[string]Member
}

// NewRecord builds a Record from declaration-ordered fields.
// Duplicate member names are a construction error, not an algebra error.
func NewRecord(fields ...Field) (Record, error) {
	members := make(map[string]Member, len(fields))
	for _, f := range fields {
		if _, ok := members[f.Name]; ok {
			return Record{}, NewDuplicateMemberError(f.Name)
		}
		members[f.Name] = f.Member
	}
	return Record{Members: members}, nil
}

// MustRecord is NewRecord for statically known member lists.
func MustRecord(fields ...Field) Record {
	r, err := NewRecord(fields...)
	if err != nil {
		panic(err)
	}
	return r
}

func (t Record) Kind() Kind { return KindRecord }

// MemberNames returns the member names in canonical lexicographic order.
func (t Record) MemberNames() []string {
	names := make([]string, 0, len(t.Members))
	for name := range t.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t Record) String() string {
	fields := []string{}
	for _, name := range t.MemberNames() {
		m := t.Members[name]
		s := fmt.Sprintf("%s: %s", name, m.Type.String())
		if m.Constrained() {
			s += " = " + formatLiteral(m.Literal)
		}
		fields = append(fields, s)
	}
	return fmt.Sprintf("{ %s }", strings.Join(fields, ", "))
}

// Tag represents a finite set of distinct string literals
// (string-backed enums). The set is never empty; literals are kept
// sorted and deduplicated.
type Tag struct {
	Literals []string
}

// NewTag builds a Tag from one or more literals.
// An empty literal set is a construction error.
func NewTag(literals ...string) (Tag, error) {
	if len(literals) == 0 {
		return Tag{}, NewEmptyTagSetError()
	}
	seen := make(map[string]bool, len(literals))
	unique := []string{}
	for _, lit := range literals {
		if !seen[lit] {
			seen[lit] = true
			unique = append(unique, lit)
		}
	}
	sort.Strings(unique)
	return Tag{Literals: unique}, nil
}

// MustTag is NewTag for statically known literal sets.
func MustTag(literals ...string) Tag {
	t, err := NewTag(literals...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tag) Kind() Kind { return KindTag }

func (t Tag) String() string {
	parts := make([]string, len(t.Literals))
	for i, lit := range t.Literals {
		parts[i] = strconv.Quote(lit)
	}
	return strings.Join(parts, " | ")
}

// Contains reports whether lit is a member of the tag set.
func (t Tag) Contains(lit string) bool {
	i := sort.SearchStrings(t.Literals, lit)
	return i < len(t.Literals) && t.Literals[i] == lit
}

// Named is an alias for another type. Structural comparison always
// operates on the unwrapped form; display prefers the name.
// Underlying is a shared back-reference to the canonical declaration,
// never mutated through this path.
type Named struct {
	Name       string
	Underlying Type
}

func (t Named) Kind() Kind { return Unwrap(t).Kind() }
func (t Named) String() string { return t.Name }

// Func represents a function type (e.g. (int32, int32) -> bool).
type Func struct {
	Params []Type
	Return Type
}

func (t Func) Kind() Kind { return KindFunc }

func (t Func) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return.String())
}

// Any is the universal supertype: compatible with everything,
// absorbing under composition.
type Any struct{}

func (t Any) Kind() Kind { return KindAny }
func (t Any) String() string { return "any" }

// Composed is a lazy, unevaluated composition node. It is kept distinct
// from its normalized form so diagnostics can reference the original
// expression. ID is a stable identity assigned at construction, used as
// the memoization key during normalization.
type Composed struct {
	ID    string
	Left  Type
	Op    Op
	Right Type
}

// NewComposed builds a composition node with a fresh identity.
func NewComposed(left Type, op Op, right Type) Composed {
	return Composed{
		ID:    uuid.NewString(),
		Left:  left,
		Op:    op,
		Right: right,
	}
}

func (t Composed) Kind() Kind { return KindComposed }

func (t Composed) String() string {
	return fmt.Sprintf("(%s %s %s)", t.Left.String(), t.Op.String(), t.Right.String())
}

// Unwrap resolves Named aliases to the innermost underlying type.
func Unwrap(t Type) Type {
	for {
		named, ok := t.(Named)
		if !ok {
			return t
		}
		t = named.Underlying
	}
}

// Equal reports structural equality. Named aliases compare by their
// unwrapped form: the language is structural, not nominal.
func Equal(a, b Type) bool {
	a = Unwrap(a)
	b = Unwrap(b)

	switch at := a.(type) {
	case Primitive:
		bt, ok := b.(Primitive)
		return ok && at.Name == bt.Name

	case Record:
		bt, ok := b.(Record)
		if !ok || len(at.Members) != len(bt.Members) {
			return false
		}
		for name, am := range at.Members {
			bm, ok := bt.Members[name]
			if !ok || !memberEqual(am, bm) {
				return false
			}
		}
		return true

	case Tag:
		bt, ok := b.(Tag)
		if !ok || len(at.Literals) != len(bt.Literals) {
			return false
		}
		for i, lit := range at.Literals {
			if bt.Literals[i] != lit {
				return false
			}
		}
		return true

	case Func:
		bt, ok := b.(Func)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i, p := range at.Params {
			if !Equal(p, bt.Params[i]) {
				return false
			}
		}
		return Equal(at.Return, bt.Return)

	case Any:
		_, ok := b.(Any)
		return ok

	case Composed:
		bt, ok := b.(Composed)
		return ok && at.Op == bt.Op && Equal(at.Left, bt.Left) && Equal(at.Right, bt.Right)
	}
	return false
}

func memberEqual(a, b Member) bool {
	if !Equal(a.Type, b.Type) {
		return false
	}
	return a.Literal == b.Literal
}

func formatLiteral(lit any) string {
	if s, ok := lit.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", lit)
}

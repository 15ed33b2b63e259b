package typesystem

import "fmt"

// DuplicateMemberError indicates a record was declared with the same
// member name twice.
type DuplicateMemberError struct {
	Name string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("duplicate record member: %s", e.Name)
}

func NewDuplicateMemberError(name string) *DuplicateMemberError {
	return &DuplicateMemberError{Name: name}
}

// EmptyTagSetError indicates a tag type was declared with no literals.
type EmptyTagSetError struct{}

func (e *EmptyTagSetError) Error() string {
	return "tag set must contain at least one literal"
}

func NewEmptyTagSetError() *EmptyTagSetError {
	return &EmptyTagSetError{}
}

// IncompatibleIntersectionError indicates that both sides of an
// intersection declare the same member with mutually incompatible types.
type IncompatibleIntersectionError struct {
	Member string
	Left   Type
	Right  Type
}

func (e *IncompatibleIntersectionError) Error() string {
	return fmt.Sprintf("member %s has incompatible types in intersection: %s vs %s",
		e.Member, e.Left.String(), e.Right.String())
}

func NewIncompatibleIntersectionError(member string, left, right Type) *IncompatibleIntersectionError {
	return &IncompatibleIntersectionError{Member: member, Left: left, Right: right}
}

// IncompatibleKindError indicates a composition over operand kinds that
// have no algebra rule (e.g. record & function).
type IncompatibleKindError struct {
	KindA Kind
	KindB Kind
	Op    Op
}

func (e *IncompatibleKindError) Error() string {
	return fmt.Sprintf("cannot compose %s %s %s", e.KindA, e.Op, e.KindB)
}

func NewIncompatibleKindError(kindA, kindB Kind, op Op) *IncompatibleKindError {
	return &IncompatibleKindError{KindA: kindA, KindB: kindB, Op: op}
}

// UnsupportedIntersectionError indicates an intersection of two tag
// types. Tags are discrete alternatives, not structural aggregates,
// so they do not intersect.
type UnsupportedIntersectionError struct {
	Left  Tag
	Right Tag
}

func (e *UnsupportedIntersectionError) Error() string {
	return fmt.Sprintf("tag types do not intersect: %s & %s", e.Left.String(), e.Right.String())
}

func NewUnsupportedIntersectionError(left, right Tag) *UnsupportedIntersectionError {
	return &UnsupportedIntersectionError{Left: left, Right: right}
}

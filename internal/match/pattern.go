package match

import (
	"fmt"
	"strings"

	"github.com/sablelang/sable/internal/typesystem"
	"github.com/sablelang/sable/internal/value"
)

// Predicate evaluates an opaque boolean expression against the subject.
// Predicates are supplied by the (external) evaluator; this package
// orders and invokes them but never inspects them.
type Predicate func(subject value.Value) (bool, error)

// Pattern is the interface for all match-arm patterns.
type Pattern interface {
	String() string
}

// TypePattern matches when the subject's runtime type is structurally
// compatible with Type.
type TypePattern struct {
	Type typesystem.Type
}

func (p TypePattern) String() string { return p.Type.String() }

// ShapePattern matches any subject that has at least the named members
// with compatible types, independent of declared type name.
type ShapePattern struct {
	Shape typesystem.Record
}

func (p ShapePattern) String() string { return p.Shape.String() }

// ValuePattern matches when the subject's member at Path equals Literal
// exactly. An empty Path tests the subject itself.
type ValuePattern struct {
	Path    []string
	Literal any
}

func (p ValuePattern) String() string {
	path := strings.Join(p.Path, ".")
	if path == "" {
		path = "_"
	}
	return fmt.Sprintf("%s == %v", path, p.Literal)
}

// ComparisonPattern is an opaque boolean predicate. It is evaluated in
// place at its source position and is invisible to static analysis.
type ComparisonPattern struct {
	Pred Predicate
}

func (p ComparisonPattern) String() string { return "<predicate>" }

// Arm is one match arm. Bind names the whole-subject binding ("" for
// none). Guard is an opaque predicate checked after the pattern matches
// (nil for none); a failing guard falls through to the next arm. Body
// is an opaque token this package orders and selects among, never
// executes.
type Arm struct {
	Pattern Pattern
	Bind    string
	Guard   Predicate
	Body    any
}

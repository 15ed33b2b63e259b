package match

import (
	"github.com/sablelang/sable/internal/typesystem"
	"github.com/sablelang/sable/internal/value"
)

// Selection is a resolved match: the selected arm index and the
// destructured bindings for its body.
type Selection struct {
	Arm      int
	Bindings map[string]value.Value
}

// Select finds the first arm, in source order, whose pattern matches
// subject. Arm order alone determines precedence; there is no
// most-specific-wins reordering. Comparison patterns are evaluated in
// place at their source position, interleaved with structural arms.
// Later arms are never evaluated once an arm is selected.
func Select(arms []Arm, subject value.Value) (Selection, error) {
	for i, arm := range arms {
		ok, err := matches(arm.Pattern, subject)
		if err != nil {
			return Selection{}, err
		}
		if !ok {
			continue
		}
		if arm.Guard != nil {
			pass, err := arm.Guard(subject)
			if err != nil {
				return Selection{}, err
			}
			if !pass {
				continue
			}
		}
		return Selection{Arm: i, Bindings: bind(arm, subject)}, nil
	}
	return Selection{}, NewNoMatchError(subject.TypeOf())
}

func matches(p Pattern, subject value.Value) (bool, error) {
	switch pat := p.(type) {
	case TypePattern:
		return typesystem.Compatible(subject.TypeOf(), pat.Type), nil

	case ShapePattern:
		return typesystem.Compatible(subject.TypeOf(), pat.Shape), nil

	case ValuePattern:
		v, ok := value.Lookup(subject, pat.Path)
		if !ok {
			return false, nil
		}
		return value.LiteralEquals(v, pat.Literal), nil

	case ComparisonPattern:
		if pat.Pred == nil {
			return false, nil
		}
		return pat.Pred(subject)
	}
	return false, nil
}

// bind collects the selected arm's bindings: the whole-subject binding
// when declared, plus one binding per shape member for shape patterns.
func bind(arm Arm, subject value.Value) map[string]value.Value {
	bindings := make(map[string]value.Value)
	if arm.Bind != "" {
		bindings[arm.Bind] = subject
	}
	if shape, ok := arm.Pattern.(ShapePattern); ok {
		for name := range shape.Shape.Members {
			if v, ok := value.Lookup(subject, []string{name}); ok {
				bindings[name] = v
			}
		}
	}
	return bindings
}

package match

import (
	"github.com/sablelang/sable/internal/typesystem"
)

// Report collects the static diagnostics for one match expression.
// Warnings never block arm selection; NonExhaustive is fatal only when
// the caller knows the subject's closed type set.
type Report struct {
	Unreachable   []UnreachableArmWarning
	NonExhaustive *NonExhaustiveMatchError
}

// Analyze runs the per-expression static checks, independent of any
// runtime subject, against a closed set of possible subject types
// (e.g. a finite tag union expanded to singleton tags, or a sealed set
// of record shapes). A nil closed set means the subject's type universe
// is unknown: exhaustiveness degrades to no report.
//
// Exhaustiveness is undecidable once a comparison pattern is involved,
// so arm lists containing one are conservatively treated as exhaustive.
// Only guard-free structural arms count as guaranteeing a match.
func Analyze(arms []Arm, closed []typesystem.Type) Report {
	var report Report

	hasComparison := false
	for _, arm := range arms {
		if _, ok := arm.Pattern.(ComparisonPattern); ok {
			hasComparison = true
			break
		}
	}

	// Reachability: an arm is dead when every closed type it accepts is
	// already guaranteed by an earlier arm, or when it accepts nothing.
	for j, arm := range arms {
		if _, ok := arm.Pattern.(ComparisonPattern); ok {
			continue
		}
		if len(closed) == 0 {
			continue
		}
		reachable := false
		for _, t := range closed {
			if !accepts(arm.Pattern, t) {
				continue
			}
			covered := false
			for i := 0; i < j; i++ {
				if guarantees(arms[i], t) {
					covered = true
					break
				}
			}
			if !covered {
				reachable = true
				break
			}
		}
		if !reachable {
			report.Unreachable = append(report.Unreachable, UnreachableArmWarning{Arm: j})
		}
	}

	if hasComparison || len(closed) == 0 {
		return report
	}

	var uncovered []typesystem.Type
	for _, t := range closed {
		handled := false
		for _, arm := range arms {
			if guarantees(arm, t) {
				handled = true
				break
			}
		}
		if !handled {
			uncovered = append(uncovered, t)
		}
	}
	if len(uncovered) > 0 {
		report.NonExhaustive = NewNonExhaustiveMatchError(uncovered)
	}
	return report
}

// accepts reports whether the pattern could match some value of type t.
// Value patterns accept any type that carries the tested member path;
// whether the literal compares equal depends on the runtime value.
func accepts(p Pattern, t typesystem.Type) bool {
	switch pat := p.(type) {
	case TypePattern:
		return typesystem.Compatible(t, pat.Type)
	case ShapePattern:
		return typesystem.Compatible(t, pat.Shape)
	case ValuePattern:
		_, ok := memberPathType(t, pat.Path)
		return ok
	}
	return false
}

// guarantees reports whether the arm matches every value of type t.
// Value patterns and guarded arms depend on runtime values, so they
// accept but never guarantee.
func guarantees(arm Arm, t typesystem.Type) bool {
	if arm.Guard != nil {
		return false
	}
	switch pat := arm.Pattern.(type) {
	case TypePattern:
		return typesystem.Compatible(t, pat.Type)
	case ShapePattern:
		return typesystem.Compatible(t, pat.Shape)
	}
	return false
}

func memberPathType(t typesystem.Type, path []string) (typesystem.Type, bool) {
	cur := typesystem.Unwrap(t)
	for _, seg := range path {
		rec, ok := cur.(typesystem.Record)
		if !ok {
			return nil, false
		}
		m, ok := rec.Members[seg]
		if !ok {
			return nil, false
		}
		cur = typesystem.Unwrap(m.Type)
	}
	return cur, true
}

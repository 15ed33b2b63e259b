package match

import (
	"fmt"
	"strings"

	"github.com/sablelang/sable/internal/typesystem"
)

// NoMatchError indicates no arm matched a runtime subject. It can only
// occur when a non-exhaustive match was permitted to reach execution.
type NoMatchError struct {
	Subject typesystem.Type
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("non-exhaustive match: no arm matched value of type %s", e.Subject.String())
}

func NewNoMatchError(subject typesystem.Type) *NoMatchError {
	return &NoMatchError{Subject: subject}
}

// UnreachableArmWarning flags an arm that can never be selected because
// every subject it accepts is already guaranteed to match by a strictly
// earlier arm. Advisory, never fatal.
type UnreachableArmWarning struct {
	Arm int
}

func (w UnreachableArmWarning) String() string {
	return fmt.Sprintf("arm %d is unreachable", w.Arm)
}

// NonExhaustiveMatchError indicates the arms do not cover the full
// closed set of possible subject types.
type NonExhaustiveMatchError struct {
	Uncovered []typesystem.Type
}

func (e *NonExhaustiveMatchError) Error() string {
	parts := make([]string, len(e.Uncovered))
	for i, t := range e.Uncovered {
		parts[i] = t.String()
	}
	return fmt.Sprintf("match is not exhaustive, uncovered: %s", strings.Join(parts, ", "))
}

func NewNonExhaustiveMatchError(uncovered []typesystem.Type) *NonExhaustiveMatchError {
	return &NonExhaustiveMatchError{Uncovered: uncovered}
}

package diagnostics

import (
	"errors"

	"github.com/google/uuid"

	"github.com/sablelang/sable/internal/match"
	"github.com/sablelang/sable/internal/typesystem"
)

// Code identifies a diagnostic class. T-codes come from the type
// algebra, M-codes from match resolution.
type Code string

const (
	ErrT001  Code = "T001" // duplicate record member
	ErrT002  Code = "T002" // empty tag set
	ErrT003  Code = "T003" // incompatible intersection member
	ErrT004  Code = "T004" // incompatible kinds under composition
	ErrT005  Code = "T005" // tag types do not intersect
	ErrM001  Code = "M001" // non-exhaustive match
	ErrM002  Code = "M002" // no arm matched at runtime
	WarnM003 Code = "M003" // unreachable arm
	ErrX000  Code = "X000" // uncategorized
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one structured diagnostic for the (external) reporter.
// Detail carries the original error/warning value so the reporter has
// the full structured payload (types, member names, arm indices); this
// package never formats user-facing prose.
type Diagnostic struct {
	ID       string // unique instance id
	Code     Code
	Severity Severity
	Detail   any
}

// New builds a diagnostic with a fresh instance id.
func New(code Code, severity Severity, detail any) Diagnostic {
	return Diagnostic{
		ID:       uuid.NewString(),
		Code:     code,
		Severity: severity,
		Detail:   detail,
	}
}

// FromError classifies a typed component error into a diagnostic.
func FromError(err error) Diagnostic {
	var (
		dup    *typesystem.DuplicateMemberError
		empty  *typesystem.EmptyTagSetError
		inter  *typesystem.IncompatibleIntersectionError
		kind   *typesystem.IncompatibleKindError
		tagAnd *typesystem.UnsupportedIntersectionError
		nonExh *match.NonExhaustiveMatchError
		noArm  *match.NoMatchError
	)
	switch {
	case errors.As(err, &dup):
		return New(ErrT001, SeverityError, dup)
	case errors.As(err, &empty):
		return New(ErrT002, SeverityError, empty)
	case errors.As(err, &inter):
		return New(ErrT003, SeverityError, inter)
	case errors.As(err, &kind):
		return New(ErrT004, SeverityError, kind)
	case errors.As(err, &tagAnd):
		return New(ErrT005, SeverityError, tagAnd)
	case errors.As(err, &nonExh):
		return New(ErrM001, SeverityError, nonExh)
	case errors.As(err, &noArm):
		return New(ErrM002, SeverityError, noArm)
	}
	return New(ErrX000, SeverityError, err)
}

// FromWarning wraps an unreachable-arm warning.
func FromWarning(w match.UnreachableArmWarning) Diagnostic {
	return New(WarnM003, SeverityWarning, w)
}

// Collector accumulates diagnostics across declarations. An error in
// one composed-type computation never aborts unrelated declarations;
// the caller decides when to stop.
type Collector struct {
	diags []Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Add(d Diagnostic) {
	c.diags = append(c.diags, d)
}

// Report classifies and records a component error. Nil is ignored.
func (c *Collector) Report(err error) {
	if err == nil {
		return
	}
	c.Add(FromError(err))
}

func (c *Collector) All() []Diagnostic {
	return c.diags
}

func (c *Collector) HasErrors() bool {
	for _, d := range c.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

package manifest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sablelang/sable/internal/diagnostics"
	"github.com/sablelang/sable/internal/match"
	"github.com/sablelang/sable/internal/typesystem"
	"github.com/sablelang/sable/internal/value"
)

var primitives = map[string]typesystem.Primitive{
	"int8":    typesystem.Int8,
	"int16":   typesystem.Int16,
	"int32":   typesystem.Int32,
	"int64":   typesystem.Int64,
	"uint8":   typesystem.Uint8,
	"uint16":  typesystem.Uint16,
	"uint32":  typesystem.Uint32,
	"uint64":  typesystem.Uint64,
	"float8":  typesystem.Float8,
	"float16": typesystem.Float16,
	"float32": typesystem.Float32,
	"float64": typesystem.Float64,
	"string":  typesystem.String,
	"bool":    typesystem.Bool,
	"unit":    typesystem.Unit,
}

// TypeSet is the elaborated environment of one manifest: every declared
// name bound to a type value. Composed declarations stay as lazy
// Composed nodes until normalized.
type TypeSet struct {
	order []string
	types map[string]typesystem.Type
}

// Elaborate resolves all declarations, in order. A declaration may
// reference primitives and previously declared names.
func (m *Manifest) Elaborate() (*TypeSet, error) {
	ts := &TypeSet{types: make(map[string]typesystem.Type)}
	for _, d := range m.Types {
		var (
			t   typesystem.Type
			err error
		)
		switch {
		case d.Record != nil:
			t, err = ts.resolveRecord(d.Record)
		case len(d.Tag) > 0:
			t, err = typesystem.NewTag(d.Tag...)
		case d.Compose != nil:
			t, err = ts.resolveCompose(d.Compose)
		}
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", d.Name, err)
		}
		ts.types[d.Name] = typesystem.Named{Name: d.Name, Underlying: t}
		ts.order = append(ts.order, d.Name)
	}
	return ts, nil
}

// Names returns declared type names in declaration order.
func (ts *TypeSet) Names() []string {
	return ts.order
}

// Lookup returns the declared type bound to name.
func (ts *TypeSet) Lookup(name string) (typesystem.Type, bool) {
	t, ok := ts.types[name]
	return t, ok
}

// Resolve turns a manifest type reference into a type value.
func (ts *TypeSet) Resolve(ref TypeRef) (typesystem.Type, error) {
	switch {
	case ref.Name != "":
		if ref.Name == "any" {
			return typesystem.Any{}, nil
		}
		if p, ok := primitives[ref.Name]; ok {
			return p, nil
		}
		if t, ok := ts.types[ref.Name]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("unknown type %q", ref.Name)
	case ref.Record != nil:
		return ts.resolveRecord(ref.Record)
	case len(ref.Tag) > 0:
		return typesystem.NewTag(ref.Tag...)
	}
	return nil, fmt.Errorf("empty type reference")
}

func (ts *TypeSet) resolveRecord(members map[string]TypeRef) (typesystem.Record, error) {
	fields := make([]typesystem.Field, 0, len(members))
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mt, err := ts.Resolve(members[name])
		if err != nil {
			return typesystem.Record{}, fmt.Errorf("member %q: %w", name, err)
		}
		fields = append(fields, typesystem.Field{Name: name, Member: typesystem.Member{Type: mt}})
	}
	return typesystem.NewRecord(fields...)
}

func (ts *TypeSet) resolveCompose(c *Compose) (typesystem.Type, error) {
	left, err := ts.Resolve(c.Left)
	if err != nil {
		return nil, err
	}
	right, err := ts.Resolve(c.Right)
	if err != nil {
		return nil, err
	}
	op := typesystem.OpAnd
	if c.Op == "|" {
		op = typesystem.OpOr
	}
	return typesystem.NewComposed(left, op, right), nil
}

// NormalizeAll normalizes every declaration with one shared memo.
// Per-declaration failures go to the collector and do not abort the
// remaining declarations; the returned map holds the successes.
func (ts *TypeSet) NormalizeAll(coll *diagnostics.Collector) map[string]typesystem.Type {
	memo := typesystem.NewMemo()
	out := make(map[string]typesystem.Type, len(ts.order))
	for _, name := range ts.order {
		norm, err := typesystem.NormalizeWith(ts.types[name], memo)
		if err != nil {
			coll.Report(err)
			continue
		}
		out[name] = norm
	}
	return out
}

// BuildScenario elaborates one scenario into the engine's inputs:
// the subject value, the arm list, and the closed subject type set
// (nil when the manifest does not declare one).
func BuildScenario(s Scenario, ts *TypeSet) (value.Value, []match.Arm, []typesystem.Type, error) {
	subject, err := buildValue(s.Subject)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("scenario %q: subject: %w", s.Name, err)
	}

	arms := make([]match.Arm, 0, len(s.Arms))
	for i, a := range s.Arms {
		arm, err := buildArm(a, ts)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("scenario %q: arms[%d]: %w", s.Name, i, err)
		}
		arms = append(arms, arm)
	}

	var closed []typesystem.Type
	for i, ref := range s.Closed {
		t, err := ts.Resolve(ref)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("scenario %q: closed[%d]: %w", s.Name, i, err)
		}
		closed = append(closed, t)
	}
	return subject, arms, closed, nil
}

func buildArm(a ArmSpec, ts *TypeSet) (match.Arm, error) {
	arm := match.Arm{Bind: a.Bind}
	switch {
	case a.Type != nil:
		t, err := ts.Resolve(*a.Type)
		if err != nil {
			return match.Arm{}, err
		}
		arm.Pattern = match.TypePattern{Type: t}
	case a.Shape != nil:
		shape, err := ts.resolveRecord(a.Shape)
		if err != nil {
			return match.Arm{}, err
		}
		arm.Pattern = match.ShapePattern{Shape: shape}
	case a.Value != nil:
		var path []string
		if a.Value.Path != "" {
			path = strings.Split(a.Value.Path, ".")
		}
		arm.Pattern = match.ValuePattern{Path: path, Literal: normalizeLiteral(a.Value.Equals)}
	}
	return arm, nil
}

func buildValue(spec ValueSpec) (value.Value, error) {
	switch {
	case spec.Int != nil:
		p, err := numericWidth(spec.Type, typesystem.Int32)
		if err != nil {
			return nil, err
		}
		return value.Int{Type: p, Val: *spec.Int}, nil
	case spec.Float != nil:
		p, err := numericWidth(spec.Type, typesystem.Float64)
		if err != nil {
			return nil, err
		}
		return value.Float{Type: p, Val: *spec.Float}, nil
	case spec.Str != nil:
		return value.Str{Val: *spec.Str}, nil
	case spec.Bool != nil:
		return value.Bool{Val: *spec.Bool}, nil
	case spec.Tag != "":
		return value.TagValue{Lit: spec.Tag}, nil
	case spec.Record != nil:
		fields := make(map[string]value.Value, len(spec.Record))
		for name, fs := range spec.Record {
			fv, err := buildValue(fs)
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", name, err)
			}
			fields[name] = fv
		}
		return value.NewRecord(fields), nil
	}
	return value.Unit{}, nil
}

func numericWidth(name string, fallback typesystem.Primitive) (typesystem.Primitive, error) {
	if name == "" {
		return fallback, nil
	}
	p, ok := primitives[name]
	if !ok {
		return typesystem.Primitive{}, fmt.Errorf("unknown primitive %q", name)
	}
	return p, nil
}

// normalizeLiteral maps yaml scalar decoding to the literal domain used
// by value patterns (int64, float64, string, bool).
func normalizeLiteral(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case uint64:
		return int64(n)
	case float64:
		return n
	default:
		return v
	}
}

package typesystem

import "sync"

// Memo is an optional normalization cache keyed by Composed node
// identity. Normalization is a pure function, so the cache is only an
// optimization: correctness never depends on it being populated. A Memo
// may be shared across concurrent type-checking tasks; access is
// guarded by a mutex.
type Memo struct {
	mu      sync.Mutex
	results map[string]Type
}

func NewMemo() *Memo {
	return &Memo{results: make(map[string]Type)}
}

func (m *Memo) get(id string) (Type, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.results[id]
	return t, ok
}

func (m *Memo) put(id string, t Type) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[id] = t
}

// Normalize recursively rewrites every Composed node in t into a
// concrete Record/Tag, bottom-up. Inputs are never mutated; the result
// shares unchanged subtrees with the input. Memoization is per call.
func Normalize(t Type) (Type, error) {
	return NormalizeWith(t, NewMemo())
}

// NormalizeWith is Normalize with a caller-supplied cache, for reuse
// across many declarations referencing the same Composed nodes.
func NormalizeWith(t Type, memo *Memo) (Type, error) {
	if memo == nil {
		memo = NewMemo()
	}
	return normalize(t, memo)
}

func normalize(t Type, memo *Memo) (Type, error) {
	switch tt := t.(type) {
	case Composed:
		if cached, ok := memo.get(tt.ID); ok {
			return cached, nil
		}
		left, err := normalize(tt.Left, memo)
		if err != nil {
			return nil, err
		}
		right, err := normalize(tt.Right, memo)
		if err != nil {
			return nil, err
		}
		res, err := combine(left, tt.Op, right)
		if err != nil {
			return nil, err
		}
		memo.put(tt.ID, res)
		return res, nil

	case Named:
		under, err := normalize(tt.Underlying, memo)
		if err != nil {
			return nil, err
		}
		if Equal(under, tt.Underlying) {
			return tt, nil
		}
		return Named{Name: tt.Name, Underlying: under}, nil

	case Record:
		changed := false
		members := make(map[string]Member, len(tt.Members))
		for name, m := range tt.Members {
			mt, err := normalize(m.Type, memo)
			if err != nil {
				return nil, err
			}
			if !Equal(mt, m.Type) {
				changed = true
			}
			members[name] = Member{Type: mt, Literal: m.Literal}
		}
		if !changed {
			return tt, nil
		}
		return Record{Members: members}, nil

	case Func:
		changed := false
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			np, err := normalize(p, memo)
			if err != nil {
				return nil, err
			}
			if !Equal(np, p) {
				changed = true
			}
			params[i] = np
		}
		ret, err := normalize(tt.Return, memo)
		if err != nil {
			return nil, err
		}
		if !changed && Equal(ret, tt.Return) {
			return tt, nil
		}
		return Func{Params: params, Return: ret}, nil

	default:
		return t, nil
	}
}

// combine applies one composition operator to two already-normalized
// operands. Named operands are resolved before rule selection; the
// result is re-wrapped as Named only when both sides were the same
// alias, since combining distinct named types produces a new structural
// shape with no single name.
func combine(left Type, op Op, right Type) (Type, error) {
	l := Unwrap(left)
	r := Unwrap(right)

	// Any adds no constraint under &, removes all constraint under |.
	if _, ok := l.(Any); ok {
		if op == OpAnd {
			return right, nil
		}
		return Any{}, nil
	}
	if _, ok := r.(Any); ok {
		if op == OpAnd {
			return left, nil
		}
		return Any{}, nil
	}

	// Identical operands combine to themselves under either operator,
	// keeping the alias when both sides were the same named type.
	// Tag intersection stays rejected even for identical operands.
	_, lIsTagKind := l.(Tag)
	if Equal(l, r) && !(lIsTagKind && op == OpAnd) {
		if sameAlias(left, right) {
			return left, nil
		}
		return l, nil
	}

	lr, lIsRecord := l.(Record)
	rr, rIsRecord := r.(Record)
	if lIsRecord && rIsRecord {
		if op == OpAnd {
			return intersectRecords(lr, rr)
		}
		return unionRecords(lr, rr), nil
	}

	lt, lIsTag := l.(Tag)
	rt, rIsTag := r.(Tag)
	if lIsTag && rIsTag {
		if op == OpAnd {
			return nil, NewUnsupportedIntersectionError(lt, rt)
		}
		return MustTag(append(append([]string{}, lt.Literals...), rt.Literals...)...), nil
	}

	return nil, NewIncompatibleKindError(l.Kind(), r.Kind(), op)
}

func sameAlias(a, b Type) bool {
	an, aok := a.(Named)
	bn, bok := b.(Named)
	return aok && bok && an.Name == bn.Name
}

// intersectRecords merges two records member-wise: the result carries
// the union of both member sets. For a name present on both sides the
// narrower member wins; mutually incompatible member types fail the
// whole intersection.
func intersectRecords(a, b Record) (Type, error) {
	members := make(map[string]Member, len(a.Members)+len(b.Members))
	for name, am := range a.Members {
		members[name] = am
	}
	for name, bm := range b.Members {
		am, ok := members[name]
		if !ok {
			members[name] = bm
			continue
		}
		switch {
		case memberCompatible(am, bm):
			// am satisfies bm: am is at least as specific, keep it.
		case memberCompatible(bm, am):
			members[name] = bm
		default:
			return nil, NewIncompatibleIntersectionError(name, am.Type, bm.Type)
		}
	}
	return Record{Members: members}, nil
}

// unionRecords keeps only the members present on both sides with
// mutually reconcilable types; each kept member gets the join (the
// wider of the two sides). Members the sides disagree on are dropped
// rather than failing: a union only promises what both sides guarantee.
func unionRecords(a, b Record) Record {
	members := make(map[string]Member)
	for name, am := range a.Members {
		bm, ok := b.Members[name]
		if !ok {
			continue
		}
		switch {
		case memberCompatible(bm, am):
			// bm satisfies am: am is the wider side, it covers both.
			members[name] = am
		case memberCompatible(am, bm):
			members[name] = bm
		}
	}
	return Record{Members: members}
}

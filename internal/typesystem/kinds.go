package typesystem

// Kind classifies a type for algebra rule selection and for
// IncompatibleKindError reporting. The language has no higher-kinded
// types, so this is a flat classification rather than a kind calculus.
type Kind int

const (
	KindPrimitive Kind = iota
	KindRecord
	KindTag
	KindFunc
	KindAny
	KindComposed
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindRecord:
		return "record"
	case KindTag:
		return "tag"
	case KindFunc:
		return "function"
	case KindAny:
		return "any"
	case KindComposed:
		return "composed"
	}
	return "invalid"
}

// Op is a type composition operator.
type Op int

const (
	OpAnd Op = iota // structural intersection: union of members
	OpOr            // structural union: members common to both sides
)

func (op Op) String() string {
	if op == OpAnd {
		return "&"
	}
	return "|"
}

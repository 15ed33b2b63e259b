package typesystem

// Extension is one registered extension method: a callable attached to
// every receiver satisfying Shape.
type Extension struct {
	Name  string
	Shape Type // required receiver shape, normalized at registration
	Sig   Func
}

// DispatchTable resolves extension-method calls over structural
// receivers, including union receivers like (TypeA|TypeB).foo.
// Resolution is oracle-driven: an extension applies when the normalized
// receiver type satisfies the shape it was registered for. When several
// registrations for one name apply, the earliest wins, mirroring the
// positional precedence of match arms.
type DispatchTable struct {
	byName map[string][]Extension
}

func NewDispatchTable() *DispatchTable {
	return &DispatchTable{byName: make(map[string][]Extension)}
}

// Register adds an extension method for receivers satisfying shape.
// The shape is normalized up front so composed shapes fail here, at
// declaration, rather than at every call site.
func (t *DispatchTable) Register(name string, shape Type, sig Func) error {
	norm, err := Normalize(shape)
	if err != nil {
		return err
	}
	t.byName[name] = append(t.byName[name], Extension{Name: name, Shape: norm, Sig: sig})
	return nil
}

// Resolve finds the extension handling name for the given receiver
// type. Returns false when no registered shape is satisfied or the
// receiver itself does not normalize.
func (t *DispatchTable) Resolve(receiver Type, name string) (Extension, bool) {
	norm, err := Normalize(receiver)
	if err != nil {
		return Extension{}, false
	}
	for _, ext := range t.byName[name] {
		if Compatible(norm, ext.Shape) {
			return ext, true
		}
	}
	return Extension{}, false
}

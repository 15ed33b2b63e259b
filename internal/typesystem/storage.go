package typesystem

// Storage is the ownership class of a binding (stack, shared, unique).
// It is a storage decision carried alongside a type, never part of the
// type's structural identity: the algebra and the oracle ignore it.
type Storage int

const (
	StorageStack Storage = iota
	StorageShared
	StorageUnique
)

func (s Storage) String() string {
	switch s {
	case StorageStack:
		return "stack"
	case StorageShared:
		return "shared"
	case StorageUnique:
		return "unique"
	}
	return "invalid"
}

// Attributed pairs a type with its storage class for the (external)
// ownership checker. Two Attributed values with the same Type are
// structurally the same type regardless of storage.
type Attributed struct {
	Type    Type
	Storage Storage
}

func (a Attributed) String() string {
	return a.Storage.String() + " " + a.Type.String()
}

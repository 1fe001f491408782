package models

// Provenance records where a generated value came from.
type Provenance int

const (
	// Missing means the source had no usable value and none was substituted.
	Missing Provenance = iota
	// Present means the value was derived from real catalog data.
	Present
	// Fabricated means the value was synthesised to fill a gap in the catalog.
	Fabricated
)

func (p Provenance) String() string {
	switch p {
	case Present:
		return "present"
	case Fabricated:
		return "fabricated"
	default:
		return "missing"
	}
}

// Field is a value tagged with its provenance.
type Field[T any] struct {
	Value  T
	Source Provenance
}

func PresentOf[T any](v T) Field[T] {
	return Field[T]{Value: v, Source: Present}
}

func FabricatedOf[T any](v T) Field[T] {
	return Field[T]{Value: v, Source: Fabricated}
}

func MissingOf[T any]() Field[T] {
	return Field[T]{Source: Missing}
}

// Ok reports whether the field carries a value, real or fabricated.
func (f Field[T]) Ok() bool {
	return f.Source != Missing
}

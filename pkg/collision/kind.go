// Package collision implements 2D collision detection: shape variants, a
// pair-keyed narrow-phase resolver and a uniform-grid collision world.
package collision

// Kind identifies which geometric variant a shape is
type Kind uint8

// Shape kinds
const (
	KindPoint Kind = iota
	KindCircle
	KindRectangle
	KindLines
	KindTilemap

	// NumKinds is the number of shape kinds and sizes the resolver table
	NumKinds
)

var kindNames = [NumKinds]string{
	KindPoint:     "point",
	KindCircle:    "circle",
	KindRectangle: "rect",
	KindLines:     "lines",
	KindTilemap:   "tilemap",
}

// String returns the short identifier of the kind
func (k Kind) String() string {
	if k < NumKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the known shape kinds
func (k Kind) Valid() bool {
	return k < NumKinds
}

// ParseKind maps a short identifier back to its kind
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

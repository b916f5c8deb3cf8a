// Package engine implements the rules of the falling-block game: the piece
// catalog, the settled grid, placement validity, locking, row clearing,
// scoring and the gravity schedule. It has no dependency on rendering or
// input handling so every rule can be tested in isolation.
package engine

// Variant identifies one of the seven piece kinds.
type Variant uint8

const (
	VariantI Variant = iota
	VariantO
	VariantT
	VariantS
	VariantZ
	VariantJ
	VariantL
)

const (
	VariantCount  = 7 // Number of piece kinds
	RotationCount = 4 // Rotation states per kind
	PieceSize     = 4 // Occupied cells per mask
	MaskSize      = 4 // Masks are MaskSize x MaskSize
)

// Mask is a 4x4 occupancy pattern. A non-zero entry is occupied and holds
// the owning variant's cell value. Indexed as Mask[row][col].
type Mask [MaskSize][MaskSize]uint8

// CellValue returns the value a settled cell of this variant carries (1..7).
func (v Variant) CellValue() uint8 {
	return uint8(v) + 1
}

// String returns the conventional letter name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantI:
		return "I"
	case VariantO:
		return "O"
	case VariantT:
		return "T"
	case VariantS:
		return "S"
	case VariantZ:
		return "Z"
	case VariantJ:
		return "J"
	case VariantL:
		return "L"
	default:
		return "?"
	}
}

// VariantForCell maps a settled cell value back to its variant.
// Returns false for the empty value and anything outside 1..VariantCount.
func VariantForCell(value uint8) (Variant, bool) {
	if value == 0 || value > VariantCount {
		return 0, false
	}
	return Variant(value - 1), true
}

// catalog holds every rotation state as literal data. Rotations are not
// derived by transforming a base shape; each variant keeps its own offsets.
var catalog = [VariantCount][RotationCount]Mask{
	VariantI: {
		{{0, 0, 0, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 0, 1, 0}, {0, 0, 1, 0}, {0, 0, 1, 0}, {0, 0, 1, 0}},
		{{0, 0, 0, 0}, {0, 0, 0, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}},
		{{0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}},
	},
	VariantO: {
		{{0, 2, 2, 0}, {0, 2, 2, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 2, 2, 0}, {0, 2, 2, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 2, 2, 0}, {0, 2, 2, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 2, 2, 0}, {0, 2, 2, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
	},
	VariantT: {
		{{0, 3, 0, 0}, {3, 3, 3, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 3, 0, 0}, {0, 3, 3, 0}, {0, 3, 0, 0}, {0, 0, 0, 0}},
		{{0, 0, 0, 0}, {3, 3, 3, 0}, {0, 3, 0, 0}, {0, 0, 0, 0}},
		{{0, 3, 0, 0}, {3, 3, 0, 0}, {0, 3, 0, 0}, {0, 0, 0, 0}},
	},
	VariantS: {
		{{0, 4, 4, 0}, {4, 4, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 4, 0, 0}, {0, 4, 4, 0}, {0, 0, 4, 0}, {0, 0, 0, 0}},
		{{0, 0, 0, 0}, {0, 4, 4, 0}, {4, 4, 0, 0}, {0, 0, 0, 0}},
		{{4, 0, 0, 0}, {4, 4, 0, 0}, {0, 4, 0, 0}, {0, 0, 0, 0}},
	},
	VariantZ: {
		{{5, 5, 0, 0}, {0, 5, 5, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 0, 5, 0}, {0, 5, 5, 0}, {0, 5, 0, 0}, {0, 0, 0, 0}},
		{{0, 0, 0, 0}, {5, 5, 0, 0}, {0, 5, 5, 0}, {0, 0, 0, 0}},
		{{0, 5, 0, 0}, {5, 5, 0, 0}, {5, 0, 0, 0}, {0, 0, 0, 0}},
	},
	VariantJ: {
		{{6, 0, 0, 0}, {6, 6, 6, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 6, 6, 0}, {0, 6, 0, 0}, {0, 6, 0, 0}, {0, 0, 0, 0}},
		{{0, 0, 0, 0}, {6, 6, 6, 0}, {0, 0, 6, 0}, {0, 0, 0, 0}},
		{{0, 6, 0, 0}, {0, 6, 0, 0}, {6, 6, 0, 0}, {0, 0, 0, 0}},
	},
	VariantL: {
		{{0, 0, 7, 0}, {7, 7, 7, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		{{0, 7, 0, 0}, {0, 7, 0, 0}, {0, 7, 7, 0}, {0, 0, 0, 0}},
		{{0, 0, 0, 0}, {7, 7, 7, 0}, {7, 0, 0, 0}, {0, 0, 0, 0}},
		{{7, 7, 0, 0}, {0, 7, 0, 0}, {0, 7, 0, 0}, {0, 0, 0, 0}},
	},
}

// MaskFor returns the occupancy mask of a variant in a rotation state.
// Callers must pass v < VariantCount and 0 <= rotation < RotationCount;
// anything else is a programming error and panics on the index.
func MaskFor(v Variant, rotation int) Mask {
	return catalog[v][rotation]
}

package engine

import "math/rand"

// Point is an absolute grid coordinate.
type Point struct {
	Row, Col int
}

// Piece is the falling piece: its variant, rotation state and the grid
// position of its mask's top-left corner. Y may be negative while the piece
// overhangs the top of the field.
type Piece struct {
	Variant  Variant
	Rotation int
	X, Y     int
}

// SpawnX is the column a new piece's mask is anchored at.
const SpawnX = Cols/2 - 2

// spawnPiece places a variant at the spawn position in rotation 0.
func spawnPiece(v Variant) Piece {
	return Piece{Variant: v, Rotation: 0, X: SpawnX, Y: 0}
}

// randomVariant picks a variant uniformly.
func randomVariant(rng *rand.Rand) Variant {
	return Variant(rng.Intn(VariantCount))
}

// Mask returns the piece's current occupancy mask.
func (p Piece) Mask() Mask {
	return MaskFor(p.Variant, p.Rotation)
}

// Cells returns the absolute coordinates of the occupied cells, including
// any still above row 0.
func (p Piece) Cells() []Point {
	mask := p.Mask()
	cells := make([]Point, 0, PieceSize)
	for dy := 0; dy < MaskSize; dy++ {
		for dx := 0; dx < MaskSize; dx++ {
			if mask[dy][dx] != 0 {
				cells = append(cells, Point{Row: p.Y + dy, Col: p.X + dx})
			}
		}
	}
	return cells
}

// Moved returns the piece offset by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece in its next rotation state at the same origin.
func (p Piece) Rotated() Piece {
	p.Rotation = (p.Rotation + 1) % RotationCount
	return p
}

// fits reports whether the piece is a valid placement on g.
func (p Piece) fits(g *Grid) bool {
	return IsValidPlacement(g, p.Variant, p.Rotation, p.X, p.Y)
}

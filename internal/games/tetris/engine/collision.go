package engine

// IsValidPlacement reports whether a piece of variant v in the given
// rotation, with its mask's top-left corner at (originX, originY), fits the
// grid.
//
// A cell is invalid when its column is outside [0, Cols), when its row is
// at or below the floor (row >= Rows), or when it lands on a settled cell.
// Rows above the top (row < 0) are allowed so a freshly spawned piece may
// overhang the visible field.
//
// Every movement, rotation and drop check goes through this one predicate.
func IsValidPlacement(g *Grid, v Variant, rotation, originX, originY int) bool {
	mask := MaskFor(v, rotation)
	for dy := 0; dy < MaskSize; dy++ {
		for dx := 0; dx < MaskSize; dx++ {
			if mask[dy][dx] == 0 {
				continue
			}

			col := originX + dx
			row := originY + dy

			if col < 0 || col >= Cols || row >= Rows {
				return false
			}
			if row >= 0 && g.cells[row][col] != 0 {
				return false
			}
		}
	}
	return true
}

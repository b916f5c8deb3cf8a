package engine

// lineClearPoints is indexed by the number of rows cleared in one lock.
var lineClearPoints = [...]int{0, 100, 300, 500, 800}

// Drop bonuses.
const (
	SoftDropBonus = 1 // Per successful soft-drop step
	HardDropBonus = 1 // Per row travelled by a hard drop
)

// LineClearScore returns the points for clearing n rows in a single lock.
// Counts outside the table score nothing.
func LineClearScore(n int) int {
	if n < 0 || n >= len(lineClearPoints) {
		return 0
	}
	return lineClearPoints[n]
}

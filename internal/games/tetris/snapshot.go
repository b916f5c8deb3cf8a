package tetris

import "github.com/vovakirdan/blockfall/internal/games/tetris/engine"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Seed     int64
	Paused   bool
	Restarts int
	Session  engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Seed:     g.seed,
		Paused:   g.paused,
		Restarts: g.restarts,
		Session:  g.session.Snapshot(),
	}
}

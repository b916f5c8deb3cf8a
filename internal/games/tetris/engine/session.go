package engine

import (
	"math/rand"
	"sync"
	"time"
)

// State is the lifecycle state of a session.
type State int

const (
	StateRunning State = iota
	StateGameOver
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Result describes what a single session operation did. It is the only
// channel through which score changes and the terminal transition are
// reported to observers.
type Result struct {
	Moved        bool // The piece changed position
	Rotated      bool // The piece changed rotation
	Locked       bool // The piece was committed to the grid
	LinesCleared int  // Rows removed by the lock
	ScoreDelta   int  // Points awarded by this operation
	GameOver     bool // The operation ended the game
}

// Session owns the grid, the falling piece and the score, and is the only
// place they are mutated. All methods are safe for concurrent use; they are
// serialised behind one mutex.
type Session struct {
	mu sync.Mutex

	rng       *rand.Rand
	grid      *Grid
	piece     Piece
	next      Variant
	score     int
	lines     int
	locks     int
	state     State
	scheduler *Scheduler
}

// NewSession starts a running game with a freshly spawned piece.
// The seed fully determines the piece sequence.
func NewSession(seed int64) *Session {
	s := &Session{scheduler: NewScheduler(DropInterval)}
	s.reset(seed)
	return s
}

// Reset discards the current game and starts a new one.
func (s *Session) Reset(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(seed)
}

func (s *Session) reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.grid = NewGrid()
	s.score = 0
	s.lines = 0
	s.locks = 0
	s.state = StateRunning
	s.scheduler.Reset()
	s.next = randomVariant(s.rng)
	s.spawn()
}

// spawn promotes the queued variant to the falling piece and queues the
// next one. A piece that cannot be placed ends the game; it is kept for
// display.
func (s *Session) spawn() {
	s.piece = spawnPiece(s.next)
	s.next = randomVariant(s.rng)
	if !s.piece.fits(s.grid) {
		s.state = StateGameOver
	}
}

// TryMove shifts the piece by (dx, dy) if the new placement is valid.
// Returns false and leaves the piece untouched otherwise.
func (s *Session) TryMove(dx, dy int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tryMove(dx, dy)
}

func (s *Session) tryMove(dx, dy int) bool {
	if s.state != StateRunning {
		return false
	}
	candidate := s.piece.Moved(dx, dy)
	if !candidate.fits(s.grid) {
		return false
	}
	s.piece = candidate
	return true
}

// TryRotate advances the piece to its next rotation state in place.
// There is no wall kick: if the rotated mask collides the rotation fails
// and the piece is unchanged.
func (s *Session) TryRotate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tryRotate()
}

func (s *Session) tryRotate() bool {
	if s.state != StateRunning {
		return false
	}
	candidate := s.piece.Rotated()
	if !candidate.fits(s.grid) {
		return false
	}
	s.piece = candidate
	return true
}

// GravityTick moves the piece down one row, locking it if it cannot move.
func (s *Session) GravityTick() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fall(0)
}

// SoftDrop is the player-initiated version of GravityTick. A successful
// step earns SoftDropBonus; a blocked step locks without a bonus.
func (s *Session) SoftDrop() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fall(SoftDropBonus)
}

func (s *Session) fall(bonus int) Result {
	if s.state != StateRunning {
		return Result{}
	}
	if s.tryMove(0, 1) {
		s.score += bonus
		return Result{Moved: true, ScoreDelta: bonus}
	}
	return s.lock()
}

// HardDrop drops the piece as far as it goes and locks it, earning
// HardDropBonus per row travelled.
func (s *Session) HardDrop() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return Result{}
	}

	rows := 0
	for s.tryMove(0, 1) {
		rows++
	}
	bonus := rows * HardDropBonus
	s.score += bonus

	r := s.lock()
	r.Moved = rows > 0
	r.ScoreDelta += bonus
	return r
}

// lock commits the piece to the grid, clears rows, scores them and spawns
// the next piece.
func (s *Session) lock() Result {
	v := s.piece.Variant.CellValue()
	for _, c := range s.piece.Cells() {
		if c.Row < 0 {
			continue
		}
		s.grid.SetCell(c.Row, c.Col, v)
	}
	s.locks++

	cleared := s.grid.ClearCompletedRows()
	points := LineClearScore(cleared)
	s.score += points
	s.lines += cleared

	s.spawn()

	return Result{
		Locked:       true,
		LinesCleared: cleared,
		ScoreDelta:   points,
		GameOver:     s.state == StateGameOver,
	}
}

// MoveLeft shifts the piece one column left.
func (s *Session) MoveLeft() Result {
	return Result{Moved: s.TryMove(-1, 0)}
}

// MoveRight shifts the piece one column right.
func (s *Session) MoveRight() Result {
	return Result{Moved: s.TryMove(1, 0)}
}

// Rotate turns the piece to its next rotation state.
func (s *Session) Rotate() Result {
	return Result{Rotated: s.TryRotate()}
}

// Advance feeds elapsed wall-clock time to the gravity scheduler and runs a
// gravity tick when one is due. Nothing accumulates once the game is over.
func (s *Session) Advance(elapsed time.Duration) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return Result{}
	}
	if !s.scheduler.Advance(elapsed) {
		return Result{}
	}
	return s.fall(0)
}

// Score returns the current score. It never decreases.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Lines returns the total number of rows cleared.
func (s *Session) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Running reports whether the game still accepts operations.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateRunning
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Piece returns the falling piece. After game over it is the piece that
// failed to spawn.
func (s *Session) Piece() Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.piece
}

// Next returns the variant that will spawn after the current piece locks.
func (s *Session) Next() Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// Grid returns a copy of the settled grid.
func (s *Session) Grid() *Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Clone()
}

// Ghost returns where the piece would land if hard-dropped now.
// Returns false once the game is over.
func (s *Session) Ghost() (Piece, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ghost()
}

func (s *Session) ghost() (Piece, bool) {
	if s.state != StateRunning {
		return Piece{}, false
	}
	p := s.piece
	for {
		below := p.Moved(0, 1)
		if !below.fits(s.grid) {
			return p, true
		}
		p = below
	}
}

// Snapshot is a consistent, read-only copy of everything a renderer needs.
type Snapshot struct {
	Cells       [Rows][Cols]uint8
	Piece       Piece
	Ghost       Piece
	HasGhost    bool
	Next        Variant
	Score       int
	Lines       int
	Locks       int
	State       State
	Accumulated time.Duration
}

// Snapshot captures the session state under a single lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ghost, hasGhost := s.ghost()
	return Snapshot{
		Cells:       s.grid.Cells(),
		Piece:       s.piece,
		Ghost:       ghost,
		HasGhost:    hasGhost,
		Next:        s.next,
		Score:       s.score,
		Lines:       s.lines,
		Locks:       s.locks,
		State:       s.state,
		Accumulated: s.scheduler.Accumulated(),
	}
}

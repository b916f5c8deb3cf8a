// Package replay records the input frames of a game and re-simulates them.
//
// A replay is the seed, the frame rate and a sparse log of the frames that
// carried input. Because games are deterministic for a given seed and input
// sequence, that is enough to reproduce the final score exactly.
package replay

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// formatVersion is bumped when the encoded input log changes shape.
const formatVersion = 1

var (
	// ErrDiverged is returned when re-simulation does not end the way the
	// recording did.
	ErrDiverged = errors.New("replay: simulation diverged from recording")
	// ErrMalformed is returned for input logs that cannot be replayed.
	ErrMalformed = errors.New("replay: malformed input log")
)

// Event is one frame that carried input.
type Event struct {
	Tick    uint64        `msgpack:"t"`
	Actions []core.Action `msgpack:"a"`
}

// Replay is a decoded recording.
type Replay struct {
	ID        string
	GameID    string
	Seed      int64
	TickRate  int
	Ticks     uint64 // Frames simulated, including ones without input
	Complete  bool   // The recording ended on game over
	Events    []Event
	CreatedAt time.Time
}

type payload struct {
	Version  uint8   `msgpack:"v"`
	Complete bool    `msgpack:"c"`
	Events   []Event `msgpack:"e"`
}

// Encode serializes the input log of r with msgpack.
func Encode(r Replay) ([]byte, error) {
	data, err := msgpack.Marshal(&payload{
		Version:  formatVersion,
		Complete: r.Complete,
		Events:   r.Events,
	})
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode: %w", err)
	}
	return data, nil
}

// Decode parses an input log produced by Encode into r.
func Decode(data []byte, r *Replay) error {
	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Version != formatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrMalformed, p.Version)
	}
	r.Complete = p.Complete
	r.Events = p.Events
	return nil
}

// Record converts r into a storage record.
func (r Replay) Record() (storage.ReplayRecord, error) {
	frames, err := Encode(r)
	if err != nil {
		return storage.ReplayRecord{}, err
	}
	return storage.ReplayRecord{
		ID:        r.ID,
		GameID:    r.GameID,
		Seed:      r.Seed,
		TickRate:  r.TickRate,
		Ticks:     r.Ticks,
		Frames:    frames,
		CreatedAt: r.CreatedAt,
	}, nil
}

// FromRecord decodes a stored replay.
func FromRecord(rec storage.ReplayRecord) (Replay, error) {
	r := Replay{
		ID:        rec.ID,
		GameID:    rec.GameID,
		Seed:      rec.Seed,
		TickRate:  rec.TickRate,
		Ticks:     rec.Ticks,
		CreatedAt: rec.CreatedAt,
	}
	if err := Decode(rec.Frames, &r); err != nil {
		return Replay{}, err
	}
	return r, nil
}

// Duration is the game time the recording covers.
func (r Replay) Duration() time.Duration {
	rate := r.TickRate
	if rate <= 0 {
		rate = core.DefaultTickRate
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(rate)
}

// Inputs counts the recorded actions.
func (r Replay) Inputs() int {
	n := 0
	for _, e := range r.Events {
		n += len(e.Actions)
	}
	return n
}

func (r Replay) validate() error {
	var prev uint64
	for i, e := range r.Events {
		if e.Tick >= r.Ticks {
			return fmt.Errorf("%w: event at tick %d past end %d", ErrMalformed, e.Tick, r.Ticks)
		}
		if i > 0 && e.Tick <= prev {
			return fmt.Errorf("%w: events out of order at tick %d", ErrMalformed, e.Tick)
		}
		prev = e.Tick
	}
	return nil
}

// Run re-simulates r on g, which is reset first, and returns the final
// state. Frames after the game ends are still stepped so that a recording
// that continued past game over reproduces exactly.
func Run(g registry.Game, r Replay) (core.GameState, error) {
	_, st, err := run(g, r)
	return st, err
}

func run(g registry.Game, r Replay) (endTick uint64, st core.GameState, err error) {
	if g.ID() != r.GameID {
		return 0, st, fmt.Errorf("replay: recorded for %q, not %q", r.GameID, g.ID())
	}
	if err := r.validate(); err != nil {
		return 0, st, err
	}

	cfg := core.DefaultConfig()
	cfg.Seed = r.Seed
	cfg.TickRate = r.TickRate
	g.Reset(cfg.Normalized())

	st = g.State()
	endTick = r.Ticks
	events := r.Events
	in := core.NewInputFrame()

	for tick := uint64(0); tick < r.Ticks; tick++ {
		in.Clear()
		if len(events) > 0 && events[0].Tick == tick {
			for _, a := range events[0].Actions {
				in.Set(a)
			}
			events = events[1:]
		}
		st = g.Step(in).State
		if st.GameOver && endTick == r.Ticks {
			endTick = tick
		}
	}
	return endTick, st, nil
}

// Verify re-simulates a complete recording and checks that the game ended
// on its final frame. Incomplete recordings only need to run cleanly.
func Verify(r Replay) (core.GameState, error) {
	g, err := registry.Create(r.GameID)
	if err != nil {
		return core.GameState{}, err
	}

	endTick, st, err := run(g, r)
	if err != nil {
		return st, err
	}
	if !r.Complete {
		return st, nil
	}
	if r.Ticks == 0 || endTick != r.Ticks-1 {
		return st, fmt.Errorf("%w: game ended at frame %d of %d", ErrDiverged, endTick, r.Ticks)
	}
	return st, nil
}

// Recorder captures the input frames of one game.
type Recorder struct {
	r Replay
}

// NewRecorder starts a recording for a game reset with cfg.
func NewRecorder(gameID string, cfg core.RuntimeConfig) *Recorder {
	cfg = cfg.Normalized()
	return &Recorder{r: Replay{
		GameID:   gameID,
		Seed:     cfg.Seed,
		TickRate: cfg.TickRate,
	}}
}

// Record appends the frame about to be passed to Step.
func (rc *Recorder) Record(in core.InputFrame) {
	if !in.Empty() {
		rc.r.Events = append(rc.r.Events, Event{Tick: rc.r.Ticks, Actions: in.List()})
	}
	rc.r.Ticks++
}

// Ticks returns the number of frames recorded so far.
func (rc *Recorder) Ticks() uint64 { return rc.r.Ticks }

// Finish returns the recording. complete marks that the game ended on the
// last recorded frame.
func (rc *Recorder) Finish(complete bool) Replay {
	out := rc.r
	out.Complete = complete
	out.Events = slices.Clone(rc.r.Events)
	out.CreatedAt = time.Now()
	return out
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerFiresOnlyAfterInterval(t *testing.T) {
	s := NewScheduler(DropInterval)

	assert.False(t, s.Advance(600*time.Millisecond))
	assert.False(t, s.Advance(400*time.Millisecond), "exactly one interval must not fire")
	assert.Equal(t, DropInterval, s.Accumulated())

	assert.True(t, s.Advance(time.Millisecond))
	assert.Equal(t, time.Duration(0), s.Accumulated())
}

func TestSchedulerResetsRatherThanCarrying(t *testing.T) {
	s := NewScheduler(DropInterval)

	assert.True(t, s.Advance(5*time.Second), "a long pause fires once")
	assert.Equal(t, time.Duration(0), s.Accumulated(), "remainder must be discarded")
	assert.False(t, s.Advance(16*time.Millisecond))
}

func TestSchedulerFrameCadence(t *testing.T) {
	s := NewScheduler(DropInterval)
	frame := time.Second / 60

	fired := 0
	for i := 0; i < 600; i++ {
		if s.Advance(frame) {
			fired++
		}
	}
	// 60 frames of 1/60s fall just short of the interval, so each drop
	// takes 61 frames.
	assert.Equal(t, 600/61, fired)
}

func TestSchedulerIgnoresNegativeElapsed(t *testing.T) {
	s := NewScheduler(DropInterval)
	s.Advance(100 * time.Millisecond)
	s.Advance(-time.Second)
	assert.Equal(t, 100*time.Millisecond, s.Accumulated())
}

func TestSchedulerDefaultInterval(t *testing.T) {
	assert.Equal(t, DropInterval, NewScheduler(0).Interval())
	assert.Equal(t, 250*time.Millisecond, NewScheduler(250*time.Millisecond).Interval())
}

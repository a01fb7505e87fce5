package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewClock(func() time.Time { return now })

	assert.Equal(t, 0, clock.Elapsed())
	assert.False(t, clock.Running())

	clock.Start()
	now = now.Add(5 * time.Second)
	assert.Equal(t, 5, clock.Elapsed())

	clock.Pause()
	now = now.Add(10 * time.Second)
	assert.Equal(t, 5, clock.Elapsed())

	clock.Resume()
	now = now.Add(2500 * time.Millisecond)
	assert.Equal(t, 7, clock.Elapsed())
	assert.Equal(t, 7500*time.Millisecond, clock.Duration())

	// Resuming a running clock changes nothing.
	clock.Resume()
	assert.Equal(t, 7, clock.Elapsed())

	clock.Start()
	assert.Equal(t, 0, clock.Elapsed())
}

func TestGameClockSurvivesReset(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	game := New(DefaultRules())
	game.Clock().SetTimeSource(func() time.Time { return now })
	game.Clock().Start()
	now = now.Add(time.Minute)
	assert.Equal(t, 60, game.Clock().Elapsed())

	game.Reset()
	assert.False(t, game.Clock().Running())
	assert.Equal(t, 0, game.Clock().Elapsed())

	game.Clock().Start()
	now = now.Add(3 * time.Second)
	assert.Equal(t, 3, game.Clock().Elapsed())
}

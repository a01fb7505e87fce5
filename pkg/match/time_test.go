package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/emberlord/pkg/engine"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		str  string
		want TimeControl
	}{
		{"15+0", TimeControl{MovesToGo: -1, Base: 15 * time.Second}},
		{"1/15+0", TimeControl{MovesToGo: 1, Base: 15 * time.Second}},
		{"40/60+0.5", TimeControl{MovesToGo: 40, Base: time.Minute, Inc: 500 * time.Millisecond}},
		{"8.5+1", TimeControl{MovesToGo: -1, Base: 8500 * time.Millisecond, Inc: time.Second}},
	}

	for _, test := range tests {
		t.Run(test.str, func(t *testing.T) {
			tc, err := ParseTime(test.str)
			require.NoError(t, err)
			assert.Equal(t, test.want, tc)
			assert.Equal(t, test.str, tc.String())
		})
	}
}

func TestParseTimeErrors(t *testing.T) {
	for _, str := range []string{"", "15", "x+1", "15+y", "a/15+0", "0/15+0", "0+0", "10+-1"} {
		_, err := ParseTime(str)
		assert.Error(t, err, str)
	}
}

func TestTurnClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	at := func(seconds int) time.Time { return start.Add(time.Duration(seconds) * time.Second) }

	clock := newTurnClock(TimeControl{MovesToGo: 2, Base: 10 * time.Second, Inc: time.Second})
	a, b := engine.SideA, engine.SideB

	clock.begin(at(0))
	assert.Equal(t, 7*time.Second, clock.left(a, a, at(3)))
	assert.Equal(t, 10*time.Second, clock.left(b, a, at(3)))

	// 10 - 3 + 1
	clock.finish(a, at(3))
	assert.Equal(t, 8*time.Second, clock.left(a, b, at(3)))
	assert.Equal(t, at(13), clock.expiry(b))

	clock.finish(b, at(5))
	assert.Equal(t, 9*time.Second, clock.left(b, a, at(5)))

	// a's second turn tops it back up to the base time.
	clock.finish(a, at(12))
	assert.Equal(t, 10*time.Second, clock.left(a, b, at(12)))

	clock.pause(b, at(14))
	assert.Equal(t, 7*time.Second, clock.left(b, b, at(100)))
}

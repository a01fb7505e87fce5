package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		turn   string
		pieces map[string]string

		decided bool
		outcome Outcome
	}{
		{
			name:   "eradication",
			turn:   "b",
			pieces: map[string]string{"b1": "a"},

			decided: true,
			outcome: Outcome{Winner: SideA, Reason: ReasonEradication},
		},
		{
			name:   "stuck",
			turn:   "b",
			pieces: map[string]string{"a2": "b", "b1": "a"},

			decided: true,
			outcome: Outcome{Winner: SideA, Reason: ReasonStuck},
		},
		{
			name:   "blocked side with a capture",
			turn:   "b",
			pieces: map[string]string{"c4": "b", "b3": "a", "d3": "a"},

			decided: false,
		},
		{
			name:   "only the side to move counts",
			turn:   "a",
			pieces: map[string]string{"a2": "b", "b1": "a"},

			decided: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game := setup(t, test.turn, test.pieces)
			before := game.Position()

			outcome, decided := game.Winner()
			assert.Equal(t, test.decided, decided)
			if test.decided {
				assert.Equal(t, test.outcome, outcome)
				assert.Nil(t, game.Actions())
			}

			assert.Equal(t, before, game.Position())
		})
	}
}

func TestWinnerAtStart(t *testing.T) {
	_, decided := New(DefaultRules()).Winner()
	assert.False(t, decided)
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "Eradication", ReasonEradication.String())
	assert.Equal(t, "No Moves Left", ReasonStuck.String())
}

package perft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/emberlord/pkg/engine"
)

func TestCountStart(t *testing.T) {
	game := engine.New(engine.DefaultRules())

	assert.Equal(t, uint64(1), Count(game, 0))
	assert.Equal(t, uint64(7), Count(game, 1))
	assert.Equal(t, uint64(49), Count(game, 2))

	// Counting never touches the game itself.
	assert.Equal(t, engine.StartPosition, game.Position())
}

func TestRunMatchesCount(t *testing.T) {
	positions := []string{
		engine.StartPosition,
		"A1A-5/8/8/8/2b5/1a6/8/3B4 a",
	}

	for _, pos := range positions {
		game, err := engine.ParsePosition(pos, engine.DefaultRules())
		require.NoError(t, err)

		for depth := 1; depth <= 4; depth++ {
			nodes, divides, err := Run(context.Background(), game, depth, 4)
			require.NoError(t, err)
			assert.Equal(t, Count(game, depth), nodes, "%s at depth %d", pos, depth)

			var sum uint64
			for _, divide := range divides {
				sum += divide.Nodes
			}
			assert.Equal(t, nodes, sum)
			assert.Len(t, divides, len(game.Actions()))
		}

		assert.Equal(t, pos, game.Position())
	}
}

func TestDecidedPositionIsLeaf(t *testing.T) {
	game, err := engine.ParsePosition("8/8/8/8/8/8/8/1a6 b", engine.DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), Count(game, 3))

	nodes, divides, err := Run(context.Background(), game, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nodes)
	assert.Empty(t, divides)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Run(ctx, engine.New(engine.DefaultRules()), 3, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

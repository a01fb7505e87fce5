// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"github.com/sirupsen/logrus"
)

// BurnColumn spends the power-up of a king of the side to move to remove
// every opposing piece in the given column, and ends the turn. It fails
// without changing anything if a capture chain is pending or the side to
// move has no king with an unused power-up.
//
// When several kings qualify, the one with the lowest Handle burns. Handles
// are handed out in row-major order when the board is set up, so the choice
// never depends on how pieces moved since.
func (game *Game) BurnColumn(col int) bool {
	return game.BurnWith(game.burner(), col)
}

// BurnWith is like BurnColumn but spends the power-up of the given king,
// which must be a king of the side to move with an unused power-up.
func (game *Game) BurnWith(king Handle, col int) bool {
	if err := game.validateBurn(king, col); err != nil {
		logrus.WithFields(logrus.Fields{
			"side": game.turn, "column": col,
		}).Debugf("engine: burn rejected: %v", err)
		return false
	}

	game.pieces[king].Rank = King{PowerUp: false}

	burnt := 0
	for row := 0; row < Size; row++ {
		victim := game.board[row][col]
		if victim != NoHandle && game.pieces[victim].Side != game.turn {
			game.remove(victim)
			burnt++
		}
	}

	logrus.WithFields(logrus.Fields{
		"side": game.turn, "column": col, "burnt": burnt,
	}).Debug("engine: column burnt")

	game.lastBurn = col
	game.endTurn()
	return true
}

// CanBurn reports whether the side to move may burn a column this turn.
func (game *Game) CanBurn() bool {
	return game.validateBurn(game.burner(), 0) == nil
}

// ValidateBurn reports why BurnColumn would reject burning the given
// column, or nil if it would accept it.
func (game *Game) ValidateBurn(col int) error {
	return game.validateBurn(game.burner(), col)
}

func (game *Game) validateBurn(king Handle, col int) error {
	switch {
	case col < 0 || col >= Size:
		return ErrOffBoard
	case game.chain != NoHandle:
		return ErrChainPending
	case !game.isLive(king):
		return ErrNoPowerUp
	case game.pieces[king].Side != game.turn || !game.pieces[king].HasPowerUp():
		return ErrNoPowerUp
	}
	return nil
}

// burner returns the lowest handle of a king of the side to move which
// still has its power-up, or NoHandle.
func (game *Game) burner() Handle {
	for handle, piece := range game.pieces {
		if game.live[handle] && piece.Side == game.turn && piece.HasPowerUp() {
			return Handle(handle)
		}
	}
	return NoHandle
}

// Penalize removes the given piece out of band, for example when its owner
// ran out of time. The piece is counted as captured for its own side, any
// capture chain is dropped and the turn ends. It reports whether a piece
// was removed.
func (game *Game) Penalize(handle Handle) bool {
	removed := game.isLive(handle)
	if removed {
		logrus.WithFields(logrus.Fields{
			"side": game.pieces[handle].Side, "square": game.pieces[handle].Square(),
		}).Debug("engine: piece penalized")
		game.remove(handle)
	}

	game.endTurn()
	return removed
}

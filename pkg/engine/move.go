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

// plan is a fully validated move, ready to be applied.
type plan struct {
	mover    Handle
	to       Square
	captured Handle // NoHandle for a non-capturing move
}

// Move moves the piece on (fromRow, fromCol) to (toRow, toCol) and reports
// whether the move was legal. An illegal move leaves the game untouched.
//
// After a capture the same piece keeps the move, and must keep capturing,
// for as long as it has a capture available. Any other successful move
// ends the turn.
func (game *Game) Move(fromRow, fromCol, toRow, toCol int) bool {
	from := Square{Row: fromRow, Col: fromCol}
	to := Square{Row: toRow, Col: toCol}

	mov, err := game.validate(from, to)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"from": from, "to": to, "side": game.turn,
		}).Debugf("engine: move rejected: %v", err)
		return false
	}

	game.apply(mov)
	return true
}

// Validate reports why Move would reject the given move, or nil if Move
// would accept it. It never changes the game.
func (game *Game) Validate(fromRow, fromCol, toRow, toCol int) error {
	_, err := game.validate(
		Square{Row: fromRow, Col: fromCol},
		Square{Row: toRow, Col: toCol},
	)
	return err
}

func (game *Game) validate(from, to Square) (plan, error) {
	if !from.OnBoard() || !to.OnBoard() {
		return plan{}, ErrOffBoard
	}

	mover := game.occupant(from)
	switch {
	case mover == NoHandle:
		return plan{}, ErrNoPiece
	case game.pieces[mover].Side != game.turn:
		return plan{}, ErrNotYourTurn
	case game.chain != NoHandle && mover != game.chain:
		return plan{}, ErrChainPending
	case game.occupant(to) != NoHandle:
		return plan{}, ErrOccupied
	}

	mustCapture := game.PlayerHasCapture(game.turn)

	if game.pieces[mover].IsKing() {
		return game.validateKing(mover, to, mustCapture)
	}
	return game.validateRegular(mover, to, mustCapture)
}

func (game *Game) validateRegular(mover Handle, to Square, mustCapture bool) (plan, error) {
	piece := game.pieces[mover]
	dRow, dCol := to.Row-piece.Row, to.Col-piece.Col

	switch {
	case abs(dRow) == 1 && abs(dCol) == 1:
		if dRow != piece.Side.Forward() {
			return plan{}, ErrIllegalGeometry
		}
		if mustCapture {
			return plan{}, ErrCaptureRequired
		}
		return plan{mover: mover, to: to, captured: NoHandle}, nil

	case abs(dRow) == 2 && abs(dCol) == 2:
		mid := game.occupant(Square{Row: piece.Row + dRow/2, Col: piece.Col + dCol/2})
		if mid == NoHandle || game.pieces[mid].Side == piece.Side {
			return plan{}, ErrIllegalGeometry
		}
		return plan{mover: mover, to: to, captured: mid}, nil

	default:
		return plan{}, ErrIllegalGeometry
	}
}

func (game *Game) validateKing(mover Handle, to Square, mustCapture bool) (plan, error) {
	piece := game.pieces[mover]
	dRow, dCol := to.Row-piece.Row, to.Col-piece.Col
	if dRow == 0 || abs(dRow) != abs(dCol) {
		return plan{}, ErrIllegalGeometry
	}

	stepRow, stepCol := sign(dRow), sign(dCol)

	// Collect every piece strictly between the two squares.
	encountered := NoHandle
	count := 0
	for row, col := piece.Row+stepRow, piece.Col+stepCol; row != to.Row; row, col = row+stepRow, col+stepCol {
		if handle := game.board[row][col]; handle != NoHandle {
			encountered = handle
			count++
		}
	}

	switch {
	case count == 0:
		if mustCapture {
			return plan{}, ErrCaptureRequired
		}
		return plan{mover: mover, to: to, captured: NoHandle}, nil

	case count == 1 && game.pieces[encountered].Side != piece.Side:
		return plan{mover: mover, to: to, captured: encountered}, nil

	default:
		return plan{}, ErrBlocked
	}
}

// apply executes a validated move, including promotion and the capture
// chain bookkeeping.
func (game *Game) apply(mov plan) {
	from := game.pieces[mov.mover].Square()
	game.relocate(mov.mover, mov.to)

	piece := &game.pieces[mov.mover]
	if !piece.IsKing() && piece.Row == piece.Side.PromotionRow() {
		piece.Rank = King{PowerUp: true}
		logrus.WithField("square", mov.to).Debug("engine: piece promoted")
	}

	fields := logrus.Fields{"side": piece.Side, "from": from, "to": mov.to}

	if mov.captured == NoHandle {
		logrus.WithFields(fields).Trace("engine: move")
		game.endTurn()
		return
	}

	fields["captured"] = game.pieces[mov.captured].Square()
	game.remove(mov.captured)

	if game.PieceHasCapture(mov.mover) {
		logrus.WithFields(fields).Trace("engine: capture, chain continues")
		game.chain = mov.mover
		return
	}

	logrus.WithFields(fields).Trace("engine: capture")
	game.endTurn()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

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

// Package engine implements the rules of emberlord, a draughts variant on
// an 8x8 board where promoted kings fly along diagonals and carry a single
// power-up which burns every opposing piece in a column.
//
// A Game is a plain state machine: every operation validates completely
// before it mutates anything and runs to completion before returning. A
// Game is not safe for concurrent use; callers that share one must
// serialize access themselves.
package engine

import (
	"github.com/sirupsen/logrus"
)

// Rules holds the configurable parts of a game.
type Rules struct {
	// FirstMover is the side which moves first after a reset.
	FirstMover Side
}

// DefaultRules returns the standard rules, in which side B moves first.
func DefaultRules() Rules {
	return Rules{FirstMover: SideB}
}

// Game is the complete state of a single game.
type Game struct {
	rules Rules

	// pieces is an arena indexed by Handle. Captured pieces stay in the
	// arena with live unset so that handles are never reused.
	pieces []Piece
	live   []bool

	// board maps every square to the Handle standing on it.
	board [Size][Size]Handle

	turn  Side
	chain Handle

	captured [SideN]int
	lastBurn int

	clock Clock
}

// New returns a Game set up in the standard opening position.
func New(rules Rules) *Game {
	game := &Game{rules: rules}
	game.Reset()
	return game
}

// Reset sets up the standard opening position: side A on the playable
// squares of rows 0-2 and side B on those of rows 5-7. It clears the
// captured counters, the capture chain and the clock.
func (game *Game) Reset() {
	game.clear()

	for row := 0; row < 3; row++ {
		for col := 0; col < Size; col++ {
			if playable(row, col) {
				game.place(Piece{Row: row, Col: col, Side: SideA, Rank: Regular{}})
			}
		}
	}

	for row := Size - 3; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if playable(row, col) {
				game.place(Piece{Row: row, Col: col, Side: SideB, Rank: Regular{}})
			}
		}
	}

	game.turn = game.rules.FirstMover
	logrus.WithField("first-mover", game.turn).Trace("engine: board reset")
}

// clear empties the board and zeroes all the bookkeeping.
func (game *Game) clear() {
	game.pieces = game.pieces[:0]
	game.live = game.live[:0]

	for row := range game.board {
		for col := range game.board[row] {
			game.board[row][col] = NoHandle
		}
	}

	game.chain = NoHandle
	game.captured = [SideN]int{}
	game.lastBurn = -1
	game.clock = Clock{now: game.clock.now}
}

// place adds a new piece to the arena and returns its Handle.
func (game *Game) place(piece Piece) Handle {
	handle := Handle(len(game.pieces))
	game.pieces = append(game.pieces, piece)
	game.live = append(game.live, true)
	game.board[piece.Row][piece.Col] = handle
	return handle
}

// remove takes a live piece off the board and counts it as captured.
func (game *Game) remove(handle Handle) {
	piece := game.pieces[handle]
	game.live[handle] = false
	game.board[piece.Row][piece.Col] = NoHandle
	game.captured[piece.Side]++
}

// relocate moves a live piece to a new square.
func (game *Game) relocate(handle Handle, to Square) {
	piece := &game.pieces[handle]
	game.board[piece.Row][piece.Col] = NoHandle
	piece.Row, piece.Col = to.Row, to.Col
	game.board[to.Row][to.Col] = handle
}

// endTurn hands the move to the other side and drops any capture chain.
func (game *Game) endTurn() {
	game.chain = NoHandle
	game.turn = game.turn.Other()
}

// Rules returns the rules the game was created with.
func (game *Game) Rules() Rules {
	return game.rules
}

// Turn returns the side to move.
func (game *Game) Turn() Side {
	return game.turn
}

// Chain returns the piece which must continue capturing, if any.
func (game *Game) Chain() (Handle, bool) {
	return game.chain, game.chain != NoHandle
}

// Captured returns the number of pieces of the given side removed so far.
func (game *Game) Captured(side Side) int {
	return game.captured[side]
}

// LastBurnColumn returns the column of the most recent burn, if any.
func (game *Game) LastBurnColumn() (int, bool) {
	return game.lastBurn, game.lastBurn >= 0
}

// Clock returns the game's elapsed time tracker.
func (game *Game) Clock() *Clock {
	return &game.clock
}

// PieceAt returns the piece standing on the given square, if any.
func (game *Game) PieceAt(row, col int) (Piece, bool) {
	handle, found := game.HandleAt(row, col)
	if !found {
		return Piece{}, false
	}
	return game.pieces[handle], true
}

// HandleAt returns the Handle of the piece standing on the given square.
func (game *Game) HandleAt(row, col int) (Handle, bool) {
	if !(Square{Row: row, Col: col}).OnBoard() {
		return NoHandle, false
	}

	handle := game.board[row][col]
	return handle, handle != NoHandle
}

// Piece returns the live piece referenced by the given Handle.
func (game *Game) Piece(handle Handle) (Piece, bool) {
	if !game.isLive(handle) {
		return Piece{}, false
	}
	return game.pieces[handle], true
}

// Handles returns the handles of all the live pieces of a side, in
// ascending order.
func (game *Game) Handles(side Side) []Handle {
	var handles []Handle
	for handle, piece := range game.pieces {
		if game.live[handle] && piece.Side == side {
			handles = append(handles, Handle(handle))
		}
	}
	return handles
}

// Count returns the number of live pieces of a side.
func (game *Game) Count(side Side) int {
	count := 0
	for handle, piece := range game.pieces {
		if game.live[handle] && piece.Side == side {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the game which shares no state with it.
func (game *Game) Clone() *Game {
	clone := *game
	clone.pieces = append([]Piece(nil), game.pieces...)
	clone.live = append([]bool(nil), game.live...)
	return &clone
}

func (game *Game) isLive(handle Handle) bool {
	return handle >= 0 && int(handle) < len(game.pieces) && game.live[handle]
}

// occupant returns the handle on an on-board square, or NoHandle.
func (game *Game) occupant(sq Square) Handle {
	return game.board[sq.Row][sq.Col]
}

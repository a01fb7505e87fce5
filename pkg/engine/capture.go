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

// diagonals are the four directions a piece can move or capture in.
var diagonals = [4]Square{
	{Row: +1, Col: +1},
	{Row: +1, Col: -1},
	{Row: -1, Col: +1},
	{Row: -1, Col: -1},
}

// PlayerHasCapture reports whether any live piece of the given side has a
// capture available.
func (game *Game) PlayerHasCapture(side Side) bool {
	for handle, piece := range game.pieces {
		if game.live[handle] && piece.Side == side && game.PieceHasCapture(Handle(handle)) {
			return true
		}
	}
	return false
}

// PieceHasCapture reports whether the given piece has a capture available.
//
// A regular piece captures by jumping an adjacent opposing piece onto the
// empty square right behind it, in any of the four diagonal directions. A
// king looks along each diagonal: the first occupied square must hold an
// opposing piece and the square right behind it must be empty.
func (game *Game) PieceHasCapture(handle Handle) bool {
	if !game.isLive(handle) {
		return false
	}

	piece := game.pieces[handle]
	for _, dir := range diagonals {
		if _, ok := game.landing(piece, dir); ok {
			return true
		}
	}
	return false
}

// landing returns the square a piece lands on when capturing in the given
// direction, if such a capture exists.
func (game *Game) landing(piece Piece, dir Square) (Square, bool) {
	sq := Square{Row: piece.Row + dir.Row, Col: piece.Col + dir.Col}

	// A king may slide over empty squares before reaching its victim.
	if piece.IsKing() {
		for sq.OnBoard() && game.occupant(sq) == NoHandle {
			sq.Row, sq.Col = sq.Row+dir.Row, sq.Col+dir.Col
		}
	}

	if !sq.OnBoard() {
		return Square{}, false
	}

	victim := game.occupant(sq)
	if victim == NoHandle || game.pieces[victim].Side == piece.Side {
		return Square{}, false
	}

	land := Square{Row: sq.Row + dir.Row, Col: sq.Col + dir.Col}
	if !land.OnBoard() || game.occupant(land) != NoHandle {
		return Square{}, false
	}

	return land, true
}

// ValidMoves returns the destination squares of the given piece. With
// captureOnly set only capture destinations are returned.
//
// A regular piece steps one square forward or jumps two squares over an
// opposing piece in any direction. A king lists every empty square along
// each diagonal up to the first obstruction and, if that obstruction is an
// opposing piece with an empty square right behind it, that landing square.
func (game *Game) ValidMoves(handle Handle, captureOnly bool) []Square {
	if !game.isLive(handle) {
		return nil
	}

	piece := game.pieces[handle]
	var moves []Square

	if !captureOnly {
		for _, dir := range diagonals {
			if !piece.IsKing() && dir.Row != piece.Side.Forward() {
				continue
			}

			sq := Square{Row: piece.Row + dir.Row, Col: piece.Col + dir.Col}
			for sq.OnBoard() && game.occupant(sq) == NoHandle {
				moves = append(moves, sq)
				if !piece.IsKing() {
					break
				}
				sq.Row, sq.Col = sq.Row+dir.Row, sq.Col+dir.Col
			}
		}
	}

	for _, dir := range diagonals {
		if land, ok := game.landing(piece, dir); ok {
			moves = append(moves, land)
		}
	}

	return moves
}

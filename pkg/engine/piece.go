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

import "fmt"

// Size is the width and height of the board.
const Size = 8

// Side represents one of the two players.
type Side uint8

const (
	SideA Side = iota // starts on rows 0-2, moves towards row 7
	SideB             // starts on rows 5-7, moves towards row 0

	SideN = 2
)

// Other returns the opponent of the given Side.
func (side Side) Other() Side {
	return side ^ 1
}

// Forward returns the row delta of a regular piece's simple move.
func (side Side) Forward() int {
	if side == SideA {
		return +1
	}
	return -1
}

// PromotionRow returns the farthest row for the given Side.
func (side Side) PromotionRow() int {
	if side == SideA {
		return Size - 1
	}
	return 0
}

func (side Side) String() string {
	switch side {
	case SideA:
		return "a"
	case SideB:
		return "b"
	default:
		return "?"
	}
}

// ParseSide parses the single letter representation of a Side.
func ParseSide(str string) (Side, error) {
	switch str {
	case "a", "A":
		return SideA, nil
	case "b", "B":
		return SideB, nil
	default:
		return 0, fmt.Errorf("parse side %q: %w", str, ErrBadSide)
	}
}

// Rank is the kind of a piece. It is either Regular or King, and only a
// King can carry a power-up charge.
type Rank interface {
	isRank()
}

// Regular is an unpromoted piece.
type Regular struct{}

// King is a promoted piece. PowerUp reports whether its single burn charge
// is still unused.
type King struct {
	PowerUp bool
}

func (Regular) isRank() {}
func (King) isRank()    {}

// Piece is a single live piece on the board.
type Piece struct {
	Row, Col int
	Side     Side
	Rank     Rank
}

// Square returns the square the piece is standing on.
func (piece Piece) Square() Square {
	return Square{Row: piece.Row, Col: piece.Col}
}

// IsKing reports whether the piece has been promoted.
func (piece Piece) IsKing() bool {
	_, ok := piece.Rank.(King)
	return ok
}

// HasPowerUp reports whether the piece is a King with an unused charge.
func (piece Piece) HasPowerUp() bool {
	king, ok := piece.Rank.(King)
	return ok && king.PowerUp
}

// Symbol returns the piece as written in position notation: the side's
// letter, capitalized for kings, with a trailing '-' once a king has spent
// its power-up.
func (piece Piece) Symbol() string {
	switch rank := piece.Rank.(type) {
	case King:
		symbol := string(rune('A' + piece.Side))
		if !rank.PowerUp {
			symbol += "-"
		}
		return symbol
	default:
		return string(rune('a' + piece.Side))
	}
}

// Handle is a stable reference to a piece of a Game. Handles are assigned
// when the pieces are placed and stay valid for as long as the piece lives,
// even as it changes squares.
type Handle int

// NoHandle is the Handle of no piece.
const NoHandle Handle = -1

// Square is a location on the board.
type Square struct {
	Row, Col int
}

// OnBoard reports whether the square lies inside the board.
func (sq Square) OnBoard() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// String returns the square's name, from a1 (row 0, column 0) to h8.
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col, '1'+sq.Row)
}

// ParseSquare parses a square's name like c3.
func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return Square{}, fmt.Errorf("parse square %q: %w", str, ErrBadSquare)
	}

	sq := Square{
		Col: int(str[0] - 'a'),
		Row: int(str[1] - '1'),
	}

	if !sq.OnBoard() {
		return Square{}, fmt.Errorf("parse square %q: %w", str, ErrBadSquare)
	}

	return sq, nil
}

// playable reports whether pieces may ever stand on the square.
func playable(row, col int) bool {
	return (row+col)%2 == 1
}

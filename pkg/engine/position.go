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
	"fmt"
	"strconv"
	"strings"
)

// StartPosition is the opening position in position notation.
const StartPosition = "b1b1b1b1/1b1b1b1b/b1b1b1b1/8/8/1a1a1a1a/a1a1a1a1/1a1a1a1a b"

// ParsePosition sets up a game from its position notation.
//
// The notation lists the rows from row 8 down to row 1 separated by '/'.
// Inside a row 'a' and 'b' are regular pieces of either side, 'A' and 'B'
// are kings with their power-up, a king followed by '-' has spent it, and
// digits skip empty squares. A second field names the side to move.
//
//	b1b1b1b1/1b1b1b1b/b1b1b1b1/8/8/1a1a1a1a/a1a1a1a1/1a1a1a1a b
func ParsePosition(pos string, rules Rules) (*Game, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return nil, fmt.Errorf("parse position: expected 2 fields, got %d: %w", len(fields), ErrBadPosition)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != Size {
		return nil, fmt.Errorf("parse position: expected %d rows, got %d: %w", Size, len(rows), ErrBadPosition)
	}

	var grid [Size][Size]*Piece
	for i, rowStr := range rows {
		row := Size - 1 - i
		col := 0

		for j := 0; j < len(rowStr); j++ {
			char := rowStr[j]

			if char >= '1' && char <= '8' {
				col += int(char - '0')
				continue
			}

			if col >= Size {
				return nil, fmt.Errorf("parse position: row %d too long: %w", row+1, ErrBadPosition)
			}

			var piece Piece
			switch char {
			case 'a', 'b':
				piece = Piece{Side: Side(char - 'a'), Rank: Regular{}}
			case 'A', 'B':
				spent := j+1 < len(rowStr) && rowStr[j+1] == '-'
				if spent {
					j++
				}
				piece = Piece{Side: Side(char - 'A'), Rank: King{PowerUp: !spent}}
			default:
				return nil, fmt.Errorf("parse position: unexpected %q: %w", char, ErrBadPosition)
			}

			if !playable(row, col) {
				return nil, fmt.Errorf("parse position: piece on light square %s: %w", Square{Row: row, Col: col}, ErrBadPosition)
			}

			piece.Row, piece.Col = row, col
			grid[row][col] = &piece
			col++
		}

		if col != Size {
			return nil, fmt.Errorf("parse position: row %d has %d squares: %w", row+1, col, ErrBadPosition)
		}
	}

	turn, err := ParseSide(fields[1])
	if err != nil {
		return nil, fmt.Errorf("parse position: %w", err)
	}

	game := &Game{rules: rules}
	game.clear()

	// Place in row-major order, the same order Reset uses.
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if grid[row][col] != nil {
				game.place(*grid[row][col])
			}
		}
	}

	game.turn = turn
	return game, nil
}

// Position returns the game's position notation. Capture counters, the
// capture chain and the clock are not part of it.
func (game *Game) Position() string {
	var pos strings.Builder

	for row := Size - 1; row >= 0; row-- {
		gaps := 0
		for col := 0; col < Size; col++ {
			handle := game.board[row][col]
			if handle == NoHandle {
				gaps++
				continue
			}

			if gaps > 0 {
				pos.WriteString(strconv.Itoa(gaps))
				gaps = 0
			}

			pos.WriteString(game.pieces[handle].Symbol())
		}

		if gaps > 0 {
			pos.WriteString(strconv.Itoa(gaps))
		}

		if row > 0 {
			pos.WriteByte('/')
		}
	}

	pos.WriteByte(' ')
	pos.WriteString(game.turn.String())
	return pos.String()
}

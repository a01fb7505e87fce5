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
	"strings"
)

// ActionKind distinguishes the two things a side can do on its turn.
type ActionKind uint8

const (
	ActionMove ActionKind = iota
	ActionBurn
)

// Action is a single move or burn.
type Action struct {
	Kind ActionKind

	// From and To are set for moves. Capture is informational and set by
	// Actions; Apply does not look at it.
	From, To Square
	Capture  bool

	// Column is set for burns.
	Column int
}

// Actions returns every legal action of the side to move: each square a
// piece may move to, honoring the capture chain and mandatory captures,
// and one burn per column if a burn is allowed. A decided game has no
// legal actions.
func (game *Game) Actions() []Action {
	if _, decided := game.Winner(); decided {
		return nil
	}

	mustCapture := game.PlayerHasCapture(game.turn)

	movers := game.Handles(game.turn)
	if game.chain != NoHandle {
		movers = []Handle{game.chain}
	}

	var actions []Action
	for _, mover := range movers {
		piece := game.pieces[mover]

		for _, dir := range diagonals {
			for dist := 1; ; dist++ {
				to := Square{Row: piece.Row + dir.Row*dist, Col: piece.Col + dir.Col*dist}
				if !to.OnBoard() || (!piece.IsKing() && dist > 2) {
					break
				}

				if game.occupant(to) != NoHandle {
					continue
				}

				var mov plan
				var err error
				if piece.IsKing() {
					mov, err = game.validateKing(mover, to, mustCapture)
				} else {
					mov, err = game.validateRegular(mover, to, mustCapture)
				}

				if err == nil {
					actions = append(actions, Action{
						Kind:    ActionMove,
						From:    piece.Square(),
						To:      to,
						Capture: mov.captured != NoHandle,
					})
				}
			}
		}
	}

	if game.CanBurn() {
		for col := 0; col < Size; col++ {
			actions = append(actions, Action{Kind: ActionBurn, Column: col})
		}
	}

	return actions
}

// Apply performs the given action and reports whether it was legal.
func (game *Game) Apply(action Action) bool {
	switch action.Kind {
	case ActionMove:
		return game.Move(action.From.Row, action.From.Col, action.To.Row, action.To.Col)
	case ActionBurn:
		return game.BurnColumn(action.Column)
	default:
		return false
	}
}

// String returns the action in the notation understood by ParseAction.
func (action Action) String() string {
	switch action.Kind {
	case ActionBurn:
		return fmt.Sprintf("burn %c", 'a'+action.Column)
	default:
		separator := "-"
		if action.Capture {
			separator = "x"
		}
		return action.From.String() + separator + action.To.String()
	}
}

// ParseAction parses an action. Moves are written as two squares, either
// joined by '-' or 'x' or separated by a space ("c3-d4", "c3xe5", "c3 d4",
// "c3d4"), and burns as "burn" followed by the column's letter ("burn e").
func ParseAction(str string) (Action, error) {
	str = strings.ToLower(strings.TrimSpace(str))

	if column, found := strings.CutPrefix(str, "burn"); found {
		column = strings.TrimSpace(column)
		if len(column) != 1 || column[0] < 'a' || column[0] >= 'a'+Size {
			return Action{}, fmt.Errorf("parse action %q: bad column: %w", str, ErrBadAction)
		}
		return Action{Kind: ActionBurn, Column: int(column[0] - 'a')}, nil
	}

	squares := strings.FieldsFunc(str, func(r rune) bool {
		return r == '-' || r == 'x' || r == ' '
	})

	// Also accept the two squares written back to back.
	if len(squares) == 1 && len(squares[0]) == 4 {
		squares = []string{squares[0][:2], squares[0][2:]}
	}

	if len(squares) != 2 {
		return Action{}, fmt.Errorf("parse action %q: %w", str, ErrBadAction)
	}

	from, err := ParseSquare(squares[0])
	if err != nil {
		return Action{}, fmt.Errorf("parse action: %w", err)
	}

	to, err := ParseSquare(squares[1])
	if err != nil {
		return Action{}, fmt.Errorf("parse action: %w", err)
	}

	return Action{
		Kind:    ActionMove,
		From:    from,
		To:      to,
		Capture: strings.Contains(str, "x"),
	}, nil
}

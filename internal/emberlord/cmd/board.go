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

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"laptudirm.com/x/emberlord/pkg/engine"
	"laptudirm.com/x/emberlord/pkg/match"
)

// palette colors the board. Side a plays red and side b blue.
type palette struct {
	sides [engine.SideN]*color.Color
	chain *color.Color
	burnt *color.Color
	dim   *color.Color
}

func newPalette(colored bool) palette {
	p := palette{
		sides: [engine.SideN]*color.Color{
			engine.SideA: color.New(color.FgRed, color.Bold),
			engine.SideB: color.New(color.FgBlue, color.Bold),
		},
		chain: color.New(color.FgYellow, color.Bold, color.Underline),
		burnt: color.New(color.FgHiYellow),
		dim:   color.New(color.FgHiBlack),
	}

	for _, c := range []*color.Color{p.sides[engine.SideA], p.sides[engine.SideB], p.chain, p.burnt, p.dim} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// renderBoard prints the board with row 8 at the top, followed by a line
// of game status. Pieces are written as in position notation.
func renderBoard(w io.Writer, game *engine.Game, colored bool) {
	p := newPalette(colored)
	chain, chained := game.Chain()
	burnt, hasBurnt := game.LastBurnColumn()

	var str strings.Builder
	for row := engine.Size - 1; row >= 0; row-- {
		fmt.Fprintf(&str, "%d ", row+1)

		for col := 0; col < engine.Size; col++ {
			handle, found := game.HandleAt(row, col)
			if !found {
				switch {
				case (row+col)%2 == 0:
					str.WriteString("   ")
				case hasBurnt && col == burnt:
					str.WriteString(" " + p.burnt.Sprint("* "))
				default:
					str.WriteString(" " + p.dim.Sprint(". "))
				}
				continue
			}

			piece, _ := game.Piece(handle)

			c := p.sides[piece.Side]
			if chained && handle == chain {
				c = p.chain
			}

			str.WriteString(" " + c.Sprintf("%-2s", piece.Symbol()))
		}

		str.WriteByte('\n')
	}

	str.WriteString("   a  b  c  d  e  f  g  h\n")
	fmt.Fprint(w, str.String())
	fmt.Fprintln(w, status(game, p))
}

func status(game *engine.Game, p palette) string {
	if result, reason := match.GameResult(game); result != match.Ongoing {
		outcome, _ := game.Winner()
		return fmt.Sprintf("%s wins by %s (%s)",
			p.sides[outcome.Winner].Sprint("side "+outcome.Winner.String()),
			strings.ToLower(reason), match.ScoreOf(outcome))
	}

	line := fmt.Sprintf("%s to move, captured a:%d b:%d",
		p.sides[game.Turn()].Sprint("side "+game.Turn().String()),
		game.Captured(engine.SideA), game.Captured(engine.SideB))

	if chain, chained := game.Chain(); chained {
		piece, _ := game.Piece(chain)
		line += ", " + piece.Square().String() + " must keep capturing"
	} else if game.PlayerHasCapture(game.Turn()) {
		line += ", capture required"
	}

	if game.CanBurn() {
		line += ", burn available"
	}

	return line
}

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

package match

import "laptudirm.com/x/emberlord/pkg/engine"

// Result is the state of a game relative to the side to move.
type Result uint8

const (
	Ongoing Result = iota
	StmWins
	XtmWins
)

func (result Result) String() string {
	switch result {
	case Ongoing:
		return "ongoing"
	case StmWins:
		return "side to move wins"
	case XtmWins:
		return "side to move loses"
	default:
		return "?"
	}
}

// GameResult returns the game's Result along with the reason the game
// was decided, if it was.
func GameResult(game *engine.Game) (Result, string) {
	outcome, decided := game.Winner()
	if !decided {
		return Ongoing, ""
	}

	if outcome.Winner == game.Turn() {
		return StmWins, outcome.Reason.String()
	}
	return XtmWins, outcome.Reason.String()
}

// Score is a decided game's score from side a's point of view.
type Score int

const (
	Win  Score = +1
	Loss Score = -1
)

// GameLostBy maps the losing side to the game's Score.
var GameLostBy = [engine.SideN]Score{
	engine.SideA: Loss,
	engine.SideB: Win,
}

// ScoreOf returns the Score of a decided game.
func ScoreOf(outcome engine.Outcome) Score {
	return GameLostBy[outcome.Winner.Other()]
}

func (score Score) String() string {
	switch score {
	case Win:
		return "1-0"
	case Loss:
		return "0-1"
	default:
		return "?-?"
	}
}

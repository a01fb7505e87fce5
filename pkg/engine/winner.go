package engine

// Reason describes how a game was decided.
type Reason uint8

const (
	ReasonEradication Reason = iota + 1 // the loser has no pieces left
	ReasonStuck                         // the loser is to move and has no moves
)

func (reason Reason) String() string {
	switch reason {
	case ReasonEradication:
		return "Eradication"
	case ReasonStuck:
		return "No Moves Left"
	default:
		return "Unknown"
	}
}

// Outcome is the result of a decided game.
type Outcome struct {
	Winner Side
	Reason Reason
}

// Winner reports the outcome of the game if it has been decided. It never
// changes the game and is safe to call after every operation.
func (game *Game) Winner() (Outcome, bool) {
	for _, side := range [SideN]Side{SideA, SideB} {
		if game.Count(side) == 0 {
			return Outcome{Winner: side.Other(), Reason: ReasonEradication}, true
		}
	}

	// Captures are a subset of all the moves, so one search without the
	// capture-only restriction decides whether the side to move is stuck.
	for _, handle := range game.Handles(game.turn) {
		if len(game.ValidMoves(handle, false)) > 0 {
			return Outcome{}, false
		}
	}

	return Outcome{Winner: game.turn.Other(), Reason: ReasonStuck}, true
}

package match

import (
	"errors"
	"fmt"
	"strings"

	"laptudirm.com/x/emberlord/pkg/engine"
)

// CommandKind is the kind of a session command.
type CommandKind uint8

const (
	CmdAction   CommandKind = iota // play a move or a burn
	CmdBoard                       // show the board
	CmdMoves                       // list legal actions, or one piece's destinations
	CmdPosition                    // print the position notation
	CmdTime                        // show the clocks
	CmdPause
	CmdResume
	CmdNew // start over from the session's starting position
	CmdHelp
	CmdQuit
)

// Command is a parsed line of session input.
type Command struct {
	Kind CommandKind

	// Action is set for CmdAction.
	Action engine.Action

	// Square is set for CmdMoves when a square was given.
	Square    engine.Square
	HasSquare bool
}

// ErrUnknownCommand is returned by ParseCommand for input which is neither
// a keyword nor an action.
var ErrUnknownCommand = errors.New("unknown command")

var keywords = map[string]CommandKind{
	"board":    CmdBoard,
	"moves":    CmdMoves,
	"position": CmdPosition,
	"time":     CmdTime,
	"pause":    CmdPause,
	"resume":   CmdResume,
	"new":      CmdNew,
	"help":     CmdHelp,
	"quit":     CmdQuit,
	"exit":     CmdQuit,
}

// ParseCommand parses a line of session input. Anything which is not a
// keyword is parsed as an action.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("parse command: %w", ErrUnknownCommand)
	}

	kind, found := keywords[fields[0]]
	if !found {
		action, err := engine.ParseAction(line)
		if err != nil {
			return Command{}, fmt.Errorf("parse command %q: %w", line, errors.Join(ErrUnknownCommand, err))
		}
		return Command{Kind: CmdAction, Action: action}, nil
	}

	switch {
	case kind == CmdMoves && len(fields) == 2:
		sq, err := engine.ParseSquare(fields[1])
		if err != nil {
			return Command{}, fmt.Errorf("parse command: %w", err)
		}
		return Command{Kind: CmdMoves, Square: sq, HasSquare: true}, nil

	case len(fields) != 1:
		return Command{}, fmt.Errorf("parse command %q: unexpected arguments: %w", line, ErrUnknownCommand)
	}

	return Command{Kind: kind}, nil
}

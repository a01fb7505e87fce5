package engine

import "errors"

// Reasons for which a move or setup is rejected. The engine's mutating
// operations only report success, Validate and the parsers say why.
var (
	ErrOffBoard        = errors.New("square is off the board")
	ErrNoPiece         = errors.New("no piece on source square")
	ErrNotYourTurn     = errors.New("piece does not belong to the side to move")
	ErrChainPending    = errors.New("another piece must continue capturing")
	ErrOccupied        = errors.New("destination is occupied")
	ErrIllegalGeometry = errors.New("piece cannot move that way")
	ErrCaptureRequired = errors.New("a capture is available and must be taken")
	ErrBlocked         = errors.New("path is blocked")
	ErrNoPowerUp       = errors.New("no king with an unused power-up")
	ErrGameOver        = errors.New("game is already decided")

	ErrBadSquare   = errors.New("invalid square")
	ErrBadSide     = errors.New("invalid side")
	ErrBadPosition = errors.New("invalid position")
	ErrBadAction   = errors.New("invalid action")
)

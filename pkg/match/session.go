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

// Package match runs games of emberlord for a front end: it parses text
// commands, keeps the turn clocks the engine knows nothing about and
// reports results.
package match

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/emberlord/pkg/engine"
)

var (
	ErrPaused    = errors.New("game is paused")
	ErrNotPaused = errors.New("game is not paused")
)

// Options configures a Session.
type Options struct {
	Rules engine.Rules

	// Position is the starting position notation, the standard opening if
	// empty.
	Position string

	// TurnTime is the time control of both sides, nil for untimed games.
	TurnTime *TimeControl

	// Seed seeds the choice of the piece removed when a side runs out of
	// time.
	Seed int64

	// Now is the time source, time.Now if nil.
	Now func() time.Time
}

// Penalty is a piece removed because its side ran out of time.
type Penalty struct {
	Side    engine.Side
	Square  engine.Square
	Removed bool
}

func (penalty Penalty) String() string {
	if !penalty.Removed {
		return fmt.Sprintf("side %s ran out of time", penalty.Side)
	}
	return fmt.Sprintf("side %s ran out of time and lost the piece on %s", penalty.Side, penalty.Square)
}

// Reply is what a Session has to say about a command.
type Reply struct {
	Lines []string

	// Board is a copy of the game to be shown, if the command asked for it.
	Board *engine.Game

	// Penalties are the time penalties which fell due before the command.
	Penalties []Penalty

	Result Result
	Reason string

	Quit bool
}

// Session is a single game being played through text commands. All its
// methods are safe for concurrent use, so a ticker may call Tick while
// commands are being executed.
type Session struct {
	mu sync.Mutex

	id   uuid.UUID
	opts Options
	log  *logrus.Entry

	game  *engine.Game
	clock *turnClock
	rng   *rand.Rand
	now   func() time.Time

	started bool
	paused  bool

	history []engine.Action
}

// NewSession starts a new session.
func NewSession(opts Options) (*Session, error) {
	if opts.TurnTime != nil && opts.TurnTime.Base <= 0 {
		return nil, fmt.Errorf("new session: turn time %s has no time to play", opts.TurnTime)
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	session := &Session{
		id:   uuid.New(),
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
		now:  opts.Now,
	}
	session.log = logrus.WithField("session", session.id.String())

	if err := session.reset(); err != nil {
		return nil, err
	}

	session.log.WithFields(logrus.Fields{
		"position": session.game.Position(), "turn-time": opts.TurnTime,
	}).Debug("match: session started")
	return session, nil
}

// reset sets up the starting position and stops the clocks.
func (session *Session) reset() error {
	game := engine.New(session.opts.Rules)
	if session.opts.Position != "" {
		var err error
		game, err = engine.ParsePosition(session.opts.Position, session.opts.Rules)
		if err != nil {
			return fmt.Errorf("new session: %w", err)
		}
	}

	game.Clock().SetTimeSource(session.now)
	session.game = game

	session.clock = nil
	if session.opts.TurnTime != nil {
		session.clock = newTurnClock(*session.opts.TurnTime)
	}

	session.started, session.paused = false, false
	session.history = nil
	return nil
}

// ID returns the session's unique identifier.
func (session *Session) ID() uuid.UUID {
	return session.id
}

// Snapshot returns a copy of the current game.
func (session *Session) Snapshot() *engine.Game {
	session.mu.Lock()
	defer session.mu.Unlock()

	return session.game.Clone()
}

// History returns the actions played so far.
func (session *Session) History() []engine.Action {
	session.mu.Lock()
	defer session.mu.Unlock()

	return append([]engine.Action(nil), session.history...)
}

// Result returns the current result of the game.
func (session *Session) Result() (Result, string) {
	session.mu.Lock()
	defer session.mu.Unlock()

	return GameResult(session.game)
}

// Tick applies the time penalties which have fallen due and returns them.
func (session *Session) Tick() []Penalty {
	session.mu.Lock()
	defer session.mu.Unlock()

	return session.tick(session.now())
}

// tick penalizes every turn which ran out of time by now. Each expired
// turn ends at its expiry instant, so a long silence may cost several
// pieces, alternating between the sides.
func (session *Session) tick(now time.Time) []Penalty {
	if session.clock == nil {
		return nil
	}

	var penalties []Penalty
	for session.clock.running {
		if _, decided := session.game.Winner(); decided {
			break
		}

		side := session.game.Turn()
		expiry := session.clock.expiry(side)
		if now.Before(expiry) {
			break
		}

		penalties = append(penalties, session.penalize(side))
		session.clock.finish(side, expiry)
		session.settle(expiry)
	}

	return penalties
}

// penalize removes a random piece of the given side, which is to move.
func (session *Session) penalize(side engine.Side) Penalty {
	penalty := Penalty{Side: side}

	handles := session.game.Handles(side)
	if len(handles) == 0 {
		session.game.Penalize(engine.NoHandle)
		return penalty
	}

	handle := handles[session.rng.Intn(len(handles))]
	piece, _ := session.game.Piece(handle)

	penalty.Square = piece.Square()
	penalty.Removed = session.game.Penalize(handle)

	session.log.WithFields(logrus.Fields{
		"side": side, "square": penalty.Square,
	}).Info("match: out of time, piece removed")
	return penalty
}

// settle stops the clocks once the game is decided.
func (session *Session) settle(now time.Time) {
	outcome, decided := session.game.Winner()
	if !decided || !session.game.Clock().Running() {
		return
	}

	session.game.Clock().Pause()
	if session.clock != nil {
		session.clock.pause(session.game.Turn(), now)
	}

	session.log.WithFields(logrus.Fields{
		"winner": outcome.Winner, "reason": outcome.Reason,
		"elapsed": session.game.Clock().Elapsed(),
	}).Info("match: game decided")
}

// Exec executes a command. Time penalties which fell due are applied
// first and returned in the Reply even if the command itself fails.
func (session *Session) Exec(cmd Command) (Reply, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	now := session.now()

	var reply Reply
	reply.Penalties = session.tick(now)

	var err error
	switch cmd.Kind {
	case CmdAction:
		if err = session.play(cmd.Action, now); err == nil {
			reply.Board = session.game.Clone()
		}

	case CmdBoard:
		reply.Board = session.game.Clone()

	case CmdMoves:
		reply.Lines, err = session.moves(cmd)

	case CmdPosition:
		reply.Lines = []string{session.game.Position()}

	case CmdTime:
		reply.Lines = session.times(now)

	case CmdPause:
		err = session.pause(now)

	case CmdResume:
		err = session.resume(now)

	case CmdNew:
		err = session.reset()
		reply.Board = session.game.Clone()

	case CmdHelp:
		reply.Lines = help

	case CmdQuit:
		reply.Quit = true

	default:
		err = ErrUnknownCommand
	}

	reply.Result, reply.Reason = GameResult(session.game)

	if err != nil {
		session.log.WithError(err).Debug("match: command failed")
	}
	return reply, err
}

func (session *Session) play(action engine.Action, now time.Time) error {
	if _, decided := session.game.Winner(); decided {
		return engine.ErrGameOver
	}

	if session.paused {
		return ErrPaused
	}

	var err error
	switch action.Kind {
	case engine.ActionMove:
		err = session.game.Validate(action.From.Row, action.From.Col, action.To.Row, action.To.Col)
	case engine.ActionBurn:
		err = session.game.ValidateBurn(action.Column)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	if !session.started {
		session.started = true
		session.game.Clock().Start()
		if session.clock != nil {
			session.clock.begin(now)
		}
	}

	side := session.game.Turn()
	captured := session.game.Captured(side.Other())

	session.game.Apply(action)

	action.Capture = action.Kind == engine.ActionMove && session.game.Captured(side.Other()) > captured
	session.history = append(session.history, action)

	session.log.WithFields(logrus.Fields{
		"side": side, "action": action,
	}).Debug("match: action played")

	if session.clock != nil && session.game.Turn() != side {
		session.clock.finish(side, now)
	}

	session.settle(now)
	return nil
}

func (session *Session) moves(cmd Command) ([]string, error) {
	if !cmd.HasSquare {
		var actions []string
		for _, action := range session.game.Actions() {
			actions = append(actions, action.String())
		}
		return []string{strings.Join(actions, " ")}, nil
	}

	handle, found := session.game.HandleAt(cmd.Square.Row, cmd.Square.Col)
	if !found {
		return nil, fmt.Errorf("moves %s: %w", cmd.Square, engine.ErrNoPiece)
	}

	piece, _ := session.game.Piece(handle)

	var squares []string
	for _, sq := range session.game.ValidMoves(handle, session.game.PlayerHasCapture(piece.Side)) {
		squares = append(squares, sq.String())
	}
	return []string{strings.Join(squares, " ")}, nil
}

func (session *Session) times(now time.Time) []string {
	lines := []string{fmt.Sprintf("elapsed: %ds", session.game.Clock().Elapsed())}

	if session.clock != nil {
		for _, side := range []engine.Side{engine.SideA, engine.SideB} {
			left := session.clock.left(side, session.game.Turn(), now)
			lines = append(lines, fmt.Sprintf("%s: %.1fs left", side, left.Seconds()))
		}
	}

	return lines
}

func (session *Session) pause(now time.Time) error {
	if session.paused {
		return ErrPaused
	}

	session.paused = true
	session.game.Clock().Pause()
	if session.clock != nil {
		session.clock.pause(session.game.Turn(), now)
	}

	session.log.Debug("match: paused")
	return nil
}

func (session *Session) resume(now time.Time) error {
	if !session.paused {
		return ErrNotPaused
	}

	session.paused = false
	if session.started {
		if _, decided := session.game.Winner(); !decided {
			session.game.Clock().Resume()
			if session.clock != nil {
				session.clock.begin(now)
			}
		}
	}

	session.log.Debug("match: resumed")
	return nil
}

var help = []string{
	"c3-d4, c3xe5    move a piece",
	"burn e          burn a column with a charged king",
	"moves [square]  list legal actions, or a piece's destinations",
	"board           show the board",
	"position        print the position notation",
	"time            show the clocks",
	"pause, resume   stop and restart the clocks",
	"new             start over",
	"quit            leave",
}

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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"laptudirm.com/x/emberlord/pkg/engine"
)

// TimeControl is a per side time budget. Every side starts with Base and
// gets Inc after each of its turns. If MovesToGo is positive the budget is
// topped back up to Base every MovesToGo turns, so 1/15+0 gives each turn
// exactly fifteen seconds.
type TimeControl struct {
	MovesToGo int
	Base, Inc time.Duration
}

// ParseTime parses a time control written as movestogo/base+inc, where the
// movestogo part is optional and base and inc are in seconds.
func ParseTime(str string) (TimeControl, error) {
	var tc TimeControl

	movesStr, timeStr, found := strings.Cut(str, "/")
	tc.MovesToGo = -1
	if found {
		moves, err := strconv.Atoi(movesStr)
		if err != nil || moves <= 0 {
			return TimeControl{}, fmt.Errorf("parse tc: bad moves to go %q", movesStr)
		}
		tc.MovesToGo = moves
	} else {
		timeStr = movesStr
	}

	baseStr, incStr, found := strings.Cut(timeStr, "+")
	if !found {
		return TimeControl{}, errors.New("parse tc: increment not found")
	}

	inc, err := strconv.ParseFloat(incStr, 64)
	if err != nil {
		return TimeControl{}, fmt.Errorf("parse tc: %w", err)
	}

	base, err := strconv.ParseFloat(baseStr, 64)
	if err != nil {
		return TimeControl{}, fmt.Errorf("parse tc: %w", err)
	}

	if base <= 0 || inc < 0 {
		return TimeControl{}, fmt.Errorf("parse tc: %q has no time to play", str)
	}

	tc.Inc = time.Millisecond * time.Duration(inc*1000)
	tc.Base = time.Millisecond * time.Duration(base*1000)
	return tc, nil
}

func (tc TimeControl) String() string {
	seconds := func(d time.Duration) string {
		return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
	}

	str := seconds(tc.Base) + "+" + seconds(tc.Inc)
	if tc.MovesToGo > 0 {
		str = strconv.Itoa(tc.MovesToGo) + "/" + str
	}
	return str
}

// turnClock counts down the time of the side to move. It is driven by the
// Session, which owns the time source.
type turnClock struct {
	tc TimeControl

	remaining [engine.SideN]time.Duration
	turns     [engine.SideN]int

	// start is when the running span of the current turn began.
	start   time.Time
	running bool
}

func newTurnClock(tc TimeControl) *turnClock {
	return &turnClock{
		tc:        tc,
		remaining: [engine.SideN]time.Duration{tc.Base, tc.Base},
	}
}

// left returns the time the side has left at the given instant.
func (clock *turnClock) left(side engine.Side, toMove engine.Side, now time.Time) time.Duration {
	left := clock.remaining[side]
	if clock.running && side == toMove {
		left -= now.Sub(clock.start)
	}
	return left
}

// expiry returns the instant the side to move runs out of time.
func (clock *turnClock) expiry(toMove engine.Side) time.Time {
	return clock.start.Add(clock.remaining[toMove])
}

// begin starts the turn of the side to move at the given instant.
func (clock *turnClock) begin(now time.Time) {
	clock.start = now
	clock.running = true
}

// pause stops the countdown, keeping what is left.
func (clock *turnClock) pause(toMove engine.Side, now time.Time) {
	if !clock.running {
		return
	}

	clock.remaining[toMove] -= now.Sub(clock.start)
	clock.running = false
}

// finish closes the turn of the given side at the given instant, applying
// the increment and the periodic top up, and starts the next turn.
func (clock *turnClock) finish(side engine.Side, now time.Time) {
	clock.pause(side, now)

	clock.remaining[side] += clock.tc.Inc
	clock.turns[side]++

	if clock.tc.MovesToGo > 0 && clock.turns[side]%clock.tc.MovesToGo == 0 {
		clock.remaining[side] = clock.tc.Base
	}

	// A side which overran is refilled rather than carrying the debt.
	if clock.remaining[side] <= 0 {
		clock.remaining[side] = clock.tc.Base
	}

	clock.begin(now)
}

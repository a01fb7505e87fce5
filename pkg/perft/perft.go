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

// Package perft counts the leaves of the action tree of a position. The
// counts are a cheap and thorough consistency check of move generation.
package perft

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"laptudirm.com/x/emberlord/pkg/engine"
)

// Divide is the leaf count below a single root action.
type Divide struct {
	Action engine.Action
	Nodes  uint64
}

// Count returns the number of action sequences of the given length from
// the game's position. Decided positions are leaves. Every action counts
// as one ply, including each step of a capture chain.
func Count(game *engine.Game, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	actions := game.Actions()
	switch {
	case len(actions) == 0:
		return 1
	case depth == 1:
		return uint64(len(actions))
	}

	var nodes uint64
	for _, action := range actions {
		child := game.Clone()
		child.Apply(action)
		nodes += Count(child, depth-1)
	}

	return nodes
}

// Run is Count with the root actions split across workers, each counting
// on its own clone of the game. It also returns the per root action counts
// in the order the actions were generated. Run stops early with the
// context's error if it is canceled.
func Run(ctx context.Context, game *engine.Game, depth, workers int) (uint64, []Divide, error) {
	if depth == 0 {
		return 1, nil, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	actions := game.Actions()
	if len(actions) == 0 {
		return 1, nil, nil
	}

	divides := make([]Divide, len(actions))
	var total atomic.Uint64

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, action := range actions {
		i, action := i, action
		child := game.Clone()

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if !child.Apply(action) {
				return fmt.Errorf("perft: generated action %s rejected", action)
			}

			nodes := Count(child, depth-1)
			divides[i] = Divide{Action: action, Nodes: nodes}
			total.Add(nodes)

			logrus.WithFields(logrus.Fields{
				"action": action, "nodes": nodes,
			}).Trace("perft: root action counted")
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, nil, err
	}

	return total.Load(), divides, nil
}

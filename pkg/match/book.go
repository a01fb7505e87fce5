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
	"fmt"
	"math/rand"
	"os"
	"strings"

	"laptudirm.com/x/emberlord/pkg/engine"
)

// NewBook reads a book of starting positions, one position notation per
// line. Blank lines and lines starting with '#' are skipped. The strategy
// is either "random" or "sequential".
func NewBook(name string, strategy string) (*PositionBook, error) {
	file, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("position book: %w", err)
	}

	return ParseBook(string(file), strategy)
}

// ParseBook is like NewBook but reads the positions from a string.
func ParseBook(contents string, strategy string) (*PositionBook, error) {
	book := PositionBook{strategy: strategy, rand: rand.New(rand.NewSource(1))}

	for i, entry := range strings.Split(contents, "\n") {
		entry = strings.Trim(entry, "\n\r\t ")
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}

		if _, err := engine.ParsePosition(entry, engine.DefaultRules()); err != nil {
			return nil, fmt.Errorf("position book: line %d: %w", i+1, err)
		}

		book.entries = append(book.entries, entry)
	}

	if len(book.entries) == 0 {
		return nil, fmt.Errorf("position book: no positions")
	}

	switch strategy {
	case "random", "sequential":
	default:
		return nil, fmt.Errorf("position book: unknown strategy %q", strategy)
	}

	return &book, nil
}

// PositionBook is a list of starting positions.
type PositionBook struct {
	entries  []string
	strategy string
	current  int

	rand *rand.Rand
}

// Seed reseeds the random strategy.
func (book *PositionBook) Seed(seed int64) {
	book.rand.Seed(seed)
}

// Next moves to the next position of the book.
func (book *PositionBook) Next() {
	switch book.strategy {
	case "random":
		book.current = book.rand.Intn(len(book.entries))
	default:
		book.current = (book.current + 1) % len(book.entries)
	}
}

// Current returns the current position of the book.
func (book *PositionBook) Current() string {
	return book.entries[book.current]
}

// Len returns the number of positions in the book.
func (book *PositionBook) Len() int {
	return len(book.entries)
}

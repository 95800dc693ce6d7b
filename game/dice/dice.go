// Package dice provides the randomness abstraction used for dice rolls and
// uniform draws from card decks and question banks.
package dice

import "fmt"

// Source is the randomness provider for rolls and draws.
//
// Implementations must be safe for concurrent use: every session engine in a
// server shares one Source.
type Source interface {
	// Intn returns a non-negative random int in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// Roll holds the faces of a single roll.
type Roll struct {
	Dice []int `json:"dice"`
}

// Total returns the sum of all faces.
func (r Roll) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns an audit string like "[3 4] = 7".
func (r Roll) String() string {
	return fmt.Sprintf("%v = %d", r.Dice, r.Total())
}

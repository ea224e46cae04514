package game

import (
	"math/rand"
	"time"
)

// Rand is the randomness the engine consumes: phrase selection, spin
// velocity, and the first player of a round. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a time-seeded source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRand returns a deterministic source for replays and tests.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

package random

import (
	"math/rand"
	"sync"
)

// Source picks integers for policy decisions that are randomized by
// product design (e.g. settlement lag). It is an interface so tests
// can pin the draw.
type Source interface {
	// IntInRange returns a uniformly distributed integer in
	// [min, max], inclusive on both ends. min > max panics.
	IntInRange(min, max int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) IntInRange(min, max int) int {
	if min > max {
		panic("random: min > max")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

// NewSource returns a pseudo-random Source seeded with seed.
func NewSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

// Fixed is a Source that always returns value (clamped into range).
// It exists for deterministic tests.
type Fixed int

func (f Fixed) IntInRange(min, max int) int {
	v := int(f)
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

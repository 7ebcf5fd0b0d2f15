// Package random provides RandomSource implementations over math/rand/v2.
package random

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tejashwikalptaru/tunelist/internal/ports"
)

// Source draws 32-bit values, so lists larger than the range are reached by
// summing several draws.
//
// Thread-safety: This implementation is thread-safe.
type Source struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// New creates a source seeded from the runtime's random generator.
func New() *Source {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

// NewSeeded creates a deterministic source. Equal seeds yield equal sequences.
func NewSeeded(seed1, seed2 uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Next returns a value in [0, Max()].
func (s *Source) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(s.rng.Uint32())
}

// Max returns the largest value Next can return.
func (s *Source) Max() uint64 {
	return math.MaxUint32
}

// Verify that Source implements the RandomSource interface
var _ ports.RandomSource = (*Source)(nil)

// Package rng provides the random source used by yield and workshop rolls.
// Production code uses a locked math/rand source seeded from crypto/rand;
// tests inject a fixed seed (or a scripted source) to pin outcomes.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"sync"
)

// Source yields random numbers for probabilistic game events.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

type lockedSource struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

// New returns a source seeded from crypto/rand.
func New() Source {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand should not fail; fall back to a fixed seed rather than panic.
		return NewSeeded(1)
	}
	return NewSeeded(int64(binary.LittleEndian.Uint64(buf[:])))
}

// NewSeeded returns a deterministic source for a given seed.
func NewSeeded(seed int64) Source {
	return &lockedSource{r: mathrand.New(mathrand.NewSource(seed))}
}

// Scripted replays a fixed sequence of floats, wrapping around at the end.
// Intn maps the next float onto [0, n). Useful for exact-outcome tests.
type Scripted struct {
	Values []float64
	pos    int
}

func (s *Scripted) next() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

func (s *Scripted) Float64() float64 { return s.next() }

func (s *Scripted) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive n")
	}
	return int(s.next() * float64(n))
}

// Package random provides the injected randomness contract for the event
// pipeline. Selection and skill checks never touch a global generator; the
// same Source sequence reproduces the same outcomes.
package random

import (
	"crypto/rand"
	"encoding/binary"
)

// Source produces values in [0, 1).
type Source interface {
	Float() float64
}

// CryptoSource draws from crypto/rand. It is the production default.
type CryptoSource struct{}

// NewCrypto returns a crypto/rand backed source.
func NewCrypto() *CryptoSource {
	return &CryptoSource{}
}

// Float returns a uniform value in [0, 1).
func (*CryptoSource) Float() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// 53 bits of mantissa
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// Scripted replays a fixed sequence of draws, cycling when exhausted.
// Used by tests to force specific rolls.
type Scripted struct {
	values []float64
	index  int
}

// NewScripted creates a source that returns the given values in order.
func NewScripted(values ...float64) *Scripted {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Scripted{values: values}
}

// Float returns the next scripted value.
func (s *Scripted) Float() float64 {
	v := s.values[s.index%len(s.values)]
	s.index++
	return v
}

// Draws reports how many values have been consumed.
func (s *Scripted) Draws() int {
	return s.index
}

// Shuffle performs an unbiased Fisher-Yates permutation of n elements
// driven by src.
func Shuffle(n int, src Source, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(src.Float() * float64(i+1))
		if j > i {
			j = i
		}
		swap(i, j)
	}
}

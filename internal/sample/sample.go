// Package sample provides deterministic pseudo-random inputs for property
// checks over bit primitives.
package sample

import (
	"encoding/binary"
	"math/bits"

	"github.com/zeebo/xxh3"
)

// Source yields a reproducible stream of 64-bit values for a seed.
// Each value is the seeded xxHash3 of a running counter, so two sources
// with the same seed produce the same stream.
//
// A Source is not safe for concurrent use.
type Source struct {
	seed    uint64
	counter uint64
	buf     [8]byte
}

// New returns a Source for seed.
func New(seed uint64) *Source {
	return &Source{seed: seed}
}

// Uint64 returns the next value of the stream.
func (s *Source) Uint64() uint64 {
	binary.LittleEndian.PutUint64(s.buf[:], s.counter)
	s.counter++
	return xxh3.HashSeed(s.buf[:], s.seed)
}

// Position returns the next value mapped uniformly to [0, width).
func (s *Source) Position(width int) int {
	return int(FastRange32(s.Uint64(), uint32(width)))
}

// Count returns how many values the source has produced.
func (s *Source) Count() uint64 {
	return s.counter
}

// FastRange32 maps a 64-bit hash uniformly to [0, n) returning uint32.
// Uses the "fastrange" technique: multiply and take high bits.
func FastRange32(hash uint64, n uint32) uint32 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, uint64(n))
	return uint32(hi)
}

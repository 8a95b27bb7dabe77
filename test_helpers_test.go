package bitwise

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// propertyIterations is the number of random values tried per width.
const propertyIterations = 5000

// randomValue returns a random T. Every third value is sparse or dense so
// that extreme popcounts are exercised as well as typical ones.
func randomValue[T Unsigned](rng *rand.Rand) T {
	v := T(rng.Uint64())
	switch rng.IntN(3) {
	case 0:
		return v & T(rng.Uint64()) & T(rng.Uint64())
	case 1:
		return v | T(rng.Uint64()) | T(rng.Uint64())
	default:
		return v
	}
}

// edgeValues returns values at the boundaries of T.
func edgeValues[T Unsigned]() []T {
	w := Width[T]()
	top := T(1) << uint(w-1)
	return []T{
		0,
		1,
		top,
		top | 1,
		^T(0),
		^T(0) >> 1,
		^T(0) << 1,
		T(0xAAAAAAAAAAAAAAAA & uint64(^T(0))),
		T(0x5555555555555555 & uint64(^T(0))),
	}
}

// samples returns the edge values followed by n random values.
func samples[T Unsigned](rng *rand.Rand, n int) []T {
	vs := edgeValues[T]()
	for range n {
		vs = append(vs, randomValue[T](rng))
	}
	return vs
}

// requirePanicsWith fails unless fn panics with an error matching target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic value %v does not wrap %v", r, target)
		}
	}()
	fn()
}

// forEachWidth runs a generic subtest for every fixed-width unsigned type.
func forEachWidth(t *testing.T,
	t8 func(*testing.T), t16 func(*testing.T), t32 func(*testing.T), t64 func(*testing.T)) {
	t.Run("uint8", t8)
	t.Run("uint16", t16)
	t.Run("uint32", t32)
	t.Run("uint64", t64)
}

package bitwise

import (
	"math/bits"
	"testing"

	"github.com/bits-and-blooms/bitset"
)

func TestExtremesScenario(t *testing.T) {
	const v = uint8(0b11110000)
	if got := HighestSetBit(v); got != 0b10000000 {
		t.Errorf("HighestSetBit(0b%08b) = 0b%08b, want 0b10000000", v, got)
	}
	if got := LowestSetBit(v); got != 0b00010000 {
		t.Errorf("LowestSetBit(0b%08b) = 0b%08b, want 0b00010000", v, got)
	}
	if got := CountSetBits(v); got != 4 {
		t.Errorf("CountSetBits(0b%08b) = %d, want 4", v, got)
	}
}

func TestExtremesOfZero(t *testing.T) {
	if got := LowestSetBit(uint64(0)); got != 0 {
		t.Errorf("LowestSetBit(0) = 0x%X", got)
	}
	if got := HighestSetBit(uint64(0)); got != 0 {
		t.Errorf("HighestSetBit(0) = 0x%X", got)
	}
	if got := CountSetBits(uint32(0)); got != 0 {
		t.Errorf("CountSetBits(0) = %d", got)
	}
	if got := CountSetBits(^uint64(0)); got != 64 {
		t.Errorf("CountSetBits(all ones) = %d, want 64", got)
	}
}

// TestExtremesMatchOracles checks the three queries against math/bits and
// an independent bitset implementation.
func TestExtremesMatchOracles(t *testing.T) {
	forEachWidth(t, testExtremes[uint8], testExtremes[uint16], testExtremes[uint32], testExtremes[uint64])
}

func testExtremes[T Unsigned](t *testing.T) {
	rng := newTestRNG(t)
	w := Width[T]()
	for _, v := range samples[T](rng, propertyIterations) {
		set := bitset.From([]uint64{uint64(v)})

		count := CountSetBits(v)
		if want := int(set.Count()); count != want {
			t.Fatalf("CountSetBits(0x%X) = %d, bitset says %d", v, count, want)
		}
		if want := bits.OnesCount64(uint64(v)); count != want {
			t.Fatalf("CountSetBits(0x%X) = %d, OnesCount64 says %d", v, count, want)
		}
		if got := CountSetBits(^v); count+got != w {
			t.Fatalf("CountSetBits(0x%X) + CountSetBits(^0x%X) = %d, want %d", v, v, count+got, w)
		}

		low := LowestSetBit(v)
		high := HighestSetBit(v)
		if (low == 0) != (v == 0) || (high == 0) != (v == 0) {
			t.Fatalf("0x%X: lowest 0x%X, highest 0x%X; zero only for zero input", v, low, high)
		}
		if v == 0 {
			continue
		}
		if CountSetBits(low) != 1 || CountSetBits(high) != 1 {
			t.Fatalf("0x%X: lowest 0x%X and highest 0x%X must be single bits", v, low, high)
		}
		idx, ok := set.NextSet(0)
		if !ok || low != T(1)<<idx {
			t.Fatalf("LowestSetBit(0x%X) = 0x%X, bitset lowest index %d", v, low, idx)
		}
		if want := T(1) << uint(bits.Len64(uint64(v))-1); high != want {
			t.Fatalf("HighestSetBit(0x%X) = 0x%X, want 0x%X", v, high, want)
		}
	}
}

// TestHighestSetBitEverySingleBit catches masks that were not narrowed to
// the operand width: every single-bit value must map to itself.
func TestHighestSetBitEverySingleBit(t *testing.T) {
	forEachWidth(t, testSingleBits[uint8], testSingleBits[uint16], testSingleBits[uint32], testSingleBits[uint64])
}

func testSingleBits[T Unsigned](t *testing.T) {
	for i := range Width[T]() {
		b := T(1) << uint(i)
		if got := HighestSetBit(b); got != b {
			t.Errorf("HighestSetBit(1<<%d) = 0x%X", i, got)
		}
		if got := HighestSetBit(b | 1); got != b {
			t.Errorf("HighestSetBit(1<<%d | 1) = 0x%X", i, got)
		}
		if got := LowestSetBit(b | (b << 1)); got != b {
			t.Errorf("LowestSetBit(0b11<<%d) = 0x%X", i, got)
		}
		if got := CountSetBits(SetLower(T(0), i)); got != i+1 {
			t.Errorf("CountSetBits(SetLower(0, %d)) = %d", i, got)
		}
	}
}

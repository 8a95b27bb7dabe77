package bitwise

// upperHalves[s] selects the upper half of every 2^(s+1)-bit group.
// lowerHalves[s] is its complement. Both are truncated to the operand width
// on conversion, which yields the same masks for 8, 16 and 32-bit values.
var (
	upperHalves = [...]uint64{
		0xAAAAAAAAAAAAAAAA,
		0xCCCCCCCCCCCCCCCC,
		0xF0F0F0F0F0F0F0F0,
		0xFF00FF00FF00FF00,
		0xFFFF0000FFFF0000,
		0xFFFFFFFF00000000,
	}
	lowerHalves = [...]uint64{
		0x5555555555555555,
		0x3333333333333333,
		0x0F0F0F0F0F0F0F0F,
		0x00FF00FF00FF00FF,
		0x0000FFFF0000FFFF,
		0x00000000FFFFFFFF,
	}
)

// LowestSetBit returns v with only its lowest set bit kept, or 0 if v is 0.
func LowestSetBit[T Unsigned](v T) T {
	return v & (^v + 1)
}

// HighestSetBit returns v with only its highest set bit kept, or 0 if v is 0.
//
// Each step keeps whichever half of the remaining groups holds a set bit,
// starting from the two halves of the full word.
func HighestSetBit[T Unsigned](v T) T {
	for s := halvingSteps[T]() - 1; s >= 0; s-- {
		if upper := v & T(upperHalves[s]); upper != 0 {
			v = upper
		}
	}
	return v
}

// CountSetBits returns the population count of v.
func CountSetBits[T Unsigned](v T) int {
	for s := range halvingSteps[T]() {
		v = (v&T(upperHalves[s]))>>(uint(1)<<s) + v&T(lowerHalves[s])
	}
	return int(v)
}

// halvingSteps returns log2(W): the number of group sizes 1, 2, 4, ... W/2.
func halvingSteps[T Unsigned]() int {
	steps := 0
	for w := Width[T](); w > 1; w >>= 1 {
		steps++
	}
	return steps
}

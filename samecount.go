package bitwise

// NextSameCount returns the smallest value greater than v with the same
// number of set bits.
//
// The pivot is the lowest position i with bit i set and bit i+1 clear. That
// bit moves up to i+1 and the ones below i are packed at the bottom. Positions
// are scanned from 0 to W-2, so bit W-1 is never the low half of a pair.
//
// When no pivot exists (v is 0, all ones, or its ones are packed at the top)
// v is returned unchanged. Callers detect that by comparing with the input.
func NextSameCount[T Unsigned](v T) T {
	w := Width[T]()
	for i := 0; i < w-1; i++ {
		if Get(v, i) == 0 || Get(v, i+1) != 0 {
			continue
		}
		below := CountSetBits(ClearHigher(v, i))
		v = Set(ClearLower(v, i), i+1)
		if below > 0 {
			v = SetLower(v, below-1)
		}
		return v
	}
	return v
}

// PreviousSameCount returns the largest value less than v with the same
// number of set bits.
//
// The pivot is the lowest position i with bit i clear and bit i+1 set. Bit
// i+1 moves down to i and the ones below i are packed directly under it.
//
// When no pivot exists (v is 0, all ones, or its ones are packed at the
// bottom) v is returned unchanged.
func PreviousSameCount[T Unsigned](v T) T {
	w := Width[T]()
	for i := 0; i < w-1; i++ {
		if Get(v, i) != 0 || Get(v, i+1) == 0 {
			continue
		}
		below := CountSetBits(ClearHigher(v, i))
		v = ClearLower(Clear(v, i+1), i)
		// below+1 ones ending at bit i
		return v | GetLower(^T(0), below)<<uint(i-below)
	}
	return v
}

package bitwise

import (
	"fmt"
	"math/bits"

	biterrors "github.com/tamirms/bitwise/errors"
)

// Unsigned is the set of fixed-width unsigned integer types the package
// operates on. The bit width of a value is always derived from its type.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Width returns the number of bits in T.
func Width[T Unsigned]() int {
	return bits.Len64(uint64(^T(0)))
}

// CheckPosition reports whether i is a valid bit position for T.
// The returned error wraps errors.ErrPositionOutOfRange.
//
// The accessors in this package panic on an invalid position. Use
// CheckPosition first when the position comes from runtime input.
func CheckPosition[T Unsigned](i int) error {
	if w := Width[T](); i < 0 || i >= w {
		return fmt.Errorf("position %d, width %d: %w", i, w, biterrors.ErrPositionOutOfRange)
	}
	return nil
}

func mustPosition[T Unsigned](i int) {
	if err := CheckPosition[T](i); err != nil {
		panic(err)
	}
}

// lowMask returns a mask of bits 0..i inclusive.
// The shift amount is at most W-1, so i == W-1 saturates to all ones.
func lowMask[T Unsigned](i int) T {
	return ^T(0) >> uint(Width[T]()-1-i)
}

// highMask returns a mask of bits i..W-1 inclusive.
func highMask[T Unsigned](i int) T {
	return ^T(0) << uint(i)
}

func bit[T Unsigned](i int) T {
	return T(1) << uint(i)
}

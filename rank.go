package bitwise

import (
	"fmt"
	"math/bits"

	biterrors "github.com/tamirms/bitwise/errors"
)

// Binomial returns the number of ways to choose k of n bit positions.
// n must be in [0, 64]; the result is 0 when k is outside [0, n].
// Every such value fits in a uint64; the running product is carried in
// 128 bits so intermediate terms never overflow.
func Binomial(n, k int) uint64 {
	if n < 0 || n > 64 || k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	c := uint64(1)
	for i := range k {
		hi, lo := bits.Mul64(c, uint64(n-i))
		c, _ = bits.Div64(hi, lo, uint64(i+1))
	}
	return c
}

// Rank returns the position of v among all values of its width with the
// same number of set bits, in ascending order. The lowest such value has
// rank 0. Rank(NextSameCount(v)) == Rank(v)+1 whenever v has a successor.
func Rank[T Unsigned](v T) uint64 {
	var r uint64
	for j := 1; v != 0; j++ {
		low := LowestSetBit(v)
		r += Binomial(bits.TrailingZeros64(uint64(low)), j)
		v ^= low
	}
	return r
}

// Unrank returns the value of type T with the given number of set bits and
// the given rank. It is the inverse of Rank.
func Unrank[T Unsigned](ones int, rank uint64) (T, error) {
	w := Width[T]()
	if ones < 0 || ones > w {
		return 0, fmt.Errorf("%d ones, width %d: %w", ones, w, biterrors.ErrInvalidCount)
	}
	if total := Binomial(w, ones); rank >= total {
		return 0, fmt.Errorf("rank %d of %d: %w", rank, total, biterrors.ErrRankOutOfRange)
	}

	var v T
	p := w - 1
	for j := ones; j > 0; j-- {
		for Binomial(p, j) > rank {
			p--
		}
		v = Set(v, p)
		rank -= Binomial(p, j)
		p--
	}
	return v, nil
}

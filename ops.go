package bitwise

// Every function in this file panics if i is not in [0, Width[T]()).

// Get returns v with every bit except bit i cleared.
// The result is nonzero iff bit i of v is set.
func Get[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v & bit[T](i)
}

// GetLower returns the bits of v at positions <= i.
func GetLower[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v & lowMask[T](i)
}

// GetHigher returns the bits of v at positions >= i.
func GetHigher[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v & highMask[T](i)
}

// Set returns v with bit i set.
func Set[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v | bit[T](i)
}

// SetLower returns v with every bit at positions <= i set.
func SetLower[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v | lowMask[T](i)
}

// SetHigher returns v with every bit at positions >= i set.
func SetHigher[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v | highMask[T](i)
}

// Clear returns v with bit i cleared.
func Clear[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v &^ bit[T](i)
}

// ClearLower returns v with every bit at positions <= i cleared.
func ClearLower[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v &^ lowMask[T](i)
}

// ClearHigher returns v with every bit at positions >= i cleared.
func ClearHigher[T Unsigned](v T, i int) T {
	mustPosition[T](i)
	return v &^ highMask[T](i)
}

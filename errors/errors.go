// Package errors defines all exported error sentinels for the bitwise library.
//
// This is the single source of truth for error values. Both the top-level
// bitwise package and its internal packages import from here, so errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Argument errors
var (
	ErrPositionOutOfRange = errors.New("bitwise: bit position out of range")
	ErrInvalidWidth       = errors.New("bitwise: width must be 8, 16, 32 or 64")
	ErrInvalidCount       = errors.New("bitwise: set-bit count out of range for width")
	ErrRankOutOfRange     = errors.New("bitwise: rank exceeds number of combinations")
)

// Build errors
var (
	ErrTableTooLarge   = errors.New("bitwise: combination count exceeds maximum table size")
	ErrUnknownChecksum = errors.New("bitwise: unknown checksum algorithm")
)

// Table errors
var (
	ErrInvalidMagic   = errors.New("bitwise: invalid magic number")
	ErrInvalidVersion = errors.New("bitwise: unsupported version")
	ErrTruncatedFile  = errors.New("bitwise: table file is truncated")
	ErrCorruptedTable = errors.New("bitwise: table data is corrupted")
	ErrChecksumFailed = errors.New("bitwise: table checksum verification failed")
)

// Query errors
var (
	ErrTableClosed = errors.New("bitwise: table is closed")
	ErrNotFound    = errors.New("bitwise: value not in table")
)

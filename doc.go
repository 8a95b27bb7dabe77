// Package bitwise implements bit manipulation primitives over fixed-width
// unsigned integers, and memory-mapped tables of every value with a given
// number of set bits.
//
// All primitives are generic over Unsigned and pure: they take a value and
// return a new one. Bit positions run from 0 (least significant) to W-1,
// where W is Width[T](). A position outside that range is a programming
// error and panics with an error wrapping errors.ErrPositionOutOfRange;
// use CheckPosition to validate positions that come from input.
//
// # Basic Usage
//
// Single bits and ranges:
//
//	v := uint32(0xFDB86420)
//	bitwise.Get(v, 24)          // 0x01000000
//	bitwise.SetLower(v, 3)      // 0xFDB8642F
//	bitwise.ClearHigher(v, 20)  // 0x00086420
//
// Extremes and counting:
//
//	bitwise.LowestSetBit(v)     // 0x00000020
//	bitwise.HighestSetBit(v)    // 0x80000000
//	bitwise.CountSetBits(v)     // 15
//
// Stepping through values with the same number of set bits:
//
//	bitwise.NextSameCount(uint8(0b00001011))     // 0b00001101
//	bitwise.PreviousSameCount(uint8(0b00001101)) // 0b00001011
//
// Building and querying a combination table:
//
//	err := bitwise.Build(ctx, "combos.bwct", 32, 4, bitwise.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tbl, err := bitwise.Open("combos.bwct")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tbl.Close()
//
//	v, err := tbl.At(1000)
//	i, err := tbl.Find(v) // i == 1000
//
// # Package Structure
//
// The implementation is organized as follows:
//
//   - Primitives: bitwise.go (Unsigned, Width, positions), ops.go, extremes.go
//   - Same-count stepping: samecount.go (NextSameCount, PreviousSameCount)
//   - Combinatorics: rank.go (Binomial, Rank, Unrank)
//   - Printer: format.go (Format, AppendFormat, Sprint)
//   - Tables: table_writer.go (Build), table.go (Open, At, Find, Verify)
//   - Serialization: header.go (header, footer), checksum.go, internal/encoding/
//   - Configuration: options.go (BuildOption, With* functions)
//   - Platform: mapping_*.go (block reservation and madvise hints)
package bitwise

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tamirms/bitwise"
	"github.com/tamirms/bitwise/internal/sample"
)

func (a *app) newCheckCmd() *cobra.Command {
	var samples int
	var seed uint64
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the bit operation properties on deterministic samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples < 0 {
				return fmt.Errorf("--samples must not be negative, got %d", samples)
			}
			results := []struct {
				width int
				fails int
			}{
				{8, checkWidth[uint8](a.logger, seed, samples)},
				{16, checkWidth[uint16](a.logger, seed, samples)},
				{32, checkWidth[uint32](a.logger, seed, samples)},
				{64, checkWidth[uint64](a.logger, seed, samples)},
			}

			total := 0
			for _, r := range results {
				fmt.Fprintf(a.out, "%2d-bit: %d samples, %d violations\n", r.width, samples, r.fails)
				total += r.fails
			}
			if total > 0 {
				return fmt.Errorf("%d property violations", total)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&samples, "samples", "n", 10_000, "Samples per width")
	cmd.Flags().Uint64Var(&seed, "seed", 0x5EED, "Sample stream seed")
	return cmd
}

// checkWidth runs every property over n samples of T and returns the
// number of violations. Each violation is logged at Error.
func checkWidth[T bitwise.Unsigned](logger *slog.Logger, seed uint64, n int) int {
	w := bitwise.Width[T]()
	src := sample.New(seed ^ uint64(w))
	logger = logger.With("width", w)

	fails := 0
	check := func(ok bool, property string, v T, pos int) {
		if ok {
			return
		}
		fails++
		logger.Error("property violated",
			"property", property,
			"value", fmt.Sprintf("0x%X", uint64(v)),
			"pos", pos,
		)
	}

	for range n {
		v := T(src.Uint64())
		i := src.Position(w)

		check(bitwise.Get(bitwise.Set(v, i), i) != 0, "get after set", v, i)
		check(bitwise.Get(bitwise.Clear(v, i), i) == 0, "get after clear", v, i)
		check(bitwise.Clear(bitwise.Set(v, i), i) == bitwise.Clear(v, i), "clear overrides set", v, i)
		check(bitwise.Set(bitwise.Clear(v, i), i) == bitwise.Set(v, i), "set overrides clear", v, i)
		if i < w-1 {
			check(bitwise.GetLower(v, i)|bitwise.GetHigher(v, i+1) == v, "lower and higher partition", v, i)
		}
		check(bitwise.GetLower(v, i)&bitwise.GetHigher(v, i) == bitwise.Get(v, i), "lower and higher overlap", v, i)
		check(bitwise.CountSetBits(v)+bitwise.CountSetBits(^v) == w, "count complement", v, -1)

		low, high := bitwise.LowestSetBit(v), bitwise.HighestSetBit(v)
		if v == 0 {
			check(low == 0 && high == 0, "extremes of zero", v, -1)
		} else {
			check(bitwise.CountSetBits(low) == 1 && v&(low-1) == 0, "lowest set bit", v, -1)
			check(bitwise.CountSetBits(high) == 1 && v&^(high|(high-1)) == 0, "highest set bit", v, -1)
		}

		if next := bitwise.NextSameCount(v); next != v {
			check(bitwise.CountSetBits(next) == bitwise.CountSetBits(v) && next > v, "next keeps count and grows", v, -1)
			check(bitwise.PreviousSameCount(next) == v, "previous inverts next", v, -1)
			check(bitwise.Rank(next) == bitwise.Rank(v)+1, "next is adjacent", v, -1)
		}
		if prev := bitwise.PreviousSameCount(v); prev != v {
			check(bitwise.CountSetBits(prev) == bitwise.CountSetBits(v) && prev < v, "previous keeps count and shrinks", v, -1)
			check(bitwise.NextSameCount(prev) == v, "next inverts previous", v, -1)
		}
	}

	logger.Debug("width checked", "samples", n, "violations", fails)
	return fails
}

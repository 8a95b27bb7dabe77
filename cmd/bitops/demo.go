package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tamirms/bitwise"
	biterrors "github.com/tamirms/bitwise/errors"
)

type demoOptions struct {
	value    string
	width    int
	pos      int
	lowPos   int
	rangePos int
}

func (a *app) newDemoCmd() *cobra.Command {
	opts := demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the result of every bit operation on one value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(opts.value, opts.width)
			if err != nil {
				return err
			}
			switch opts.width {
			case 8:
				return runDemo(a.out, uint8(v), opts)
			case 16:
				return runDemo(a.out, uint16(v), opts)
			case 32:
				return runDemo(a.out, uint32(v), opts)
			case 64:
				return runDemo(a.out, v, opts)
			default:
				return fmt.Errorf("width %d: %w", opts.width, biterrors.ErrInvalidWidth)
			}
		},
	}

	cmd.Flags().StringVar(&opts.value, "value", "0xFDB86420", "Value to operate on (decimal, 0x, 0o or 0b)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 32, "Operand width: 8, 16, 32 or 64")
	cmd.Flags().IntVarP(&opts.pos, "pos", "p", 24, "Position for get, set and clear")
	cmd.Flags().IntVar(&opts.lowPos, "low", 3, "Position for set-lower and set-higher")
	cmd.Flags().IntVarP(&opts.rangePos, "range", "r", 20, "Position for clear-lower and clear-higher")
	return cmd
}

func runDemo[T bitwise.Unsigned](w io.Writer, v T, opts demoOptions) error {
	for _, p := range []int{opts.pos, opts.lowPos, opts.rangePos} {
		if err := bitwise.CheckPosition[T](p); err != nil {
			return err
		}
	}

	lines := []struct {
		label string
		v     T
	}{
		{"value", v},
		{fmt.Sprintf("get %d", opts.pos), bitwise.Get(v, opts.pos)},
		{fmt.Sprintf("set %d", opts.lowPos), bitwise.Set(v, opts.lowPos)},
		{fmt.Sprintf("set lower %d", opts.lowPos), bitwise.SetLower(v, opts.lowPos)},
		{fmt.Sprintf("set higher %d", opts.lowPos), bitwise.SetHigher(v, opts.lowPos)},
		{fmt.Sprintf("clear %d", opts.pos), bitwise.Clear(v, opts.pos)},
		{fmt.Sprintf("clear lower %d", opts.rangePos), bitwise.ClearLower(v, opts.rangePos)},
		{fmt.Sprintf("clear higher %d", opts.rangePos), bitwise.ClearHigher(v, opts.rangePos)},
		{"lowest set bit", bitwise.LowestSetBit(v)},
		{"highest set bit", bitwise.HighestSetBit(v)},
		{"previous", bitwise.PreviousSameCount(v)},
		{"next", bitwise.NextSameCount(v)},
	}

	buf := make([]byte, 0, 128)
	for _, l := range lines {
		buf = fmt.Appendf(buf[:0], "%-16s", l.label+":")
		buf = bitwise.AppendFormat(buf, l.v)
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-16s%d\n", "count:", bitwise.CountSetBits(v))
	return err
}

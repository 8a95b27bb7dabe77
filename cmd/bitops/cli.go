package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamirms/bitwise"
	biterrors "github.com/tamirms/bitwise/errors"
)

// app holds state shared by every subcommand.
type app struct {
	out      io.Writer
	errOut   io.Writer
	logLevel string
	logger   *slog.Logger
}

// newRootCmd builds the command tree. Output goes to out, logs to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{
		out:    out,
		errOut: errOut,
		logger: slog.New(slog.DiscardHandler),
	}

	rootCmd := &cobra.Command{
		Use:           "bitops",
		Short:         "Bit manipulation primitives and combination tables",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn",
		"Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		a.newDemoCmd(),
		a.newCheckCmd(),
		a.newTableCmd(),
	)
	return rootCmd
}

// parseValue accepts decimal, 0x, 0o and 0b literals.
func parseValue(s string, width int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q: %w", s, err)
	}
	if width < 64 && v>>uint(width) != 0 {
		return 0, fmt.Errorf("value 0x%X does not fit in %d bits", v, width)
	}
	return v, nil
}

// formatAs writes v through the printer at the given width.
func formatAs(w io.Writer, v uint64, width int) error {
	switch width {
	case 8:
		return bitwise.Format(w, uint8(v))
	case 16:
		return bitwise.Format(w, uint16(v))
	case 32:
		return bitwise.Format(w, uint32(v))
	case 64:
		return bitwise.Format(w, v)
	default:
		return fmt.Errorf("width %d: %w", width, biterrors.ErrInvalidWidth)
	}
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamirms/bitwise"
)

func (a *app) newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Build and inspect combination tables",
	}
	cmd.AddCommand(
		a.newTableBuildCmd(),
		a.newTableVerifyCmd(),
		a.newTableStatCmd(),
		a.newTableGetCmd(),
	)
	return cmd
}

func (a *app) newTableBuildCmd() *cobra.Command {
	var (
		width, ones, workers, chunk int
		checksum                    string
	)
	cmd := &cobra.Command{
		Use:   "build PATH",
		Short: "Write every value of a width with a fixed number of set bits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := bitwise.ParseChecksum(checksum)
			if err != nil {
				return err
			}
			start := time.Now()
			err = bitwise.Build(cmd.Context(), args[0], width, ones,
				bitwise.WithWorkers(workers),
				bitwise.WithChunkSize(chunk),
				bitwise.WithChecksum(id),
				bitwise.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "built %s: %d entries in %s\n",
				args[0], bitwise.Binomial(width, ones), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 32, "Value width: 8, 16, 32 or 64")
	cmd.Flags().IntVarP(&ones, "ones", "k", 4, "Set bits per value")
	cmd.Flags().IntVarP(&workers, "workers", "j", 1, "Chunks filled in parallel")
	cmd.Flags().IntVar(&chunk, "chunk", 0, "Entries per chunk (0 for default)")
	cmd.Flags().StringVar(&checksum, "checksum", bitwise.ChecksumXXHash64.String(), "Chunk hash: xxhash, xxh3 or murmur3")
	return cmd
}

func (a *app) newTableVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify PATH",
		Short: "Check a table's checksums, popcounts and ordering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := bitwise.Open(args[0])
			if err != nil {
				return err
			}
			defer tbl.Close()

			start := time.Now()
			if err := tbl.Verify(); err != nil {
				return fmt.Errorf("verify %s: %w", args[0], err)
			}
			a.logger.Info("table verified", "path", args[0], "elapsed", time.Since(start))
			fmt.Fprintf(a.out, "%s: ok (%d entries)\n", args[0], tbl.Len())
			return nil
		},
	}
}

func (a *app) newTableStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat PATH",
		Short: "Print table statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := bitwise.GetStats(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "width:      %d\n", st.Width)
			fmt.Fprintf(a.out, "ones:       %d\n", st.Ones)
			fmt.Fprintf(a.out, "entries:    %d\n", st.Entries)
			fmt.Fprintf(a.out, "entry size: %d\n", st.EntrySize)
			fmt.Fprintf(a.out, "chunks:     %d\n", st.Chunks)
			fmt.Fprintf(a.out, "checksum:   %s\n", st.Checksum)
			fmt.Fprintf(a.out, "size:       %d\n", st.TableSize)
			return nil
		},
	}
}

func (a *app) newTableGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH INDEX",
		Short: "Print the entry at INDEX",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := strconv.ParseUint(args[1], 0, 64)
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			tbl, err := bitwise.Open(args[0])
			if err != nil {
				return err
			}
			defer tbl.Close()

			v, err := tbl.At(i)
			if err != nil {
				return err
			}
			return formatAs(a.out, v, tbl.Width())
		},
	}
}

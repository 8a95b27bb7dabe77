// Bitops demonstrates the bitwise primitives, checks their properties over
// deterministic samples, and builds and inspects combination tables.
//
// Usage:
//
//	bitops demo --value 0xFDB86420 --width 32
//	bitops check --samples 100000
//	bitops table build combos.bwct --width 32 --ones 4 --workers 8
//	bitops table verify combos.bwct
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bitops: %v\n", err)
		os.Exit(1)
	}
}

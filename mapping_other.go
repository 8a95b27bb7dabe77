//go:build !linux && !darwin

package bitwise

import "os"

// reserveFile sizes f to size bytes. Blocks may not be reserved, so a full
// disk can still surface as SIGBUS during the fill.
func reserveFile(f *os.File, size int64) error {
	return f.Truncate(size)
}

func prefaultWrite([]byte) {}

func adviseSequential([]byte) {}

//go:build darwin

package bitwise

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// reserveFile sizes f to size bytes and reserves its blocks with
// F_PREALLOCATE, so a full disk fails here instead of raising SIGBUS while
// the mapping is written.
func reserveFile(f *os.File, size int64) error {
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Length:  size,
	}
	if err := unix.FcntlFstore(f.Fd(), unix.F_PREALLOCATE, &fst); errors.Is(err, unix.ENOSPC) {
		return err
	}
	// F_PREALLOCATE reserves space but leaves the size unchanged.
	return unix.Ftruncate(int(f.Fd()), size)
}

// prefaultWrite is a no-op: Darwin has no MADV_POPULATE_WRITE.
func prefaultWrite([]byte) {}

// adviseSequential hints that data will be read front to back.
func adviseSequential(data []byte) {
	if len(data) > 0 {
		_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	}
}

//go:build linux

package bitwise

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// madvPopulateWrite is MADV_POPULATE_WRITE, added in Linux 5.14.
// Older kernels reject it with EINVAL.
const madvPopulateWrite = 23

// reserveFile sizes f to size bytes and reserves its blocks, so a full disk
// fails here instead of raising SIGBUS while the mapping is written.
// Filesystems without fallocate (NFS, some FUSE mounts) are only truncated.
func reserveFile(f *os.File, size int64) error {
	fd := int(f.Fd())
	if err := unix.Fallocate(fd, 0, 0, size); errors.Is(err, unix.ENOSPC) {
		return err
	}
	return unix.Ftruncate(fd, size)
}

// prefaultWrite populates the page tables of a writable mapping up front.
func prefaultWrite(data []byte) {
	madvise(data, madvPopulateWrite)
}

// adviseSequential hints that data will be read front to back.
func adviseSequential(data []byte) {
	madvise(data, unix.MADV_SEQUENTIAL)
}

// madvise is best-effort: the advice only affects performance.
func madvise(data []byte, advice int) {
	if len(data) > 0 {
		_ = unix.Madvise(data, advice)
	}
}

package bitwise

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	biterrors "github.com/tamirms/bitwise/errors"
)

// ChecksumID selects the hash applied to each chunk of table entries.
// The per-chunk hashes are always folded with xxHash64.
type ChecksumID uint8

const (
	// ChecksumXXHash64 hashes chunks with xxHash64 (default).
	ChecksumXXHash64 ChecksumID = iota
	// ChecksumXXH3 hashes chunks with 64-bit xxHash3.
	ChecksumXXH3
	// ChecksumMurmur3 hashes chunks with the 64-bit half of MurmurHash3 x64_128.
	ChecksumMurmur3
)

var checksumNames = [...]string{
	ChecksumXXHash64: "xxhash",
	ChecksumXXH3:     "xxh3",
	ChecksumMurmur3:  "murmur3",
}

func (c ChecksumID) String() string {
	if c.valid() {
		return checksumNames[c]
	}
	return fmt.Sprintf("checksum(%d)", uint8(c))
}

func (c ChecksumID) valid() bool {
	return int(c) < len(checksumNames)
}

// ParseChecksum returns the ChecksumID named s ("xxhash", "xxh3" or "murmur3").
func ParseChecksum(s string) (ChecksumID, error) {
	for id, name := range checksumNames {
		if name == s {
			return ChecksumID(id), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, biterrors.ErrUnknownChecksum)
}

// sum hashes one chunk of entries.
func (c ChecksumID) sum(data []byte) uint64 {
	switch c {
	case ChecksumXXH3:
		return xxh3.Hash(data)
	case ChecksumMurmur3:
		return murmur3.Sum64(data)
	default:
		return xxhash.Sum64(data)
	}
}

package bitwise

import (
	"encoding/binary"

	biterrors "github.com/tamirms/bitwise/errors"
	"github.com/tamirms/bitwise/internal/encoding"
)

const (
	// magic number for combination table files
	// "BWCT" in little-endian
	magic = uint32(0x54435742)

	// version is the current format version
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header (64 bytes)
	headerSize = 64

	// footerSize is the exact size of the serialized footer (32 bytes)
	footerSize = 32

	// MaxTableEntries is the largest number of values a table may hold.
	MaxTableEntries = uint64(1) << 32
)

// header is the 64-byte file header.
//
// Layout:
//
//	Offset  Size  Field      Type
//	0       4     Magic      0x54435742 ("BWCT")
//	4       2     Version    0x0001
//	6       1     Width      uint8 (8, 16, 32 or 64)
//	7       1     Ones       uint8 (set bits per value)
//	8       1     EntrySize  uint8 (Width/8)
//	9       1     Checksum   uint8 (ChecksumID)
//	10      8     Count      uint64_le (Binomial(Width, Ones))
//	18      4     ChunkSize  uint32_le (entries per hashed chunk)
//	22      42    Reserved   [42]byte (zero)
type header struct {
	Magic     uint32
	Version   uint16
	Width     uint8
	Ones      uint8
	EntrySize uint8
	Checksum  ChecksumID
	Count     uint64
	ChunkSize uint32
	Reserved  [42]byte
}

// encodeTo serializes the header to an existing buffer.
func (h *header) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	buf[6] = h.Width
	buf[7] = h.Ones
	buf[8] = h.EntrySize
	buf[9] = uint8(h.Checksum)
	binary.LittleEndian.PutUint64(buf[10:18], h.Count)
	binary.LittleEndian.PutUint32(buf[18:22], h.ChunkSize)
	copy(buf[22:64], h.Reserved[:])
}

// decodeHeader parses and validates a 64-byte header.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, biterrors.ErrTruncatedFile
	}

	h := &header{
		Magic:     binary.LittleEndian.Uint32(buf[0:4]),
		Version:   binary.LittleEndian.Uint16(buf[4:6]),
		Width:     buf[6],
		Ones:      buf[7],
		EntrySize: buf[8],
		Checksum:  ChecksumID(buf[9]),
		Count:     binary.LittleEndian.Uint64(buf[10:18]),
		ChunkSize: binary.LittleEndian.Uint32(buf[18:22]),
	}
	copy(h.Reserved[:], buf[22:64])

	if h.Magic != magic {
		return nil, biterrors.ErrInvalidMagic
	}
	if h.Version != version {
		return nil, biterrors.ErrInvalidVersion
	}
	if !h.Checksum.valid() {
		return nil, biterrors.ErrUnknownChecksum
	}
	if es := encoding.EntrySize(int(h.Width)); es == 0 || int(h.EntrySize) != es {
		return nil, biterrors.ErrCorruptedTable
	}
	if h.Ones > h.Width || h.Count != Binomial(int(h.Width), int(h.Ones)) {
		return nil, biterrors.ErrCorruptedTable
	}
	if h.ChunkSize == 0 {
		return nil, biterrors.ErrCorruptedTable
	}

	return h, nil
}

// numChunks returns the number of hashed chunks in the entry region.
func (h *header) numChunks() int {
	return int((h.Count + uint64(h.ChunkSize) - 1) / uint64(h.ChunkSize))
}

// entrySize returns EntrySize as int for arithmetic convenience.
func (h *header) entrySize() int {
	return int(h.EntrySize)
}

// bodySize returns the size in bytes of the entry region.
func (h *header) bodySize() uint64 {
	return h.Count * uint64(h.EntrySize)
}

// fileSize returns the exact size of a table file with this header.
func (h *header) fileSize() uint64 {
	return headerSize + h.bodySize() + footerSize
}

// chunkBounds returns the entry range [first, first+n) of chunk c.
func (h *header) chunkBounds(c int) (first, n uint64) {
	first = uint64(c) * uint64(h.ChunkSize)
	return first, min(uint64(h.ChunkSize), h.Count-first)
}

// footer is the 32-byte file footer.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       8     BodyHash  uint64_le (xxHash64 over per-chunk hashes, in order)
//	8       24    Reserved  [24]byte (zero)
type footer struct {
	BodyHash uint64
	Reserved [24]byte
}

// encodeTo serializes the footer into an existing buffer.
func (f *footer) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.BodyHash)
	copy(buf[8:32], f.Reserved[:])
}

// decodeFooter parses a 32-byte footer.
func decodeFooter(buf []byte) (*footer, error) {
	if len(buf) < footerSize {
		return nil, biterrors.ErrTruncatedFile
	}

	f := &footer{
		BodyHash: binary.LittleEndian.Uint64(buf[0:8]),
	}
	copy(f.Reserved[:], buf[8:32])

	return f, nil
}

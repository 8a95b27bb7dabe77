// Package encoding packs fixed-width unsigned values into little-endian
// table entries.
//
// Entries are 1, 2, 4 or 8 bytes wide, one per supported value width.
// Any other size is a programming error and panics.
package encoding

import "encoding/binary"

// PutValue writes the low size bytes of v to buf in little-endian order.
// Panics if size is not 1, 2, 4 or 8, or if buf is shorter than size.
func PutValue(buf []byte, v uint64, size int) {
	switch size {
	case 1:
		buf[0] = uint8(v)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(buf, v)
	default:
		panic("encoding: PutValue: unsupported entry size")
	}
}

// Value reads a little-endian value of size bytes from buf.
// It is the read counterpart of PutValue.
func Value(buf []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf))
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf))
	case 8:
		return binary.LittleEndian.Uint64(buf)
	default:
		panic("encoding: Value: unsupported entry size")
	}
}

// EntrySize returns the entry size in bytes for a value width in bits,
// or 0 if the width is not 8, 16, 32 or 64.
func EntrySize(width int) int {
	switch width {
	case 8, 16, 32, 64:
		return width / 8
	default:
		return 0
	}
}

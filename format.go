package bitwise

import (
	"fmt"
	"io"
)

// AppendFormat appends the binary rendering of v to dst and returns the
// extended buffer. The rendering is W/8 space-separated groups of 8 binary
// digits, most significant byte first, followed by " [0x<HEX>]\n".
//
// Byte order is taken from bit positions, so the output does not depend on
// the host's endianness.
func AppendFormat[T Unsigned](dst []byte, v T) []byte {
	nbytes := Width[T]() / 8
	for b := nbytes - 1; b >= 0; b-- {
		if b != nbytes-1 {
			dst = append(dst, ' ')
		}
		for k := 7; k >= 0; k-- {
			if Get(v, b*8+k) != 0 {
				dst = append(dst, '1')
			} else {
				dst = append(dst, '0')
			}
		}
	}
	return fmt.Appendf(dst, " [0x%X]\n", uint64(v))
}

// Format writes the binary rendering of v to w.
func Format[T Unsigned](w io.Writer, v T) error {
	_, err := w.Write(AppendFormat(nil, v))
	return err
}

// Sprint returns the binary rendering of v.
func Sprint[T Unsigned](v T) string {
	return string(AppendFormat(nil, v))
}

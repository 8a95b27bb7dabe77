package bitwise

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"

	biterrors "github.com/tamirms/bitwise/errors"
	"github.com/tamirms/bitwise/internal/encoding"
)

// minFileSize is the size of a table with a single 1-byte entry.
const minFileSize = headerSize + 1 + footerSize

// Table is a read-only combination table: every value of one width with a
// fixed number of set bits, in ascending order.
//
// Thread Safety:
// - At, Find, Values and the other read methods are safe for concurrent use
// - Close is NOT safe to call concurrently with reads
// - After Close returns, reads return errors.ErrTableClosed
type Table struct {
	// Memory map (nil for OpenBytes)
	mmap mmap.MMap
	data []byte

	header  *header
	entries []byte

	closed atomic.Bool
}

// Stats holds table statistics.
type Stats struct {
	Width     int
	Ones      int
	Entries   uint64
	EntrySize int
	Chunks    int
	Checksum  ChecksumID
	TableSize int64
}

// Open opens a table file for querying.
// It opens the file, memory-maps it, and closes the file descriptor.
func Open(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer file.Close()
	return OpenFile(file)
}

// OpenFile opens a table by memory-mapping the given file.
// The caller is responsible for closing f; it may be closed as soon as
// OpenFile returns.
func OpenFile(f *os.File) (*Table, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat table file: %w", err)
	}
	if stat.Size() < minFileSize {
		return nil, biterrors.ErrTruncatedFile
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap table file: %w", err)
	}

	t := &Table{
		mmap: mm,
		data: []byte(mm),
	}
	if err := t.initFromData(); err != nil {
		return nil, errors.Join(err, t.Close())
	}
	return t, nil
}

// OpenBytes creates a table from an in-memory byte slice.
// No file is opened or memory-mapped; Close only marks the table closed.
// The caller must not modify data while the Table is in use.
func OpenBytes(data []byte) (*Table, error) {
	if len(data) < minFileSize {
		return nil, biterrors.ErrTruncatedFile
	}
	t := &Table{data: data}
	if err := t.initFromData(); err != nil {
		return nil, err
	}
	return t, nil
}

// initFromData parses the header and locates the entry region.
// The footer is only read by Verify.
func (t *Table) initFromData() error {
	hdr, err := decodeHeader(t.data[:headerSize])
	if err != nil {
		return err
	}

	want := hdr.fileSize()
	switch size := uint64(len(t.data)); {
	case size < want:
		return biterrors.ErrTruncatedFile
	case size > want:
		return biterrors.ErrCorruptedTable
	}

	t.header = hdr
	t.entries = t.data[headerSize : headerSize+hdr.bodySize()]
	return nil
}

// Close closes the table and releases the mapping.
func (t *Table) Close() error {
	if t.closed.Swap(true) {
		return nil // Already closed
	}

	if t.mmap != nil {
		return t.mmap.Unmap()
	}
	return nil
}

// Len returns the number of entries.
func (t *Table) Len() uint64 {
	return t.header.Count
}

// Width returns the bit width of the stored values.
func (t *Table) Width() int {
	return int(t.header.Width)
}

// Ones returns the number of set bits in every stored value.
func (t *Table) Ones() int {
	return int(t.header.Ones)
}

// Checksum returns the per-chunk hash algorithm the table was built with.
func (t *Table) Checksum() ChecksumID {
	return t.header.Checksum
}

// At returns the entry with index i.
func (t *Table) At(i uint64) (uint64, error) {
	if t.closed.Load() {
		return 0, biterrors.ErrTableClosed
	}
	if i >= t.header.Count {
		return 0, fmt.Errorf("index %d of %d: %w", i, t.header.Count, biterrors.ErrRankOutOfRange)
	}
	return t.at(i), nil
}

func (t *Table) at(i uint64) uint64 {
	es := t.header.entrySize()
	return encoding.Value(t.entries[i*uint64(es):], es)
}

// Find returns the index of v. Values are ordered, so the index is the
// rank of v and is computed directly rather than searched.
// Returns errors.ErrNotFound if v does not fit the table width or has a
// different number of set bits.
func (t *Table) Find(v uint64) (uint64, error) {
	if t.closed.Load() {
		return 0, biterrors.ErrTableClosed
	}
	if w := t.header.Width; w < 64 && v>>w != 0 {
		return 0, fmt.Errorf("0x%X wider than %d bits: %w", v, w, biterrors.ErrNotFound)
	}
	if CountSetBits(v) != int(t.header.Ones) {
		return 0, fmt.Errorf("0x%X does not have %d set bits: %w", v, t.header.Ones, biterrors.ErrNotFound)
	}

	i := Rank(v)
	if i >= t.header.Count || t.at(i) != v {
		return 0, biterrors.ErrCorruptedTable
	}
	return i, nil
}

// Values returns an iterator over the entries in ascending order.
// Iteration stops early if the table is closed.
func (t *Table) Values() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for i := range t.header.Count {
			if t.closed.Load() || !yield(t.at(i)) {
				return
			}
		}
	}
}

// GetStats returns statistics for a table file.
func GetStats(path string) (*Stats, error) {
	t, err := Open(path)
	if err != nil {
		return nil, err
	}

	return t.Stats(), t.Close()
}

// Stats returns statistics for the table.
func (t *Table) Stats() *Stats {
	return &Stats{
		Width:     int(t.header.Width),
		Ones:      int(t.header.Ones),
		Entries:   t.header.Count,
		EntrySize: t.header.entrySize(),
		Chunks:    t.header.numChunks(),
		Checksum:  t.header.Checksum,
		TableSize: int64(len(t.data)),
	}
}

// Verify checks the integrity of the whole table:
//  1. the footer hash over the ordered per-chunk hashes
//  2. every entry has the table's number of set bits
//  3. entries are strictly increasing
//
// Checksum mismatches return errors.ErrChecksumFailed; structural
// violations return errors.ErrCorruptedTable.
func (t *Table) Verify() error {
	if t.closed.Load() {
		return biterrors.ErrTableClosed
	}

	ft, err := decodeFooter(t.data[uint64(len(t.data))-footerSize:])
	if err != nil {
		return err
	}

	if t.mmap != nil {
		adviseSequential(t.data)
	}

	es := uint64(t.header.entrySize())
	hashes := make([]uint64, t.header.numChunks())
	for c := range hashes {
		first, n := t.header.chunkBounds(c)
		hashes[c] = t.header.Checksum.sum(t.entries[first*es : (first+n)*es])
	}
	if foldHashes(hashes) != ft.BodyHash {
		return biterrors.ErrChecksumFailed
	}

	ones := int(t.header.Ones)
	var prev uint64
	for i := range t.header.Count {
		v := t.at(i)
		if CountSetBits(v) != ones {
			return fmt.Errorf("entry %d: 0x%X has %d set bits, want %d: %w",
				i, v, CountSetBits(v), ones, biterrors.ErrCorruptedTable)
		}
		if i > 0 && v <= prev {
			return fmt.Errorf("entry %d: 0x%X not above 0x%X: %w", i, v, prev, biterrors.ErrCorruptedTable)
		}
		prev = v
	}
	return nil
}

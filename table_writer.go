package bitwise

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	"golang.org/x/sync/errgroup"

	biterrors "github.com/tamirms/bitwise/errors"
	"github.com/tamirms/bitwise/internal/encoding"
)

// Build writes a combination table to path: every width-bit value with
// exactly ones set bits, in ascending order.
//
// width must be 8, 16, 32 or 64 and ones must be in [0, width]. The table
// holds Binomial(width, ones) entries, which may not exceed MaxTableEntries.
// On error, including cancellation of ctx, the partial file is removed.
func Build(ctx context.Context, path string, width, ones int, opts ...BuildOption) error {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	entrySize := encoding.EntrySize(width)
	if entrySize == 0 {
		return fmt.Errorf("width %d: %w", width, biterrors.ErrInvalidWidth)
	}
	if ones < 0 || ones > width {
		return fmt.Errorf("%d ones, width %d: %w", ones, width, biterrors.ErrInvalidCount)
	}
	if !cfg.checksum.valid() {
		return fmt.Errorf("%s: %w", cfg.checksum, biterrors.ErrUnknownChecksum)
	}
	count := Binomial(width, ones)
	if count > MaxTableEntries {
		return fmt.Errorf("%d entries: %w", count, biterrors.ErrTableTooLarge)
	}

	chunkSize := min(uint64(cfg.chunkSize), count, math.MaxUint32)
	if (count+chunkSize-1)/chunkSize > maxChunks {
		chunkSize = (count + maxChunks - 1) / maxChunks
	}

	hdr := header{
		Magic:     magic,
		Version:   version,
		Width:     uint8(width),
		Ones:      uint8(ones),
		EntrySize: uint8(entrySize),
		Checksum:  cfg.checksum,
		Count:     count,
		ChunkSize: uint32(chunkSize),
	}

	tw, err := newTableWriter(path, &hdr)
	if err != nil {
		return err
	}

	start := time.Now()
	cfg.logger.InfoContext(ctx, "table build started",
		"path", path,
		"width", width,
		"ones", ones,
		"entries", count,
		"chunks", hdr.numChunks(),
		"workers", cfg.workers,
		"checksum", cfg.checksum.String(),
	)

	hashes, err := fillTable(ctx, tw.body(), &hdr, cfg)
	if err != nil {
		return errors.Join(err, tw.close(), os.Remove(path))
	}
	if err := tw.finalize(hashes); err != nil {
		return errors.Join(err, os.Remove(path))
	}

	cfg.logger.InfoContext(ctx, "table build completed",
		"path", path,
		"entries", count,
		"bytes", hdr.fileSize(),
		"elapsed", time.Since(start),
	)
	return nil
}

// fillTable fills every chunk of body and returns the per-chunk hashes in
// chunk order. Chunks are independent: each starts from the unranked value
// of its first entry, so they run on an errgroup bounded by cfg.workers.
func fillTable(ctx context.Context, body []byte, hdr *header, cfg *buildConfig) ([]uint64, error) {
	numChunks := hdr.numChunks()
	hashes := make([]uint64, numChunks)
	es := uint64(hdr.entrySize())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for c := range numChunks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			first, n := hdr.chunkBounds(c)
			chunk := body[first*es : (first+n)*es]
			if err := fillChunk(chunk, int(hdr.Width), int(hdr.Ones), first, int(n)); err != nil {
				return fmt.Errorf("chunk %d: %w", c, err)
			}
			hashes[c] = hdr.Checksum.sum(chunk)
			cfg.logger.DebugContext(gctx, "chunk filled",
				"chunk", c,
				"first", first,
				"entries", n,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The loop may stop early on cancellation without any goroutine failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return hashes, nil
}

// fillChunk writes n consecutive combinations starting at rank first.
func fillChunk(dst []byte, width, ones int, first uint64, n int) error {
	switch width {
	case 8:
		return fillValues[uint8](dst, ones, first, n)
	case 16:
		return fillValues[uint16](dst, ones, first, n)
	case 32:
		return fillValues[uint32](dst, ones, first, n)
	case 64:
		return fillValues[uint64](dst, ones, first, n)
	default:
		return fmt.Errorf("width %d: %w", width, biterrors.ErrInvalidWidth)
	}
}

func fillValues[T Unsigned](dst []byte, ones int, first uint64, n int) error {
	v, err := Unrank[T](ones, first)
	if err != nil {
		return err
	}
	size := Width[T]() / 8
	for i := range n {
		if i > 0 {
			v = NextSameCount(v)
		}
		encoding.PutValue(dst[i*size:], uint64(v), size)
	}
	return nil
}

// foldHashes combines per-chunk hashes, in order, into the footer body hash.
func foldHashes(hashes []uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, h := range hashes {
		binary.LittleEndian.PutUint64(buf[:], h)
		if _, err := d.Write(buf[:]); err != nil {
			panic("hash.Hash.Write returned unexpected error: " + err.Error())
		}
	}
	return d.Sum64()
}

// tableWriter writes a table file through a read-write memory map.
// The file size is known upfront, so it is allocated once and never resized.
type tableWriter struct {
	file   *os.File
	mmap   mmap.MMap
	data   []byte
	header *header
}

// newTableWriter creates path, pre-allocates it to the final table size and
// maps it for writing.
func newTableWriter(path string, hdr *header) (*tableWriter, error) {
	size := hdr.fileSize()

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create table file: %w", err)
	}

	if err := reserveFile(file, int64(size)); err != nil {
		primaryErr := fmt.Errorf("failed to allocate disk space: %w", err)
		return nil, errors.Join(primaryErr, file.Close(), os.Remove(path))
	}

	mm, err := mmap.MapRegion(file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		primaryErr := fmt.Errorf("failed to mmap file: %w", err)
		return nil, errors.Join(primaryErr, file.Close(), os.Remove(path))
	}

	tw := &tableWriter{
		file:   file,
		mmap:   mm,
		data:   []byte(mm),
		header: hdr,
	}

	prefaultWrite(tw.data)

	return tw, nil
}

// body returns the entry region of the mapping.
func (tw *tableWriter) body() []byte {
	return tw.data[headerSize : headerSize+tw.header.bodySize()]
}

// finalize writes the header and footer, flushes and closes the file.
// On error, delegates to close() for idempotent cleanup.
func (tw *tableWriter) finalize(chunkHashes []uint64) error {
	tw.header.encodeTo(tw.data[0:headerSize])

	ftr := footer{BodyHash: foldHashes(chunkHashes)}
	ftr.encodeTo(tw.data[headerSize+tw.header.bodySize():])

	if err := tw.mmap.Flush(); err != nil {
		primaryErr := fmt.Errorf("mmap flush failed: %w", err)
		return errors.Join(primaryErr, tw.close())
	}

	unmapErr := tw.mmap.Unmap()
	tw.mmap = nil
	if unmapErr != nil {
		primaryErr := fmt.Errorf("mmap unmap failed: %w", unmapErr)
		return errors.Join(primaryErr, tw.close())
	}

	closeErr := tw.file.Close()
	tw.file = nil
	return closeErr
}

// close releases the mapping and file without finalizing.
// Idempotent: safe to call multiple times.
func (tw *tableWriter) close() error {
	var unmapErr error
	if tw.mmap != nil {
		unmapErr = tw.mmap.Unmap()
		tw.mmap = nil
	}
	var closeErr error
	if tw.file != nil {
		closeErr = tw.file.Close()
		tw.file = nil
	}
	return errors.Join(unmapErr, closeErr)
}
